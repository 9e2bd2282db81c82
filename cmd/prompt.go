package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/i18n"
	"github.com/taodethi/taodethi/internal/session"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt a generate request would send",
	Long: `Print the compiled prompt for the given exam flags without calling
the model. Accepts the same exam flags as generate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := curriculum.Default()
		state, err := stateFromFlags(cmd, cat)
		if err != nil {
			return err
		}
		cfg, _, err := session.Build(state, cat)
		if err != nil {
			lang, _ := cmd.Flags().GetString("lang")
			msg, mErr := i18n.New(lang)
			if mErr != nil {
				return err
			}
			return errors.New(msg.Error(err))
		}

		p := examgen.Compile(cfg)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, p.Text())

		if withSchema, _ := cmd.Flags().GetBool("schema"); withSchema {
			b, err := json.MarshalIndent(p.Schema.Definition, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, string(b))
		}
		return nil
	},
}

func init() {
	addExamFlags(promptCmd)
	promptCmd.Flags().Bool("schema", false, "Also print the response JSON schema")
}
