package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/printout"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a saved exam (from generate --format json)",
	Example: `  taodethi export --in de.json --format html --dir ./in
  taodethi export --in de.json --format xlsx --out dap-an.xlsx
  taodethi export --in de.json --solutions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		dir, _ := cmd.Flags().GetString("dir")
		formatFlag, _ := cmd.Flags().GetString("format")
		solutions, _ := cmd.Flags().GetBool("solutions")

		doc, err := readDocument(in)
		if err != nil {
			return err
		}
		format, err := printout.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		opts := printout.Options{Solutions: solutions}

		if dir != "" {
			path, err := printout.Save(dir, format, doc, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Đã lưu", path)
			return nil
		}
		return writeDocument(cmd, doc)
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringP("in", "i", "", "Exam JSON file written by generate --format json")
	f.String("format", string(printout.FormatText), "Output format: text, html, xlsx")
	f.Bool("solutions", false, "Include answers and solutions")
	f.StringP("out", "o", "", "Output file (default stdout)")
	f.String("dir", "", "Write into this directory using the exam's file name")
	_ = exportCmd.MarkFlagRequired("in")
	exportCmd.MarkFlagsMutuallyExclusive("out", "dir")
}

// readDocument loads an exam document written by generate.
func readDocument(path string) (*exam.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exam: %w", err)
	}
	var doc exam.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse exam %s: %w", path, err)
	}
	if len(doc.Questions) == 0 {
		return nil, errors.New("exam has no questions")
	}
	return &doc, nil
}
