package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/store"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		key, err := d.keys.Save(cmd.Context(), args[0])
		if errors.Is(err, store.ErrEmptyKey) {
			return errors.New(d.msg.T("ErrMissingCredential"))
		}
		if err != nil {
			return fmt.Errorf("save key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Đã lưu API key", maskKey(key))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		key, err := d.keys.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load key: %w", err)
		}
		if key == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Chưa lưu API key.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), maskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.keys.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Đã xóa API key.")
		return nil
	},
}

// maskKey keeps the last four characters.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
