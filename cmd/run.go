package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/app"
	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	key, err := d.apiKey(ctx)
	if err != nil {
		return fmt.Errorf("load API key: %w", err)
	}

	state := session.New(exam.SubjectMath, "6")
	state.APIKey = key

	env := &screen.Env{
		State:        state,
		Catalog:      d.catalog,
		NewGenerator: d.generatorFactory(ctx),
		Keys:         d.keys,
		Events:       d.store.EventRepo(),
		EventLog:     d.settings.EventLog,
		Msg:          d.msg,
		Log:          d.log.With("component", "tui"),
		ExportDir:    exportDir(),
	}

	d.log.Info("tui started", "provider", d.settings.LLM.Provider, "lang", d.msg.Lang())
	return app.Run(env)
}

// exportDir returns the working directory, or the temp dir when it
// cannot be resolved.
func exportDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Clean(os.TempDir())
	}
	return wd
}
