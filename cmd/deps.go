package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/i18n"
	"github.com/taodethi/taodethi/internal/llm"
	"github.com/taodethi/taodethi/internal/logger"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/store"
)

// mockProvider backs the "mock" provider setting. Nil means a mock with
// no canned replies.
var mockProvider llm.Provider

// deps holds the services a command works with.
type deps struct {
	settings *settings
	store    *store.Store
	keys     *store.KeyStore
	log      *logger.Logger
	catalog  *curriculum.Catalog
	msg      *i18n.Catalog
}

// openDeps resolves settings and opens the store. tui sends logs to the
// log file instead of stderr.
func openDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := s.newLogger(tui)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	msg, err := i18n.New(s.Lang)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	st, err := s.openStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &deps{
		settings: s,
		store:    st,
		keys:     store.NewKeyStore(st.SettingsRepo()),
		log:      log,
		catalog:  curriculum.Default(),
		msg:      msg,
	}, nil
}

func (d *deps) Close() {
	d.log.Sync()
	d.store.Close()
}

// apiKey returns the credential to generate with: the provider's
// environment key, then the stored key. Providers without credentials get
// a fixed placeholder so the key gate stays open.
func (d *deps) apiKey(ctx context.Context) (string, error) {
	cfg := d.settings.LLM
	if !cfg.NeedsKey() {
		return cfg.Provider, nil
	}
	if k := cfg.APIKey(); k != "" {
		return k, nil
	}
	return d.keys.Load(ctx)
}

// generatorFactory builds an exam generator for a key. Every call gets a
// fresh provider so a key entered in the TUI takes effect immediately.
func (d *deps) generatorFactory(ctx context.Context) screen.GeneratorFactory {
	return func(apiKey string) (examgen.Generator, error) {
		cfg := d.settings.LLM.WithAPIKey(apiKey)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		p, err := llm.NewProvider(ctx, cfg, d.events(), d.log, mockProvider)
		if err != nil {
			return nil, err
		}
		genCfg := d.settings.Gen
		genCfg.Logger = d.log.With("component", "examgen")
		return examgen.New(p, genCfg), nil
	}
}

// events returns the event repo model calls are logged to, or nil when
// the event log is disabled.
func (d *deps) events() store.EventRepo {
	if !d.settings.EventLog {
		return nil
	}
	return d.store.EventRepo()
}
