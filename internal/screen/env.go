package screen

import (
	"time"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/i18n"
	"github.com/taodethi/taodethi/internal/logger"
	"github.com/taodethi/taodethi/internal/session"
	"github.com/taodethi/taodethi/internal/store"
)

// GeneratorFactory builds a generator bound to an API key.
type GeneratorFactory func(apiKey string) (examgen.Generator, error)

// Env is the state and services shared by all screens. The TUI update loop
// is its only writer.
type Env struct {
	State        *session.State
	Catalog      *curriculum.Catalog
	NewGenerator GeneratorFactory
	Keys         *store.KeyStore
	Events       store.EventRepo
	Msg          *i18n.Catalog
	Log          *logger.Logger

	// EventLog reports whether model calls are recorded in Events.
	EventLog bool

	// ExportDir is where print and export files are written.
	ExportDir string

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}
