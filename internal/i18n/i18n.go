// Package i18n holds the user-facing message catalog.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/taodethi/taodethi/internal/exam"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is the language used when none is configured.
const DefaultLang = "vi"

// Catalog translates message IDs for one language.
type Catalog struct {
	lang string
	loc  *i18n.Localizer
}

// New loads the embedded locales and returns a catalog for lang. Missing
// messages fall back to Vietnamese.
func New(lang string) (*Catalog, error) {
	if lang == "" {
		lang = DefaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.Vietnamese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := path.Join("locales", e.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}

	return &Catalog{
		lang: tag.String(),
		loc:  i18n.NewLocalizer(bundle, tag.String(), DefaultLang),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Lang returns the catalog language tag.
func (c *Catalog) Lang() string { return c.lang }

// T translates a message by ID. Unknown IDs are returned unchanged.
func (c *Catalog) T(msgID string) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (c *Catalog) Td(msgID string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (c *Catalog) Tp(msgID string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	s, err := c.loc.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return s
}

// errorIDs maps user-facing error kinds to message IDs, most specific
// first.
var errorIDs = []struct {
	err error
	id  string
}{
	{exam.ErrEmptySelection, "ErrEmptySelection"},
	{exam.ErrInvalidRatio, "ErrInvalidRatio"},
	{exam.ErrEmptyQuestionSet, "ErrEmptyQuestionSet"},
	{exam.ErrMissingCredential, "ErrMissingCredential"},
	{exam.ErrInvalidCredential, "ErrInvalidCredential"},
	{exam.ErrServiceUnavailable, "ErrServiceUnavailable"},
	{exam.ErrBusy, "ErrBusy"},
}

// Error returns the user-facing message for err. The raw error text is
// never shown; unknown errors get a generic message.
func (c *Catalog) Error(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range errorIDs {
		if errors.Is(err, e.err) {
			return c.T(e.id)
		}
	}
	return c.T("ErrUnknown")
}
