package apikey

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/store"
	"github.com/taodethi/taodethi/internal/ui/components"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

// APIKeyScreen is the key-entry dialog. Saving stores the trimmed key and
// makes it the session credential.
type APIKeyScreen struct {
	env    *screen.Env
	input  components.TextInput
	errMsg string
	status string
}

var _ screen.Screen = (*APIKeyScreen)(nil)
var _ screen.KeyHintProvider = (*APIKeyScreen)(nil)
var _ screen.InputCapturer = (*APIKeyScreen)(nil)

// New creates the dialog. The input starts empty; the current key is never
// echoed back.
func New(env *screen.Env) *APIKeyScreen {
	return &APIKeyScreen{
		env:   env,
		input: components.NewTextInput("Gemini API Key", "AIza...", components.InputSecret, 256),
	}
}

func (a *APIKeyScreen) Init() tea.Cmd {
	return a.input.Focus()
}

func (a *APIKeyScreen) Title() string { return "API Key" }

func (a *APIKeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Lưu"},
		{Key: "Ctrl+X", Description: "Xóa key đã lưu"},
		{Key: "Esc", Description: "Hủy"},
	}
}

func (a *APIKeyScreen) CapturingInput() bool { return true }

func (a *APIKeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return a, router.Back
		case "enter":
			return a, a.save()
		case "ctrl+x":
			a.clear()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *APIKeyScreen) save() tea.Cmd {
	key, err := a.env.Keys.Save(context.Background(), a.input.Value())
	if err != nil {
		a.status = ""
		if errors.Is(err, store.ErrEmptyKey) {
			a.errMsg = a.env.Msg.T("ErrMissingCredential")
		} else {
			a.env.Log.Error("save api key", "error", err)
			a.errMsg = a.env.Msg.T("ErrUnknown")
		}
		return nil
	}
	a.env.State.APIKey = key
	a.env.Log.Info("api key saved")
	return router.Back
}

func (a *APIKeyScreen) clear() {
	if err := a.env.Keys.Clear(context.Background()); err != nil {
		a.env.Log.Error("clear api key", "error", err)
		a.errMsg = a.env.Msg.T("ErrUnknown")
		return
	}
	a.env.State.APIKey = ""
	a.input.SetValue("")
	a.errMsg = ""
	a.status = a.env.Msg.T("KeyCleared")
}

func (a *APIKeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("Nhập Gemini API Key"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Key được lưu trên máy này và chỉ dùng để gọi Gemini."))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	current := a.env.Msg.T("KeyNotSet")
	if a.env.State.APIKey != "" {
		current = "Đang dùng key " + mask(a.env.State.APIKey)
	}
	b.WriteString(theme.Disabled.Render(current))

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Answer.Render(a.status))
	}
	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(a.errMsg))
	}

	dialog := theme.Dialog.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}

// mask shows only the last four characters of a key.
func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}
