package configure

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/apikey"
	"github.com/taodethi/taodethi/internal/screens/paper"
	"github.com/taodethi/taodethi/internal/ui/components"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

type fieldKind int

const (
	fieldMode fieldKind = iota
	fieldMCQ
	fieldTF
	fieldShort
	fieldEssay
	fieldQuickType
	fieldQuickCount
	fieldDifficulty
	fieldLevel
	fieldBiet
	fieldHieu
	fieldGenerate
)

const ratioStep = 5

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// ConfigureScreen edits the exam structure and difficulty, then starts a
// generation.
type ConfigureScreen struct {
	env    *screen.Env
	focus  int
	frame  int
	errMsg string
}

var _ screen.Screen = (*ConfigureScreen)(nil)
var _ screen.KeyHintProvider = (*ConfigureScreen)(nil)

// New creates a ConfigureScreen over the shared session.
func New(env *screen.Env) *ConfigureScreen {
	return &ConfigureScreen{env: env}
}

func (c *ConfigureScreen) Init() tea.Cmd { return nil }

func (c *ConfigureScreen) Title() string { return "Cấu hình đề" }

func (c *ConfigureScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "←→", Description: "Thay đổi"},
		{Key: "G", Description: "Tạo đề"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

// fields lists the visible fields for the current modes.
func (c *ConfigureScreen) fields() []fieldKind {
	st := c.env.State
	f := []fieldKind{fieldMode}
	if st.Mode == exam.ModeQuick {
		f = append(f, fieldQuickType, fieldQuickCount)
	} else {
		f = append(f, fieldMCQ, fieldTF, fieldShort, fieldEssay)
	}
	f = append(f, fieldDifficulty)
	if st.Difficulty == exam.DifficultyRatio {
		f = append(f, fieldBiet, fieldHieu)
	} else {
		f = append(f, fieldLevel)
	}
	return append(f, fieldGenerate)
}

func (c *ConfigureScreen) current() fieldKind {
	f := c.fields()
	c.focus = min(max(c.focus, 0), len(f)-1)
	return f[c.focus]
}

func (c *ConfigureScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !c.env.State.Busy() {
			return c, nil
		}
		c.frame = (c.frame + 1) % len(spinnerFrames)
		return c, spinnerTick()

	case screen.GenerationFinishedMsg:
		return c, c.handleFinished(msg.Err)

	case tea.KeyMsg:
		return c, c.handleKey(msg.String())
	}
	return c, nil
}

func (c *ConfigureScreen) handleKey(key string) tea.Cmd {
	if c.env.State.Busy() {
		return nil
	}

	switch key {
	case "up", "k", "shift+tab":
		c.focus = max(c.focus-1, 0)
	case "down", "j", "tab":
		c.focus = min(c.focus+1, len(c.fields())-1)
	case "left", "h", "-":
		c.adjust(-1)
	case "right", "l", "+", "space", " ":
		c.adjust(1)
	case "enter":
		if c.current() == fieldGenerate {
			return c.generate()
		}
		c.adjust(1)
	case "g":
		return c.generate()
	}
	return nil
}

// adjust steps the focused field by dir (+1 or -1). Counters are clamped
// to their input bounds; choices wrap around.
func (c *ConfigureScreen) adjust(dir int) {
	st := c.env.State
	c.errMsg = ""

	switch c.current() {
	case fieldMode:
		if st.Mode == exam.ModeQuick {
			st.Mode = exam.ModeFull
		} else {
			st.Mode = exam.ModeQuick
		}
	case fieldMCQ:
		st.Counts.MCQ = step(st.Counts.MCQ, dir, exam.MaxMCQ)
	case fieldTF:
		st.Counts.TF = step(st.Counts.TF, dir, exam.MaxTF)
	case fieldShort:
		st.Counts.Short = step(st.Counts.Short, dir, exam.MaxShort)
	case fieldEssay:
		st.Counts.Essay = step(st.Counts.Essay, dir, exam.MaxEssay)
	case fieldQuickType:
		st.QuickType = cycle(exam.AllTypes(), st.QuickType, dir)
	case fieldQuickCount:
		st.QuickCount = step(st.QuickCount, dir, exam.MaxQuickCount)
	case fieldDifficulty:
		if st.Difficulty == exam.DifficultyRatio {
			st.Difficulty = exam.DifficultyFixed
		} else {
			st.Difficulty = exam.DifficultyRatio
		}
	case fieldLevel:
		st.Level = cycle(exam.AllLevels(), st.Level, dir)
	case fieldBiet:
		st.Biet = step(st.Biet, dir*ratioStep, 100)
	case fieldHieu:
		st.Hieu = step(st.Hieu, dir*ratioStep, 100)
	}
}

func step(v, delta, hi int) int {
	return min(max(v+delta, 0), hi)
}

func cycle[T comparable](values []T, cur T, dir int) T {
	for i, v := range values {
		if v == cur {
			return values[(i+dir+len(values))%len(values)]
		}
	}
	return values[0]
}

// generate validates the session and starts the model call. A missing key
// opens the key dialog instead.
func (c *ConfigureScreen) generate() tea.Cmd {
	if c.env.State.APIKey == "" {
		c.env.State.LastErr = exam.ErrMissingCredential
		c.errMsg = c.env.Msg.Error(exam.ErrMissingCredential)
		return pushKeyDialog(c.env)
	}
	if !c.env.State.CanGenerate() {
		c.errMsg = c.env.Msg.Error(exam.ErrInvalidRatio)
		return nil
	}

	cmd, err := c.env.StartGeneration()
	if err != nil {
		c.errMsg = c.env.Msg.Error(err)
		if errors.Is(err, exam.ErrMissingCredential) {
			return pushKeyDialog(c.env)
		}
		return nil
	}

	c.errMsg = ""
	c.frame = 0
	return tea.Batch(cmd, spinnerTick())
}

func (c *ConfigureScreen) handleFinished(err error) tea.Cmd {
	if err == nil {
		c.errMsg = ""
		return router.Push(paper.New(c.env))
	}

	c.errMsg = c.env.Msg.Error(err)
	if errors.Is(err, exam.ErrInvalidCredential) {
		return pushKeyDialog(c.env)
	}
	return nil
}

func pushKeyDialog(env *screen.Env) tea.Cmd {
	return router.Push(apikey.New(env))
}

func (c *ConfigureScreen) View(width, height int) string {
	st := c.env.State
	cw := components.ContentWidth(width)
	focused := c.current()

	var b strings.Builder
	topics := c.env.Msg.Tp("LessonCount", st.Selection.LessonCount())
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s lớp %s · %s", st.Subject.DisplayName(), st.Grade, topics)))
	b.WriteString("\n\n")

	for _, f := range c.fields() {
		if f == fieldGenerate {
			continue
		}
		b.WriteString(c.renderField(f, f == focused, cw))
		b.WriteString("\n")
	}

	if st.Difficulty == exam.DifficultyRatio {
		b.WriteString("\n")
		b.WriteString(components.RatioBar{Biet: st.Biet, Hieu: st.Hieu, Width: cw - 40}.View())
		b.WriteString("\n")
	}

	total := st.EffectiveCounts().Total()
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(c.env.Msg.Tp("QuestionCount", total)))
	b.WriteString("\n\n")

	label := "Tạo đề"
	if st.Busy() {
		label = spinnerFrames[c.frame] + " " + c.env.Msg.Td("Generating", map[string]any{
			"Subject": st.Subject.DisplayName(),
			"Grade":   st.Grade,
		})
	}
	b.WriteString(components.Button(label, st.CanGenerate(), focused == fieldGenerate))

	if c.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(c.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (c *ConfigureScreen) renderField(f fieldKind, focused bool, cw int) string {
	st := c.env.State
	var label, value string

	switch f {
	case fieldMode:
		label = "Chế độ"
		sel := 0
		if st.Mode == exam.ModeQuick {
			sel = 1
		}
		value = components.NewChoice([]string{"Đầy đủ 4 phần", "Nhanh 1 dạng"}, sel).View(focused)
	case fieldMCQ:
		label, value = exam.TypeMCQ.Label(), counter(st.Counts.MCQ, focused)
	case fieldTF:
		label, value = exam.TypeTF.Label(), counter(st.Counts.TF, focused)
	case fieldShort:
		label, value = exam.TypeShort.Label(), counter(st.Counts.Short, focused)
	case fieldEssay:
		label, value = exam.TypeEssay.Label(), counter(st.Counts.Essay, focused)
	case fieldQuickType:
		label = "Dạng câu hỏi"
		value = choiceOf(exam.AllTypes(), st.QuickType, exam.QuestionType.Label, focused)
	case fieldQuickCount:
		label, value = "Số câu", counter(st.QuickCount, focused)
	case fieldDifficulty:
		label = "Độ khó"
		sel := 0
		if st.Difficulty == exam.DifficultyRatio {
			sel = 1
		}
		value = components.NewChoice([]string{"Một mức", "Theo tỉ lệ"}, sel).View(focused)
	case fieldLevel:
		label = "Mức độ"
		value = choiceOf(exam.AllLevels(), st.Level, func(l exam.Level) string { return string(l) }, focused)
	case fieldBiet:
		label, value = "Biết (%)", counter(st.Biet, focused)
	case fieldHieu:
		label, value = "Hiểu (%)", counter(st.Hieu, focused)
	}

	cursor := "  "
	labelStyle := theme.Body
	if focused {
		cursor = "▸ "
		labelStyle = theme.Selected
	}
	labelWidth := min(22, cw/3)
	return cursor + labelStyle.Width(labelWidth).Render(label) + " " + value
}

func counter(v int, focused bool) string {
	s := fmt.Sprintf("%3d", v)
	if focused {
		return theme.Disabled.Render("◂ ") + theme.Selected.Render(s) + theme.Disabled.Render(" ▸")
	}
	return "  " + theme.Body.Render(s)
}

func choiceOf[T comparable](values []T, cur T, name func(T) string, focused bool) string {
	opts := make([]string, len(values))
	sel := 0
	for i, v := range values {
		opts[i] = name(v)
		if v == cur {
			sel = i
		}
	}
	return components.NewChoice(opts, sel).View(focused)
}

// CapturingInput keeps Esc from leaving the screen while a request is in
// flight.
func (c *ConfigureScreen) CapturingInput() bool {
	return c.env.State.Busy()
}
