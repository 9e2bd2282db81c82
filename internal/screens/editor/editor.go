package editor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/printout"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/ui/components"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

// SavedMsg is sent to the screen below the editor after a successful save.
type SavedMsg struct {
	Number int
}

// EditorScreen edits one question of the current document in place.
type EditorScreen struct {
	env      *screen.Env
	item     exam.Item
	question components.TextInput
	options  []components.TextInput
	answer   components.TextInput
	points   *components.TextInput
	solution components.TextInput
	focus    int
	errMsg   string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.InputCapturer = (*EditorScreen)(nil)

// New creates an editor prefilled from item.
func New(env *screen.Env, item exam.Item) *EditorScreen {
	q := item.Question
	e := &EditorScreen{env: env, item: item}

	e.question = components.NewTextInput("Câu hỏi", "", components.InputText, 0)
	e.question.SetValue(q.Question)

	if q.Type.HasOptions() {
		for i := range 4 {
			label := "Phương án " + printout.OptionLabel(q.Type, i)
			if q.Type == exam.TypeTF {
				label = "Mệnh đề " + printout.OptionLabel(q.Type, i)
			}
			in := components.NewTextInput(label, "", components.InputText, 0)
			if i < len(q.Options) {
				in.SetValue(printout.CleanOption(q.Options[i]))
			}
			e.options = append(e.options, in)
		}
	}

	placeholder := ""
	if q.Type == exam.TypeTF {
		placeholder = "Đúng - Sai - Sai - Đúng"
	}
	e.answer = components.NewTextInput("Đáp án", placeholder, components.InputText, 0)
	e.answer.SetValue(q.Answer)

	if q.Type == exam.TypeEssay {
		p := components.NewTextInput("Điểm", "1.0", components.InputDecimal, 6)
		if q.Points != nil {
			p.SetValue(fmt.Sprintf("%g", *q.Points))
		}
		e.points = &p
	}

	e.solution = components.NewTextInput("Lời giải", "", components.InputText, 0)
	e.solution.SetValue(q.Solution)

	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.field(0).Focus()
}

func (e *EditorScreen) Title() string {
	return fmt.Sprintf("Sửa câu %d", e.item.Number)
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Ô tiếp"},
		{Key: "Ctrl+S", Description: "Lưu"},
		{Key: "Esc", Description: "Hủy"},
	}
}

func (e *EditorScreen) CapturingInput() bool { return true }

// fieldCount is the number of focusable inputs.
func (e *EditorScreen) fieldCount() int {
	n := 3 + len(e.options)
	if e.points != nil {
		n++
	}
	return n
}

// field returns the input at focus index i, in display order.
func (e *EditorScreen) field(i int) *components.TextInput {
	if i == 0 {
		return &e.question
	}
	i--
	if i < len(e.options) {
		return &e.options[i]
	}
	i -= len(e.options)
	if i == 0 {
		return &e.answer
	}
	i--
	if e.points != nil {
		if i == 0 {
			return e.points
		}
		i--
	}
	return &e.solution
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return e, router.Back
		case "ctrl+s":
			return e, e.save()
		case "tab", "down":
			return e, e.moveFocus(1)
		case "shift+tab", "up":
			return e, e.moveFocus(-1)
		}
	}

	f := e.field(e.focus)
	var cmd tea.Cmd
	*f, cmd = f.Update(msg)
	return e, cmd
}

func (e *EditorScreen) moveFocus(delta int) tea.Cmd {
	e.field(e.focus).Blur()
	n := e.fieldCount()
	e.focus = (e.focus + delta + n) % n
	return e.field(e.focus).Focus()
}

// Result builds the edited question from the inputs.
func (e *EditorScreen) Result() (exam.Question, error) {
	q := e.item.Question.Clone()
	q.Question = strings.TrimSpace(e.question.Value())
	q.Answer = strings.TrimSpace(e.answer.Value())
	q.Solution = strings.TrimSpace(e.solution.Value())

	if len(e.options) > 0 {
		q.Options = make([]string, len(e.options))
		for i, in := range e.options {
			q.Options[i] = strings.TrimSpace(in.Value())
		}
	}

	if e.points != nil {
		v, ok := e.points.DecimalValue()
		switch {
		case strings.TrimSpace(e.points.Value()) == "":
			q.Points = nil
		case !ok || v < 0:
			return exam.Question{}, fmt.Errorf("điểm không hợp lệ: %q", e.points.Value())
		default:
			q.Points = &v
		}
	}
	return q, nil
}

func (e *EditorScreen) save() tea.Cmd {
	q, err := e.Result()
	if err != nil {
		e.errMsg = err.Error()
		return nil
	}
	if err := e.env.State.EditQuestion(e.item.Pos, q); err != nil {
		e.env.Log.Error("edit question", "pos", e.item.Pos, "error", err)
		e.errMsg = e.env.Msg.Error(err)
		return nil
	}

	number := e.item.Number
	return tea.Sequence(
		router.Back,
		func() tea.Msg { return SavedMsg{Number: number} },
	)
}

func (e *EditorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	e.setWidths(cw - 6)

	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render(fmt.Sprintf("Câu %d · %s", e.item.Number, e.item.Question.Type.Label())))
	b.WriteString("\n\n")
	for i := range e.fieldCount() {
		b.WriteString(e.field(i).View())
		b.WriteString("\n")
	}
	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(e.errMsg))
	}
	return components.Card(b.String(), cw)
}

func (e *EditorScreen) setWidths(w int) {
	for i := range e.fieldCount() {
		e.field(i).Model.SetWidth(w)
	}
}
