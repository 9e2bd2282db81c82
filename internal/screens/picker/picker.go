package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/topics"
	"github.com/taodethi/taodethi/internal/selection"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

const (
	focusSubject = iota
	focusGrade
)

// PickerScreen selects the subject and grade of the next exam.
type PickerScreen struct {
	env      *screen.Env
	subjects []exam.Subject
	grades   []string
	subject  int
	grade    int
	focus    int
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker preset to the session's current subject and grade.
func New(env *screen.Env) *PickerScreen {
	p := &PickerScreen{
		env:      env,
		subjects: exam.AllSubjects(),
		grades:   exam.Grades(),
	}
	for i, s := range p.subjects {
		if s == env.State.Subject {
			p.subject = i
		}
	}
	for i, g := range p.grades {
		if g == env.State.Grade {
			p.grade = i
		}
	}
	return p
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "Chọn môn và lớp" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "←→/Tab", Description: "Môn/Lớp"},
		{Key: "Enter", Description: "Chọn bài học"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		p.focus = focusSubject
	case "right", "l", "tab":
		p.focus = focusGrade
	case "up", "k":
		p.move(-1)
	case "down", "j":
		p.move(1)
	case "enter":
		return p, p.confirm()
	}
	return p, nil
}

func (p *PickerScreen) move(delta int) {
	if p.focus == focusSubject {
		p.subject = clamp(p.subject+delta, len(p.subjects))
		return
	}
	p.grade = clamp(p.grade+delta, len(p.grades))
}

func clamp(i, n int) int {
	return min(max(i, 0), n-1)
}

// confirm applies the choice to the session and opens the topic selector.
// A changed subject or grade clears the selection; an empty selection gets
// the first chapter preselected.
func (p *PickerScreen) confirm() tea.Cmd {
	st := p.env.State
	st.SetSubject(p.subjects[p.subject])
	st.SetGrade(p.grades[p.grade])
	st.Selection = selection.WithFirstChapter(st.Selection, p.env.Catalog, st.Subject, st.Grade)

	return router.Push(topics.New(p.env))
}

func (p *PickerScreen) View(width, height int) string {
	subjects := p.renderSubjects()
	grades := p.renderGrades()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		p.column("Môn học", subjects, p.focus == focusSubject),
		"  ",
		p.column("Lớp", grades, p.focus == focusGrade),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (p *PickerScreen) column(title, content string, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(30).
		Render(theme.SectionHeading.Render(title) + "\n\n" + content)
}

func (p *PickerScreen) renderSubjects() string {
	var b strings.Builder
	for i, s := range p.subjects {
		b.WriteString(row(s.DisplayName(), i == p.subject, p.focus == focusSubject, ""))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *PickerScreen) renderGrades() string {
	subject := p.subjects[p.subject]
	var b strings.Builder
	i := 0
	for _, lvl := range exam.GradeLevels() {
		b.WriteString(theme.Hint.Render(lvl.Name))
		b.WriteString("\n")
		for _, g := range lvl.Grades {
			note := ""
			if n := len(p.env.Catalog.For(subject, g)); n > 0 {
				note = fmt.Sprintf("%d chương", n)
			} else {
				note = "chưa có dữ liệu"
			}
			b.WriteString(row("Lớp "+g, i == p.grade, p.focus == focusGrade, note))
			b.WriteString("\n")
			i++
		}
	}
	return b.String()
}

func row(label string, selected, focused bool, note string) string {
	line := "    " + label
	style := theme.Unselected
	if selected {
		line = "  ▸ " + label
		style = theme.Selected
		if !focused {
			line = "  • " + label
		}
	}
	out := style.Render(line)
	if note != "" {
		out += "  " + theme.Hint.Render(note)
	}
	return out
}
