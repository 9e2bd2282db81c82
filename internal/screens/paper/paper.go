package paper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/printout"
	"github.com/taodethi/taodethi/internal/router"
	"github.com/taodethi/taodethi/internal/screen"
	"github.com/taodethi/taodethi/internal/screens/apikey"
	"github.com/taodethi/taodethi/internal/screens/editor"
	"github.com/taodethi/taodethi/internal/ui/layout"
	"github.com/taodethi/taodethi/internal/ui/theme"
)

type regenTickMsg time.Time

func regenTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return regenTickMsg(t)
	})
}

// PaperScreen shows the current exam document laid out like the printed
// paper, with solution toggles, in-place editing and export.
type PaperScreen struct {
	env          *screen.Env
	solutions    bool
	revealed     map[string]bool
	cursor       int
	scrollOffset int
	dots         int
	status       string
	errMsg       string
}

var _ screen.Screen = (*PaperScreen)(nil)
var _ screen.KeyHintProvider = (*PaperScreen)(nil)

// New creates a PaperScreen over the session's current document.
func New(env *screen.Env) *PaperScreen {
	return &PaperScreen{env: env, revealed: make(map[string]bool)}
}

func (p *PaperScreen) Init() tea.Cmd { return nil }

func (p *PaperScreen) Title() string {
	if doc := p.env.State.Doc; doc != nil {
		return printout.DocumentName(doc)
	}
	return "Đề thi"
}

func (p *PaperScreen) KeyHints() []layout.KeyHint {
	if p.env.State.Doc == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Quay lại"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn câu"},
		{Key: "E", Description: "Sửa"},
		{Key: "V", Description: "Xem lời giải"},
		{Key: "S", Description: "Hiện đáp án"},
		{Key: "P", Description: "In"},
		{Key: "X", Description: "Excel"},
		{Key: "R", Description: "Tạo lại"},
	}
}

// items flattens the sections into display order.
func (p *PaperScreen) items() []exam.Item {
	doc := p.env.State.Doc
	if doc == nil {
		return nil
	}
	var out []exam.Item
	for _, sec := range doc.Sections() {
		out = append(out, sec.Items...)
	}
	return out
}

func (p *PaperScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case regenTickMsg:
		if !p.env.State.Busy() {
			return p, nil
		}
		p.dots = (p.dots + 1) % 4
		return p, regenTick()

	case screen.GenerationFinishedMsg:
		return p, p.handleFinished(msg.Err)

	case editor.SavedMsg:
		p.errMsg = ""
		p.status = p.env.Msg.Td("QuestionSaved", map[string]any{"Number": msg.Number})
		return p, nil

	case tea.KeyMsg:
		return p, p.handleKey(msg.String())
	}
	return p, nil
}

func (p *PaperScreen) handleKey(key string) tea.Cmd {
	if p.env.State.Busy() || p.env.State.Doc == nil {
		return nil
	}
	items := p.items()

	switch key {
	case "up", "k":
		p.cursor = max(p.cursor-1, 0)
	case "down", "j":
		p.cursor = min(p.cursor+1, len(items)-1)
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = len(items) - 1
	case "s":
		p.solutions = !p.solutions
	case "v":
		if len(items) > 0 {
			id := items[p.cursor].Question.ID
			p.revealed[id] = !p.revealed[id]
		}
	case "e", "enter":
		if len(items) > 0 {
			return router.Push(editor.New(p.env, items[p.cursor]))
		}
	case "p":
		p.export(printout.FormatHTML, printout.FormatText)
	case "x":
		p.export(printout.FormatXLSX)
	case "r":
		return p.regenerate()
	}
	return nil
}

// export writes the document in each format and reports the last path.
// The paper's solution toggle decides whether answers are printed.
func (p *PaperScreen) export(formats ...printout.Format) {
	opts := printout.Options{Solutions: p.solutions}
	var paths []string
	for _, f := range formats {
		path, err := printout.Save(p.env.ExportDir, f, p.env.State.Doc, opts)
		if err != nil {
			p.env.Log.Error("export paper", "format", string(f), "error", err)
			p.status = ""
			p.errMsg = p.env.Msg.T("ExportFailed")
			return
		}
		paths = append(paths, path)
	}
	p.env.Log.Info("paper exported", "paths", paths)
	p.errMsg = ""
	p.status = p.env.Msg.Td("Exported", map[string]any{"Path": strings.Join(paths, ", ")})
}

func (p *PaperScreen) regenerate() tea.Cmd {
	cmd, err := p.env.StartGeneration()
	if err != nil {
		p.errMsg = p.env.Msg.Error(err)
		if errors.Is(err, exam.ErrMissingCredential) {
			return pushKeyDialog(p.env)
		}
		return nil
	}
	p.status = ""
	p.errMsg = ""
	return tea.Batch(cmd, regenTick())
}

func (p *PaperScreen) handleFinished(err error) tea.Cmd {
	if err != nil {
		p.errMsg = p.env.Msg.Error(err)
		if errors.Is(err, exam.ErrInvalidCredential) {
			return pushKeyDialog(p.env)
		}
		return nil
	}
	p.cursor = 0
	p.scrollOffset = 0
	p.revealed = make(map[string]bool)
	p.errMsg = ""
	return nil
}

func pushKeyDialog(env *screen.Env) tea.Cmd {
	return router.Push(apikey.New(env))
}

// CapturingInput keeps Esc from leaving the screen while regenerating.
func (p *PaperScreen) CapturingInput() bool {
	return p.env.State.Busy()
}

func (p *PaperScreen) View(width, height int) string {
	st := p.env.State
	if st.Busy() {
		msg := theme.Status.Render(p.env.Msg.Td("Generating", map[string]any{
			"Subject": st.Subject.DisplayName(),
			"Grade":   st.Grade,
		}) + strings.Repeat(".", p.dots))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	doc := st.Doc
	if doc == nil {
		empty := theme.Title.Render("Chưa có đề thi nào") + "\n\n" +
			theme.Hint.Render("Chọn môn, lớp và bài học rồi nhấn Tạo đề.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	lines, starts := p.render(doc, width)

	statusLine := ""
	switch {
	case p.errMsg != "":
		statusLine = theme.ErrorText.Render(p.errMsg)
	case p.status != "":
		statusLine = theme.Answer.Render(p.status)
	}

	bodyHeight := max(height-2, 1)
	p.adjustScroll(starts, len(lines), bodyHeight)

	end := min(p.scrollOffset+bodyHeight, len(lines))
	visible := lines[p.scrollOffset:end]
	return strings.Join(visible, "\n") + "\n\n" + statusLine
}

// render lays the document out as lines and returns the first line of
// each item.
func (p *PaperScreen) render(doc *exam.Document, width int) ([]string, []int) {
	textWidth := max(width-6, 20)
	wrap := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	var starts []int
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}

	add(theme.Title.Width(textWidth).Render(strings.ToUpper(doc.Title)))
	add(theme.Subtitle.Width(textWidth).Render(fmt.Sprintf("Môn: %s - Lớp %s - Mã đề: %s", doc.Subject.DisplayName(), doc.Grade, doc.ID)))

	n := 0
	for _, sec := range doc.Sections() {
		add("")
		add("  " + theme.SectionHeading.Render(printout.SectionHeading(sec.Type)))
		if note := printout.SectionNote(sec.Type); note != "" {
			add("  " + theme.Hint.Render(note))
		}
		for _, it := range sec.Items {
			starts = append(starts, len(lines))
			show := p.solutions || p.revealed[it.Question.ID]
			text := strings.TrimRight(printout.ItemText(it, printout.Options{Solutions: show}), "\n")

			marker := "  "
			style := theme.Body
			if n == p.cursor {
				marker = theme.Selected.Render("▸ ")
				style = theme.Selected
			}
			for i, l := range strings.Split(wrap.Render(text), "\n") {
				if i == 0 {
					add(marker + style.Render(l))
					continue
				}
				add("  " + l)
			}
			n++
		}
	}
	add("")
	add(theme.Hint.Width(textWidth).Align(lipgloss.Center).Render(printout.Footer))
	return lines, starts
}

// adjustScroll keeps the selected item's first line visible.
func (p *PaperScreen) adjustScroll(starts []int, total, height int) {
	if len(starts) == 0 {
		p.scrollOffset = 0
		return
	}
	p.cursor = min(p.cursor, len(starts)-1)
	top := starts[p.cursor]
	bottom := total - 1
	if p.cursor+1 < len(starts) {
		bottom = starts[p.cursor+1] - 1
	}
	if p.cursor == 0 {
		top = 0
	}

	if top < p.scrollOffset {
		p.scrollOffset = top
	}
	if bottom >= p.scrollOffset+height {
		p.scrollOffset = min(bottom-height+1, top)
	}
	p.scrollOffset = max(min(p.scrollOffset, total-1), 0)
}
