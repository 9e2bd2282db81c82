package printout

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/taodethi/taodethi/internal/exam"
)

//go:embed paper.html.tmpl
var paperTemplate string

var paperTmpl = template.Must(template.New("paper").Funcs(template.FuncMap{
	"heading":     SectionHeading,
	"note":        SectionNote,
	"clean":       CleanOption,
	"label":       OptionLabel,
	"columns":     OptionColumns,
	"points":      PointsLabel,
	"hasOptions":  func(t exam.QuestionType) bool { return t.HasOptions() },
	"isShort":     func(t exam.QuestionType) bool { return t == exam.TypeShort },
	"isEssay":     func(t exam.QuestionType) bool { return t == exam.TypeEssay },
	"isTF":        func(t exam.QuestionType) bool { return t == exam.TypeTF },
	"displayName": func(s exam.Subject) string { return s.DisplayName() },
}).Parse(paperTemplate))

type paperData struct {
	Name      string
	Doc       *exam.Document
	Sections  []exam.Section
	Solutions bool
	Footer    string
}

// WriteHTML renders the paper as a standalone HTML page. The page title is
// the document name, so the browser's print dialog suggests it as the file
// name. Math in $...$ and $$...$$ is typeset by KaTeX auto-render.
func WriteHTML(w io.Writer, doc *exam.Document, opts Options) error {
	return paperTmpl.Execute(w, paperData{
		Name:      DocumentName(doc),
		Doc:       doc,
		Sections:  doc.Sections(),
		Solutions: opts.Solutions,
		Footer:    Footer,
	})
}
