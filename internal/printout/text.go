package printout

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/taodethi/taodethi/internal/exam"
)

// WriteText renders the paper as plain text.
func WriteText(w io.Writer, doc *exam.Document, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, strings.ToUpper(doc.Title))
	fmt.Fprintf(bw, "Môn: %s - Lớp %s - Mã đề: %s\n", doc.Subject.DisplayName(), doc.Grade, doc.ID)

	for _, sec := range doc.Sections() {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, SectionHeading(sec.Type))
		if note := SectionNote(sec.Type); note != "" {
			fmt.Fprintln(bw, note)
		}
		for _, it := range sec.Items {
			writeTextItem(bw, it, opts)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, Footer)
	return bw.Flush()
}

// ItemText renders one question the way WriteText prints it.
func ItemText(it exam.Item, opts Options) string {
	var b strings.Builder
	writeTextItem(&b, it, opts)
	return b.String()
}

func writeTextItem(w io.Writer, it exam.Item, opts Options) {
	q := it.Question
	head := fmt.Sprintf("Câu %d:", it.Number)
	if p := PointsLabel(q); p != "" {
		head += " " + p
	}
	fmt.Fprintf(w, "%s %s\n", head, q.Question)

	if q.Type.HasOptions() {
		writeTextOptions(w, q)
	}
	if q.Type == exam.TypeShort {
		fmt.Fprintln(w, "   Đáp số: ..........")
	}

	if opts.Solutions {
		fmt.Fprintf(w, "   Đáp án: %s\n", q.Answer)
		if q.Solution != "" {
			fmt.Fprintf(w, "   Lời giải: %s\n", indentLines(q.Solution, "   "))
		}
	}
}

// writeTextOptions lays options out in OptionColumns columns, padded to
// the widest cell.
func writeTextOptions(w io.Writer, q exam.Question) {
	cols := OptionColumns(q.Options)
	if q.Type == exam.TypeTF {
		cols = 1
	}

	cells := make([]string, len(q.Options))
	width := 0
	for i, o := range q.Options {
		cells[i] = OptionLabel(q.Type, i) + " " + CleanOption(o)
		width = max(width, runewidth.StringWidth(cells[i]))
	}

	for i := 0; i < len(cells); i += cols {
		row := cells[i:min(i+cols, len(cells))]
		var b strings.Builder
		b.WriteString("   ")
		for j, c := range row {
			if j < len(row)-1 {
				b.WriteString(runewidth.FillRight(c, width+3))
			} else {
				b.WriteString(c)
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

func indentLines(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
