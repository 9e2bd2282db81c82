package printout

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/taodethi/taodethi/internal/exam"
)

const (
	answerSheet   = "Đáp án"
	solutionSheet = "Lời giải"
)

var answerHeader = []any{"Câu", "Phần", "Chương", "Bài", "Mức độ", "Đáp án", "Điểm"}

// AnswerKey builds an XLSX workbook with the answer key on the first sheet
// and worked solutions on the second. Rows follow the printed numbering.
// The caller must Close the returned file.
func AnswerKey(doc *exam.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", answerSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(solutionSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := fillAnswerKey(f, doc); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillAnswerKey(f *excelize.File, doc *exam.Document) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := f.SetSheetRow(answerSheet, "A1", &answerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetSheetRow(solutionSheet, "A1", &[]any{"Câu", "Câu hỏi", "Đáp án", "Lời giải"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, sec := range doc.Sections() {
		for _, it := range sec.Items {
			q := it.Question
			var points any
			if q.Points != nil {
				points = *q.Points
			}
			answerRow := []any{it.Number, q.Type.Label(), q.Chapter, q.Lesson, q.Difficulty, q.Answer, points}
			if err := setRow(f, answerSheet, row, answerRow); err != nil {
				return err
			}
			if err := setRow(f, solutionSheet, row, []any{it.Number, q.Question, q.Answer, q.Solution}); err != nil {
				return err
			}
			row++
		}
	}

	for _, sheet := range []string{answerSheet, solutionSheet} {
		if err := f.SetCellStyle(sheet, "A1", "G1", bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}

	widths := []struct {
		sheet, from, to string
		width           float64
	}{
		{answerSheet, "A", "B", 12},
		{answerSheet, "C", "D", 36},
		{answerSheet, "E", "E", 10},
		{answerSheet, "F", "F", 24},
		{solutionSheet, "A", "A", 6},
		{solutionSheet, "B", "B", 60},
		{solutionSheet, "C", "C", 24},
		{solutionSheet, "D", "D", 80},
	}
	for _, w := range widths {
		if err := f.SetColWidth(w.sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	if row > 2 {
		last, _ := excelize.CoordinatesToCellName(4, row-1)
		if err := f.SetCellStyle(solutionSheet, "B2", last, wrap); err != nil {
			return fmt.Errorf("style solutions: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// WriteAnswerKey writes the XLSX answer key to w.
func WriteAnswerKey(w io.Writer, doc *exam.Document) error {
	f, err := AnswerKey(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
