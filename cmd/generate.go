package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taodethi/taodethi/internal/curriculum"
	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/printout"
	"github.com/taodethi/taodethi/internal/selection"
	"github.com/taodethi/taodethi/internal/session"
)

// formatJSON is the document interchange format read back by export.
const formatJSON = "json"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an exam without the TUI",
	Long: `Generate one exam and print it.

Chapters are given by id (see "taodethi curriculum"). A chapter alone
selects all of its lessons; "id:1,3" selects lessons 1 and 3 only.
Without --chapter the first chapter of the grade is used.`,
	Example: `  taodethi generate --subject toan --grade 6 --chapter m6_c1 --mcq 8 --essay 2
  taodethi generate --grade 10 --mode quick --quick-type tf --quick-count 5 --ratio 30,40
  taodethi generate --chapter m6_c2:1,2 --format json --out de.json`,
	RunE: runGenerate,
}

func init() {
	addExamFlags(generateCmd)
	f := generateCmd.Flags()
	f.Bool("solutions", false, "Include answers and solutions")
	f.String("format", string(printout.FormatText), "Output format: text, html, xlsx, json")
	f.StringP("out", "o", "", "Output file (default stdout)")
}

// addExamFlags registers the flags that describe an exam request.
func addExamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("subject", "toan", "Subject: toan, vatli, hoahoc")
	f.String("grade", "6", "Grade 1-12")
	f.StringArray("chapter", nil, "Chapter id, optionally with lesson numbers (id or id:1,3); repeatable")
	f.String("mode", string(exam.ModeFull), "Mode: full or quick")
	f.Int("mcq", session.DefaultCounts.MCQ, "Multiple-choice questions (full mode)")
	f.Int("tf", session.DefaultCounts.TF, "True/false questions (full mode)")
	f.Int("short", session.DefaultCounts.Short, "Short-answer questions (full mode)")
	f.Int("essay", session.DefaultCounts.Essay, "Essay questions (full mode)")
	f.String("quick-type", string(exam.TypeMCQ), "Question type in quick mode: mcq, tf, short, essay")
	f.Int("quick-count", session.DefaultQuickCount, "Number of questions in quick mode")
	f.String("level", "hieu", "Fixed cognitive level: biet, hieu, van-dung")
	f.String("ratio", "", "Biết,Hiểu percentages, e.g. 30,40 (remainder is Vận dụng); overrides --level")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := stateFromFlags(cmd, d.catalog)
	if err != nil {
		return err
	}
	if state.APIKey, err = d.apiKey(ctx); err != nil {
		return fmt.Errorf("load API key: %w", err)
	}

	// A missing key is reported by Generate before the model is called.
	gen, err := d.generatorFactory(ctx)(state.APIKey)
	if err != nil && state.APIKey != "" {
		return err
	}

	start := time.Now()
	if err := state.Generate(ctx, gen, d.catalog, time.Now); err != nil {
		d.log.Error("generation failed", "error", err, "subject", state.Subject, "grade", state.Grade)
		return errors.New(d.msg.Error(err))
	}
	d.log.Info("generation finished",
		"questions", len(state.Doc.Questions),
		"took", time.Since(start).Round(time.Millisecond))

	return writeDocument(cmd, state.Doc)
}

// stateFromFlags builds a session from the generate flags. Bounds are
// checked here; the remaining validation happens when the request is
// built.
func stateFromFlags(cmd *cobra.Command, cat *curriculum.Catalog) (*session.State, error) {
	f := cmd.Flags()

	subjectFlag, _ := f.GetString("subject")
	subject, err := exam.ParseSubject(subjectFlag)
	if err != nil {
		return nil, err
	}
	grade, _ := f.GetString("grade")
	if !exam.ValidGrade(grade) {
		return nil, fmt.Errorf("unknown grade %q (want 1-12)", grade)
	}
	state := session.New(subject, grade)

	modeFlag, _ := f.GetString("mode")
	switch exam.Mode(strings.ToLower(modeFlag)) {
	case exam.ModeFull:
		state.Mode = exam.ModeFull
	case exam.ModeQuick:
		state.Mode = exam.ModeQuick
	default:
		return nil, fmt.Errorf("unknown mode %q (want full or quick)", modeFlag)
	}

	state.Counts.MCQ, _ = f.GetInt("mcq")
	state.Counts.TF, _ = f.GetInt("tf")
	state.Counts.Short, _ = f.GetInt("short")
	state.Counts.Essay, _ = f.GetInt("essay")
	if err := state.Counts.CheckBounds(); err != nil {
		return nil, err
	}

	quickType, _ := f.GetString("quick-type")
	if state.QuickType, err = exam.ParseQuestionType(quickType); err != nil {
		return nil, err
	}
	state.QuickCount, _ = f.GetInt("quick-count")
	if err := exam.CheckQuickCount(state.QuickCount); err != nil {
		return nil, err
	}

	levelFlag, _ := f.GetString("level")
	if state.Level, err = exam.ParseLevel(levelFlag); err != nil {
		return nil, err
	}
	if ratio, _ := f.GetString("ratio"); ratio != "" {
		biet, hieu, err := parseRatio(ratio)
		if err != nil {
			return nil, err
		}
		state.Difficulty = exam.DifficultyRatio
		state.Biet, state.Hieu = biet, hieu
		if err := state.Policy().CheckBounds(); err != nil {
			return nil, err
		}
	}

	chapters, _ := f.GetStringArray("chapter")
	sel := selection.Empty()
	for _, arg := range chapters {
		if sel, err = addChapter(sel, cat, subject, grade, arg); err != nil {
			return nil, err
		}
	}
	state.Selection = selection.WithFirstChapter(sel, cat, subject, grade)
	return state, nil
}

// parseRatio parses "biet,hieu".
func parseRatio(s string) (int, int, error) {
	b, h, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid ratio %q (want biet,hieu e.g. 30,40)", s)
	}
	biet, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	hieu, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	return biet, hieu, nil
}

// addChapter adds "id" (all lessons) or "id:1,3" (lessons by 1-based
// number) to sel. The chapter must belong to the subject and grade.
func addChapter(sel selection.Selection, cat *curriculum.Catalog, subject exam.Subject, grade, arg string) (selection.Selection, error) {
	id, nums, hasNums := strings.Cut(strings.TrimSpace(arg), ":")
	ch, ok := cat.Get(id)
	if !ok || ch.Subject != subject || ch.Grade != grade {
		return sel, fmt.Errorf("chapter %q not found for %s lớp %s", id, subject.DisplayName(), grade)
	}
	if !hasNums {
		if sel.Covers(ch.ID, ch.Lessons) {
			return sel, nil
		}
		return selection.SelectAll(sel, []curriculum.Chapter{ch}), nil
	}
	for _, n := range strings.Split(nums, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || i < 1 || i > len(ch.Lessons) {
			return sel, fmt.Errorf("chapter %s has no lesson %q (1-%d)", ch.ID, n, len(ch.Lessons))
		}
		if lesson := ch.Lessons[i-1]; !sel.Has(ch.ID, lesson) {
			sel = selection.ToggleLesson(sel, ch.ID, lesson)
		}
	}
	return sel, nil
}

// writeDocument writes doc per --format to --out or stdout.
func writeDocument(cmd *cobra.Command, doc *exam.Document) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	solutions, _ := cmd.Flags().GetBool("solutions")

	if strings.EqualFold(formatFlag, formatJSON) {
		return writeOutput(cmd, out, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		})
	}

	format, err := printout.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if format == printout.FormatXLSX && out == "" {
		return errors.New("xlsx output needs --out")
	}
	opts := printout.Options{Solutions: solutions}
	return writeOutput(cmd, out, func(w io.Writer) error {
		return printout.Write(w, format, doc, opts)
	})
}

// writeOutput runs write against the named file, or stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Đã lưu", path)
	return nil
}
