package printout

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/taodethi/taodethi/internal/exam"
)

// Format is an export format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "text", "txt", "html" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Write renders doc in the given format. Options are ignored for XLSX,
// which always carries answers.
func Write(w io.Writer, f Format, doc *exam.Document, opts Options) error {
	switch f {
	case FormatText:
		return WriteText(w, doc, opts)
	case FormatHTML:
		return WriteHTML(w, doc, opts)
	case FormatXLSX:
		return WriteAnswerKey(w, doc)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// FileName returns the default export file name for doc. Answer keys and
// papers with solutions get a "-dap-an" suffix.
func FileName(doc *exam.Document, f Format, opts Options) string {
	name := FileSlug(doc)
	if f == FormatXLSX || opts.Solutions {
		name += "-dap-an"
	}
	return name + f.Ext()
}

// Save writes doc into dir under FileName and returns the full path.
func Save(dir string, f Format, doc *exam.Document, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(doc, f, opts))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, f, doc, opts); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
