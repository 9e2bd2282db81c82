// Package printout renders exam documents for printing and export.
package printout

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/taodethi/taodethi/internal/exam"
)

// DocumentName returns the print title of a document, e.g.
// "Đề Toán - Lớp 6 - Mã 123 - 14-03-2026". The result is NFC-normalized.
func DocumentName(doc *exam.Document) string {
	name := fmt.Sprintf("Đề %s - Lớp %s - Mã %s - %s",
		doc.Subject, doc.Grade, doc.ID, doc.CreatedAt.Format("02-01-2006"))
	return norm.NFC.String(name)
}

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// FileSlug returns an ASCII, file-system-safe variant of DocumentName,
// e.g. "de-toan-lop-6-ma-123-14-03-2026".
func FileSlug(doc *exam.Document) string {
	return Slugify(DocumentName(doc))
}

// Slugify lowercases s, strips diacritics and collapses everything outside
// [a-z0-9] into single hyphens. Falls back to "de-thi".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	// đ has no decomposition.
	s = strings.ReplaceAll(s, "đ", "d")

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	s = reNonAlnum.ReplaceAllString(b.String(), "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "de-thi"
	}
	return s
}
