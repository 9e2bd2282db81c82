package curriculum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taodethi/taodethi/internal/exam"
)

// validateChapters performs all structural checks on the chapter set.
// Returns a combined error describing all problems found, or nil if valid.
func validateChapters(chapters []Chapter) error {
	var errs []string

	ids := make(map[string]bool, len(chapters))
	for _, ch := range chapters {
		if ch.ID == "" {
			errs = append(errs, fmt.Sprintf("chapter %q has empty id", ch.Name))
			continue
		}
		if ids[ch.ID] {
			errs = append(errs, fmt.Sprintf("duplicate chapter ID: %q", ch.ID))
		}
		ids[ch.ID] = true

		if _, err := exam.ParseSubject(string(ch.Subject)); err != nil {
			errs = append(errs, fmt.Sprintf("chapter %q: %v", ch.ID, err))
		}
		if !exam.ValidGrade(ch.Grade) {
			errs = append(errs, fmt.Sprintf("chapter %q has invalid grade %q", ch.ID, ch.Grade))
		}
		if ch.Domain == "" {
			errs = append(errs, fmt.Sprintf("chapter %q has empty domain", ch.ID))
		}
		if ch.Name == "" {
			errs = append(errs, fmt.Sprintf("chapter %q has empty name", ch.ID))
		}
		if len(ch.Lessons) == 0 {
			errs = append(errs, fmt.Sprintf("chapter %q has no lessons", ch.ID))
		}
		seen := make(map[string]bool, len(ch.Lessons))
		for _, l := range ch.Lessons {
			if seen[l] {
				errs = append(errs, fmt.Sprintf("chapter %q repeats lesson %q", ch.ID, l))
			}
			seen[l] = true
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid curriculum:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
