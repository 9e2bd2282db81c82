package curriculum

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/taodethi/taodethi/internal/exam"
)

type key struct {
	subject exam.Subject
	grade   string
}

// Catalog is an immutable, indexed curriculum table.
type Catalog struct {
	chapters []Chapter
	byID     map[string]int
	byKey    map[key][]int
}

// Load parses one or more subject YAML documents into a validated catalog.
// Chapters keep the order in which they appear in the input.
func Load(files ...[]byte) (*Catalog, error) {
	var chapters []Chapter
	for i, data := range files {
		var f subjectFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse curriculum file %d: %w", i, err)
		}
		for _, ch := range f.Chapters {
			ch.Subject = f.Subject
			chapters = append(chapters, ch)
		}
	}
	if err := validateChapters(chapters); err != nil {
		return nil, err
	}
	return build(chapters), nil
}

func build(chapters []Chapter) *Catalog {
	c := &Catalog{
		chapters: chapters,
		byID:     make(map[string]int, len(chapters)),
		byKey:    make(map[key][]int),
	}
	for i, ch := range chapters {
		c.byID[ch.ID] = i
		k := key{ch.Subject, ch.Grade}
		c.byKey[k] = append(c.byKey[k], i)
	}
	return c
}

// Len returns the number of chapters in the catalog.
func (c *Catalog) Len() int { return len(c.chapters) }

// Get returns the chapter with the given id.
func (c *Catalog) Get(id string) (Chapter, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Chapter{}, false
	}
	return c.chapters[i], true
}

// ChapterName returns the display name of a chapter, or "" when unknown.
func (c *Catalog) ChapterName(id string) string {
	ch, _ := c.Get(id)
	return ch.Name
}

// For returns the chapters of a subject and grade in catalog order.
func (c *Catalog) For(subject exam.Subject, grade string) []Chapter {
	idx := c.byKey[key{subject, grade}]
	out := make([]Chapter, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.chapters[i])
	}
	return out
}

// Domains returns the domains present for a subject and grade, in order of
// first appearance.
func (c *Catalog) Domains(subject exam.Subject, grade string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, i := range c.byKey[key{subject, grade}] {
		d := c.chapters[i].Domain
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// InDomain returns the chapters of one domain tab.
func (c *Catalog) InDomain(subject exam.Subject, grade, domain string) []Chapter {
	var out []Chapter
	for _, i := range c.byKey[key{subject, grade}] {
		if c.chapters[i].Domain == domain {
			out = append(out, c.chapters[i])
		}
	}
	return out
}

// First returns the first chapter of a subject and grade.
func (c *Catalog) First(subject exam.Subject, grade string) (Chapter, bool) {
	idx := c.byKey[key{subject, grade}]
	if len(idx) == 0 {
		return Chapter{}, false
	}
	return c.chapters[idx[0]], true
}

// Subjects returns the subjects that have at least one chapter, in
// exam.AllSubjects order.
func (c *Catalog) Subjects() []exam.Subject {
	var out []exam.Subject
	for _, s := range exam.AllSubjects() {
		for _, g := range exam.Grades() {
			if len(c.byKey[key{s, g}]) > 0 {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Grades returns the grades that have chapters for the subject.
func (c *Catalog) Grades(subject exam.Subject) []string {
	var out []string
	for _, g := range exam.Grades() {
		if len(c.byKey[key{subject, g}]) > 0 {
			out = append(out, g)
		}
	}
	return out
}
