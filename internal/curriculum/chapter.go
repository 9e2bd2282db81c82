package curriculum

import "github.com/taodethi/taodethi/internal/exam"

// Chapter is one selectable curriculum unit with its ordered lessons.
type Chapter struct {
	ID      string       `yaml:"id"`
	Subject exam.Subject `yaml:"-"`
	Grade   string       `yaml:"grade"`
	Domain  string       `yaml:"domain"`
	Name    string       `yaml:"name"`
	Lessons []string     `yaml:"lessons"`
}

// HasLesson reports whether lesson belongs to the chapter.
func (c Chapter) HasLesson(lesson string) bool {
	for _, l := range c.Lessons {
		if l == lesson {
			return true
		}
	}
	return false
}

// subjectFile is the on-disk shape of one subject's YAML file.
type subjectFile struct {
	Subject  exam.Subject `yaml:"subject"`
	Chapters []Chapter    `yaml:"chapters"`
}
