package exam

// Mode selects between one question type (quick) and all four (full).
type Mode string

const (
	ModeFull  Mode = "full"
	ModeQuick Mode = "quick"
)

// Topic is one selected chapter with the lessons chosen from it.
type Topic struct {
	ChapterName string   `json:"chapterName"`
	Lessons     []string `json:"lessons"`
}

// Config is a validated generation request. It is built fresh for every
// request and not modified after it reaches the prompt compiler.
type Config struct {
	Subject    Subject          `json:"subject"`
	Grade      string           `json:"grade"`
	Mode       Mode             `json:"mode"`
	Topics     []Topic          `json:"topics"`
	Difficulty DifficultyPolicy `json:"difficulty"`
	Counts     Counts           `json:"counts"`
}

// TotalQuestions returns the number of questions the config asks for.
func (c *Config) TotalQuestions() int {
	return c.Counts.Total()
}
