package exam

// Question is one generated exam item. Options holds four choices for mcq
// and four statements for tf; Points is only meaningful for essays.
type Question struct {
	ID         string       `json:"id,omitempty"`
	Type       QuestionType `json:"type"`
	Chapter    string       `json:"chapter"`
	Lesson     string       `json:"lesson,omitempty"`
	Difficulty string       `json:"difficulty"`
	Question   string       `json:"question"`
	Options    []string     `json:"options,omitempty"`
	Answer     string       `json:"answer"`
	Solution   string       `json:"solution"`
	Points     *float64     `json:"points,omitempty"`
}

// PlaceholderOptions is substituted for a missing option list on mcq and
// tf questions.
func PlaceholderOptions() []string {
	return []string{"A", "B", "C", "D"}
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.Points != nil {
		p := *q.Points
		c.Points = &p
	}
	return c
}
