package exam

import (
	"fmt"
	"strings"
)

// Subject is a curriculum subject. Values are the Vietnamese names used in
// prompts and document titles.
type Subject string

const (
	SubjectMath      Subject = "Toán"
	SubjectPhysics   Subject = "Vật lí"
	SubjectChemistry Subject = "Hóa học"
)

// AllSubjects returns the supported subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectPhysics, SubjectChemistry}
}

// DisplayName returns the long subject name shown in pickers.
func (s Subject) DisplayName() string {
	switch s {
	case SubjectMath:
		return "Toán học"
	default:
		return string(s)
	}
}

// ParseSubject accepts the Vietnamese name or an ASCII alias
// ("toan", "vatli", "hoahoc", "math", "physics", "chemistry").
func ParseSubject(s string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toán", "toan", "math":
		return SubjectMath, nil
	case "vật lí", "vật lý", "vatli", "vat-li", "physics":
		return SubjectPhysics, nil
	case "hóa học", "hoá học", "hoahoc", "hoa-hoc", "chemistry":
		return SubjectChemistry, nil
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// QuestionType is the answer format of a generated question.
type QuestionType string

const (
	TypeMCQ   QuestionType = "mcq"
	TypeTF    QuestionType = "tf"
	TypeShort QuestionType = "short"
	TypeEssay QuestionType = "essay"
)

// AllTypes returns the question types in canonical section order.
func AllTypes() []QuestionType {
	return []QuestionType{TypeMCQ, TypeTF, TypeShort, TypeEssay}
}

// Valid reports whether t is one of the four known types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMCQ, TypeTF, TypeShort, TypeEssay:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list
// (four choices for mcq, four statements for tf).
func (t QuestionType) HasOptions() bool {
	return t == TypeMCQ || t == TypeTF
}

// Label returns the Vietnamese section label for t.
func (t QuestionType) Label() string {
	switch t {
	case TypeMCQ:
		return "Trắc nghiệm"
	case TypeTF:
		return "Đúng/Sai"
	case TypeShort:
		return "Trả lời ngắn"
	case TypeEssay:
		return "Tự luận"
	default:
		return string(t)
	}
}

// ParseQuestionType parses a type identifier.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q (want mcq, tf, short or essay)", s)
	}
	return t, nil
}

// Level is a cognitive level of the GDPT 2018 standard.
type Level string

const (
	LevelBiet    Level = "Biết"
	LevelHieu    Level = "Hiểu"
	LevelVanDung Level = "Vận dụng"
)

// AllLevels returns the cognitive levels from recall to application.
func AllLevels() []Level {
	return []Level{LevelBiet, LevelHieu, LevelVanDung}
}

// ParseLevel accepts the Vietnamese level name or an ASCII alias.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "biết", "biet", "recall":
		return LevelBiet, nil
	case "hiểu", "hieu", "comprehension":
		return LevelHieu, nil
	case "vận dụng", "van dung", "vandung", "van-dung", "application":
		return LevelVanDung, nil
	}
	return "", fmt.Errorf("unknown cognitive level %q", s)
}

// Grades returns the supported grades "1" through "12".
func Grades() []string {
	return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
}

// GradeLevel groups grades by school level for pickers.
type GradeLevel struct {
	Name   string
	Grades []string
}

// GradeLevels returns the three school levels.
func GradeLevels() []GradeLevel {
	return []GradeLevel{
		{Name: "Tiểu học", Grades: []string{"1", "2", "3", "4", "5"}},
		{Name: "THCS", Grades: []string{"6", "7", "8", "9"}},
		{Name: "THPT", Grades: []string{"10", "11", "12"}},
	}
}

// ValidGrade reports whether g is a supported grade.
func ValidGrade(g string) bool {
	for _, x := range Grades() {
		if x == g {
			return true
		}
	}
	return false
}
