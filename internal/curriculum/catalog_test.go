package curriculum

import (
	"strings"
	"testing"

	"github.com/taodethi/taodethi/internal/exam"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()
	if c.Len() != 133 {
		t.Errorf("Len() = %d, want 133", c.Len())
	}
	subjects := c.Subjects()
	if len(subjects) != 3 || subjects[0] != exam.SubjectMath {
		t.Errorf("Subjects() = %v", subjects)
	}
}

func TestMathHasEveryGrade(t *testing.T) {
	got := Default().Grades(exam.SubjectMath)
	if len(got) != 12 {
		t.Errorf("math grades = %v, want 1..12", got)
	}
}

func TestForKeepsCatalogOrder(t *testing.T) {
	chs := Default().For(exam.SubjectMath, "1")
	if len(chs) == 0 {
		t.Fatal("no chapters for Toán 1")
	}
	if chs[0].ID != "m1_c1" || chs[0].Name != "Các số đến 10" {
		t.Errorf("first chapter = %s %q", chs[0].ID, chs[0].Name)
	}
	first, ok := Default().First(exam.SubjectMath, "1")
	if !ok || first.ID != chs[0].ID {
		t.Errorf("First() = %v, %v", first.ID, ok)
	}
}

func TestDomainsPartitionChapters(t *testing.T) {
	c := Default()
	for _, s := range c.Subjects() {
		for _, g := range c.Grades(s) {
			total := 0
			for _, d := range c.Domains(s, g) {
				in := c.InDomain(s, g, d)
				if len(in) == 0 {
					t.Errorf("%s %s domain %q is empty", s, g, d)
				}
				total += len(in)
			}
			if want := len(c.For(s, g)); total != want {
				t.Errorf("%s %s: domains cover %d chapters, want %d", s, g, total, want)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Default().Get("nope"); ok {
		t.Error("expected unknown id to be missing")
	}
	if name := Default().ChapterName("nope"); name != "" {
		t.Errorf("ChapterName(nope) = %q", name)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate id",
			yaml: `
subject: Toán
chapters:
  - {id: a, grade: "6", domain: D, name: A, lessons: [x]}
  - {id: a, grade: "6", domain: D, name: B, lessons: [y]}
`,
			want: "duplicate chapter ID",
		},
		{
			name: "no lessons",
			yaml: `
subject: Toán
chapters:
  - {id: a, grade: "6", domain: D, name: A, lessons: []}
`,
			want: "no lessons",
		},
		{
			name: "bad grade",
			yaml: `
subject: Toán
chapters:
  - {id: a, grade: "13", domain: D, name: A, lessons: [x]}
`,
			want: "invalid grade",
		},
		{
			name: "bad subject",
			yaml: `
subject: Sinh học
chapters:
  - {id: a, grade: "6", domain: D, name: A, lessons: [x]}
`,
			want: "unknown subject",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestHasLesson(t *testing.T) {
	ch := Chapter{Lessons: []string{"a", "b"}}
	if !ch.HasLesson("b") || ch.HasLesson("c") {
		t.Error("HasLesson mismatch")
	}
}
