package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
)

type fakeGenerator struct {
	calls     int
	questions []exam.Question
	err       error
	during    func()
}

func (f *fakeGenerator) Generate(_ context.Context, _ *exam.Config) ([]exam.Question, error) {
	f.calls++
	if f.during != nil {
		f.during()
	}
	return f.questions, f.err
}

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

func TestGenerate_MissingKeyMakesNoCall(t *testing.T) {
	s := stateWith("m6_c1")
	gen := &fakeGenerator{}

	err := s.Generate(context.Background(), gen, testLookup, fixedNow)
	if !errors.Is(err, exam.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("expected no generator call")
	}
	if s.Busy() {
		t.Error("busy should stay false")
	}
}

func TestGenerate_ValidationMakesNoCall(t *testing.T) {
	s := New(exam.SubjectMath, "6")
	s.APIKey = "k"
	gen := &fakeGenerator{}

	err := s.Generate(context.Background(), gen, testLookup, fixedNow)
	if !errors.Is(err, exam.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("expected no generator call")
	}
}

func TestGenerate_Success(t *testing.T) {
	s := stateWith("m6_c1")
	s.APIKey = "k"
	gen := &fakeGenerator{questions: []exam.Question{{ID: "1", Type: exam.TypeMCQ}}}
	gen.during = func() {
		if !s.Busy() {
			t.Error("expected busy during the call")
		}
		if s.CanGenerate() {
			t.Error("trigger should be disabled during the call")
		}
	}

	if err := s.Generate(context.Background(), gen, testLookup, fixedNow); err != nil {
		t.Fatal(err)
	}
	if s.Busy() {
		t.Error("busy should be cleared")
	}
	if s.Doc == nil || len(s.Doc.Questions) != 1 {
		t.Fatalf("expected a document with 1 question, got %+v", s.Doc)
	}
	if s.Doc.Title != "Đề kiểm tra: Tập hợp các số tự nhiên" {
		t.Errorf("title = %q", s.Doc.Title)
	}
	if !s.Doc.CreatedAt.Equal(fixedNow()) {
		t.Errorf("CreatedAt = %v", s.Doc.CreatedAt)
	}
	if s.LastErr != nil {
		t.Errorf("LastErr = %v", s.LastErr)
	}
}

func TestGenerate_FailureKeepsPreviousDocument(t *testing.T) {
	s := stateWith("m6_c1")
	s.APIKey = "k"
	prev := &exam.Document{ID: "123", Title: "old"}
	s.Doc = prev

	gen := &fakeGenerator{err: &llm.ErrAuthentication{StatusCode: 403}}
	err := s.Generate(context.Background(), gen, testLookup, fixedNow)

	if !errors.Is(err, exam.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if s.Doc != prev {
		t.Error("previous document should be kept")
	}
	if s.Busy() {
		t.Error("busy should be cleared after failure")
	}
	if !errors.Is(s.LastErr, exam.ErrInvalidCredential) {
		t.Errorf("LastErr = %v", s.LastErr)
	}
}

func TestBegin_Busy(t *testing.T) {
	s := stateWith("m6_c1")
	s.APIKey = "k"

	req, err := s.Begin(testLookup)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Begin(testLookup); !errors.Is(err, exam.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	if err := s.Finish(req, nil, errors.New("timeout"), fixedNow()); !errors.Is(err, exam.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
	if s.Busy() {
		t.Error("busy should be cleared")
	}
}

func TestEditQuestion(t *testing.T) {
	s := stateWith("m6_c1")
	if err := s.EditQuestion(0, exam.Question{}); !errors.Is(err, exam.ErrQuestionPosition) {
		t.Errorf("expected ErrQuestionPosition without a document, got %v", err)
	}

	s.Doc = &exam.Document{Questions: []exam.Question{{ID: "a", Question: "old"}}}
	if err := s.EditQuestion(0, exam.Question{Question: "new"}); err != nil {
		t.Fatal(err)
	}
	if got := s.Doc.Questions[0]; got.Question != "new" || got.ID != "a" {
		t.Errorf("unexpected question %+v", got)
	}
}
