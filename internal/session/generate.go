package session

import (
	"context"
	"time"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/selection"
)

// Request is a validated generation request issued by Begin.
type Request struct {
	Config *exam.Config
	Title  string
}

// Begin validates the state and marks a request as in flight. The caller
// must hand the outcome to Finish. No network call may be made when Begin
// returns an error.
func (s *State) Begin(lookup selection.Lookup) (*Request, error) {
	if s.APIKey == "" {
		s.LastErr = exam.ErrMissingCredential
		return nil, exam.ErrMissingCredential
	}
	if s.busy {
		return nil, exam.ErrBusy
	}
	cfg, title, err := Build(s, lookup)
	if err != nil {
		s.LastErr = err
		return nil, err
	}
	s.busy = true
	return &Request{Config: cfg, Title: title}, nil
}

// Finish clears the busy flag and applies the outcome of a request. On
// success the document is replaced in one assignment; on failure the
// previous document is kept.
func (s *State) Finish(req *Request, questions []exam.Question, err error, now time.Time) error {
	s.busy = false
	if err != nil {
		s.LastErr = examgen.Classify(err)
		return s.LastErr
	}
	s.Doc = exam.NewDocument(req.Config, req.Title, questions, now, "")
	s.LastErr = nil
	return nil
}

// Generate runs one blocking generation: Begin, the model call, Finish.
func (s *State) Generate(ctx context.Context, gen examgen.Generator, lookup selection.Lookup, now func() time.Time) error {
	req, err := s.Begin(lookup)
	if err != nil {
		return err
	}
	questions, err := gen.Generate(ctx, req.Config)
	return s.Finish(req, questions, err, now())
}
