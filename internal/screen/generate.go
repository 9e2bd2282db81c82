package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/session"
)

// GenerateDoneMsg carries the raw outcome of a generation command. The app
// applies it to the session before any screen sees it.
type GenerateDoneMsg struct {
	Request   *session.Request
	Questions []exam.Question
	Err       error
}

// GenerationFinishedMsg is delivered to the active screen once the session
// holds the outcome. Err is the classified failure kind, nil on success.
type GenerationFinishedMsg struct {
	Err error
}

// StartGeneration validates the session and returns a command that runs the
// model call off the update loop. A validation failure returns the error
// and no command.
func (e *Env) StartGeneration() (tea.Cmd, error) {
	req, err := e.State.Begin(e.Catalog)
	if err != nil {
		return nil, err
	}
	gen, err := e.NewGenerator(e.State.APIKey)
	if err != nil {
		return nil, e.State.Finish(req, nil, err, e.now())
	}

	e.Log.Info("generation started",
		"subject", string(req.Config.Subject),
		"grade", req.Config.Grade,
		"questions", req.Config.TotalQuestions(),
	)

	return func() tea.Msg {
		questions, err := gen.Generate(context.Background(), req.Config)
		return GenerateDoneMsg{Request: req, Questions: questions, Err: err}
	}, nil
}

// FinishGeneration applies a finished generation to the session.
func (e *Env) FinishGeneration(msg GenerateDoneMsg) GenerationFinishedMsg {
	err := e.State.Finish(msg.Request, msg.Questions, msg.Err, e.now())
	if err != nil {
		e.Log.Warn("generation failed", "kind", err.Error(), "error", msg.Err)
	} else {
		e.Log.Info("generation finished", "questions", len(msg.Questions))
	}
	return GenerationFinishedMsg{Err: err}
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
