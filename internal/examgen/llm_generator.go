package examgen

import (
	"context"

	"github.com/taodethi/taodethi/internal/exam"
	"github.com/taodethi/taodethi/internal/llm"
	"github.com/taodethi/taodethi/internal/logger"
)

// Purpose tags generation requests in the LLM event log.
const Purpose = "exam-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// Generate compiles the prompt, calls the model once and normalizes the
// reply.
func (g *LLMGenerator) Generate(ctx context.Context, cfg *exam.Config) ([]exam.Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	p := Compile(cfg)
	req := llm.Request{
		System: p.System,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: p.User},
		},
		Schema:      p.Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, Classify(err)
	}

	questions, err := Normalize(resp.Content)
	if err != nil {
		return nil, Classify(err)
	}

	for _, c := range g.config.Checks {
		for _, f := range c.Check(cfg, questions) {
			g.log.Warn("generated exam check", "check", c.Name(), "finding", f)
		}
	}

	return questions, nil
}
