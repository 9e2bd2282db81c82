package llm

import "strings"

// ModelCost is a model's list price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the price of a model the app can be configured with,
// or nil. OpenRouter ids ("google/gemini-2.5-pro") are priced as the
// vendor model; OpenRouter's own margin is ignored.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if _, rest, ok := strings.Cut(modelID, "/"); ok {
		id = rest
	}
	c, ok := modelCosts[id]
	if !ok {
		return nil
	}
	return &c
}

// modelCosts covers the ids behind the friendly model names of every
// provider.
// Prices as of 2026-02.
var modelCosts = map[string]ModelCost{
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-pro-preview":  {2, 12},

	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4o-mini":  {0.15, 0.6},

	"claude-sonnet-4-5-20250929": {3, 15},
	"claude-sonnet-4.5":          {3, 15},
	"claude-haiku-4-5-20251001":  {1, 5},
}
