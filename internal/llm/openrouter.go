package llm

import "errors"

const openRouterURL = "https://openrouter.ai/api/v1"

// openRouterModels lets the friendly names of the direct providers select
// the same model family through OpenRouter.
var openRouterModels = map[string]string{
	"gemini-flash":  "google/gemini-2.5-flash",
	"gemini-pro":    "google/gemini-2.5-pro",
	"gpt":           "openai/gpt-4.1",
	"gpt-mini":      "openai/gpt-4.1-mini",
	"claude-sonnet": "anthropic/claude-sonnet-4.5",
}

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint, so
// the schema envelope and error mapping are those of OpenAIProvider.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for cfg. Unknown model names
// are sent as given, e.g. "meta-llama/llama-3.3-70b-instruct".
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = openRouterURL
	}
	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(cfg.Model, openRouterModels),
		BaseURL: base,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
