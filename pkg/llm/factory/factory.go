package factory

import (
	"fmt"

	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gemini"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/openai"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var ErrMissingCredential = fmt.Errorf("provider credential not configured")

func NewLLMProvider(providerType string, cfg *config.Config) (llm.LLMProvider, error) {
	switch providerType {
	case ProviderGemini:
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("%s: %w", providerType, ErrMissingCredential)
		}
		return gemini.NewGeminiProvider(cfg.Ai.GeminiBaseURL, cfg.Keys.GoogleGemini, cfg.Ai.GeminiModel), nil
	case ProviderOpenAI:
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("%s: %w", providerType, ErrMissingCredential)
		}
		return openai.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIModel, cfg.Ai.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewProviderChain returns the configured providers in failover order, primary first.
func NewProviderChain(cfg *config.Config) ([]llm.LLMProvider, []error) {
	chain := make([]llm.LLMProvider, 0, 2)
	errs := make([]error, 0)
	for _, name := range []string{ProviderGemini, ProviderOpenAI} {
		p, err := NewLLMProvider(name, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chain = append(chain, p)
	}
	return chain, errs
}
