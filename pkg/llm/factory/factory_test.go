package factory

import (
	"errors"
	"testing"

	"github.com/cokeastorga/astorgayabogados/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderChainSkipsMissingCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Keys.GoogleGemini = "g-key"
	cfg.Ai.GeminiModel = "gemini-2.5-flash"

	chain, errs := NewProviderChain(cfg)

	require.Len(t, chain, 1)
	assert.Equal(t, ProviderGemini, chain[0].Name())
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrMissingCredential))
}

func TestNewProviderChainOrder(t *testing.T) {
	cfg := &config.Config{}
	cfg.Keys.GoogleGemini = "g-key"
	cfg.Keys.OpenAI = "sk-key"

	chain, errs := NewProviderChain(cfg)

	assert.Empty(t, errs)
	require.Len(t, chain, 2)
	assert.Equal(t, ProviderGemini, chain[0].Name())
	assert.Equal(t, ProviderOpenAI, chain[1].Name())
}

func TestNewLLMProviderUnknown(t *testing.T) {
	_, err := NewLLMProvider("ollama", &config.Config{})
	assert.Error(t, err)
}
