package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ASSISTANT_REQUEST_TIMEOUT", "")
	t.Setenv("ASSISTANT_HISTORY_WINDOW", "")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.Assistant.RequestTimeout)
	assert.Equal(t, 20, cfg.Assistant.HistoryWindow)
	assert.Equal(t, "+56 9 500 89 295", cfg.Assistant.FirmPhone)
	assert.Equal(t, "gpt-4o-mini", cfg.Ai.OpenAIModel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ASSISTANT_REQUEST_TIMEOUT", "3s")
	t.Setenv("ASSISTANT_HISTORY_WINDOW", "8")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Assistant.RequestTimeout)
	assert.Equal(t, 8, cfg.Assistant.HistoryWindow)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 0.0001)
	assert.Equal(t, "sk-test", cfg.Keys.OpenAI)
}

func TestGetEnvHelpersIgnoreGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_FLOAT", "warm")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
	assert.InDelta(t, 0.5, getEnvAsFloat("X_FLOAT", 0.5), 0.0001)
}
