package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cokeastorga/astorgayabogados/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(content string) string {
	raw, _ := json.Marshal(goopenai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
		Choices: []goopenai.ChatCompletionChoice{{
			Index:        0,
			Message:      goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: content},
			FinishReason: goopenai.FinishReasonStop,
		}},
	})
	return string(raw)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var captured goopenai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("Entiendo su situación.")))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", srv.URL+"/v1")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hola"},
		{Role: llm.RoleModel, Content: "Bienvenido"},
		{Role: llm.RoleUser, Content: "Tengo una deuda"},
	}, llm.WithSystemInstruction("Eres un abogado"))

	require.NoError(t, err)
	assert.Equal(t, "Entiendo su situación.", out)
	assert.Equal(t, goopenai.GPT4oMini, captured.Model)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Equal(t, goopenai.ChatMessageRoleUser, captured.Messages[1].Role)
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, captured.Messages[2].Role)
	assert.Nil(t, captured.ResponseFormat)
}

func TestChatJSONModeUsesJSONObjectFormat(t *testing.T) {
	var captured goopenai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion(`{"a":"b"}`)))
	}))
	defer srv.Close()

	schema := &llm.Schema{Type: llm.TypeObject, Properties: map[string]*llm.Schema{"a": {Type: llm.TypeString}}, Required: []string{"a"}}
	out, err := NewOpenAIProvider("sk", "gpt-x", srv.URL+"/v1").Generate(context.Background(), "extrae", llm.WithJSONSchema(schema))

	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, out)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONObject, captured.ResponseFormat.Type)
	assert.Contains(t, captured.Messages[0].Content, "JSON")
	assert.Equal(t, "gpt-x", captured.Model)
}

func TestChatPropagatesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("sk", "", srv.URL+"/v1").Generate(context.Background(), "hola")
	assert.Error(t, err)
}

func TestMapRole(t *testing.T) {
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, mapRole(llm.RoleModel))
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, mapRole(llm.RoleAssistant))
	assert.Equal(t, goopenai.ChatMessageRoleUser, mapRole("visitor"))
}
