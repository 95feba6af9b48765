package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceReply(t *testing.T) {
	gw := &fakeGateway{reply: gateway.Reply{Text: "¿Cuándo ocurrió?", Provider: "gemini"}}
	svc := NewChatService(gw, logger.NewNopLogger())

	res := svc.Reply(context.Background(), &dto.ChatRequest{
		Message: "Me despidieron ayer",
		Context: "Tengo un problema laboral o despido injustificado.",
		History: []dto.ChatHistoryItem{
			{Role: "model", Parts: []dto.ChatPart{{Text: "Bienvenido"}}},
			{Role: "user", Parts: []dto.ChatPart{{Text: "Hola, "}, {Text: "necesito ayuda"}}},
		},
	})

	assert.Equal(t, &dto.ChatResponse{Text: "¿Cuándo ocurrió?"}, res)
	assert.Contains(t, gw.gotSystem, "CONTEXTO INICIAL DEL USUARIO: Tengo un problema laboral")
	require.Len(t, gw.gotHistory, 2)
	assert.Equal(t, "model", gw.gotHistory[0].Role)
	assert.Equal(t, "Hola, necesito ayuda", gw.gotHistory[1].Content)
	assert.Equal(t, "Me despidieron ayer", gw.gotMessage)
}

func TestChatServiceDefaultsContextAndFlagsDegraded(t *testing.T) {
	gw := &fakeGateway{reply: gateway.Reply{Text: DegradedReply("+56 9 500 89 295"), Degraded: true}}

	res := NewChatService(gw, logger.NewNopLogger()).Reply(context.Background(), &dto.ChatRequest{Message: "Hola"})

	assert.True(t, res.Degraded)
	assert.Contains(t, res.Text, "+56 9 500 89 295")
	assert.Contains(t, gw.gotSystem, "CONTEXTO INICIAL DEL USUARIO: General")
}

func TestManualReviewRecordIsHighUrgency(t *testing.T) {
	var s entity.LeadSummary
	require.NoError(t, json.Unmarshal(ManualReviewRecord(), &s))

	assert.True(t, s.Complete())
	assert.Equal(t, entity.UrgencyHigh, s.UrgencyLevel)
	assert.Equal(t, "Revisión manual requerida", s.RecommendedAction)
	assert.NoError(t, LeadSummarySchema().Validate(ManualReviewRecord()))
}
