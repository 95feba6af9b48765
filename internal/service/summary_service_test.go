package service

import (
	"context"
	"testing"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeBuildsTranscriptPrompt(t *testing.T) {
	lead := entity.LeadSummary{
		ClientName:        "Pedro",
		ContactInfo:       "+56 9 1111 2222",
		LegalCategory:     "Penal",
		CaseSummary:       "Formalizado por receptación.",
		UrgencyLevel:      entity.UrgencyCritical,
		RecommendedAction: "Llamar hoy",
	}
	gw := &fakeGateway{extraction: gateway.Extraction{Data: mustJSON(lead), Provider: "gemini"}}

	res, err := NewSummaryService(gw, logger.NewNopLogger()).Summarize(context.Background(), []entity.ChatMessage{
		{Role: entity.ChatRoleUser, Text: "Me formalizaron"},
		{Role: entity.ChatRoleModel, Text: "¿Cuándo?"},
	})

	require.NoError(t, err)
	assert.Equal(t, lead, res.Summary)
	assert.False(t, res.Degraded)
	assert.Contains(t, gw.gotPrompt, "USER: Me formalizaron\nMODEL: ¿Cuándo?")
	assert.Len(t, gw.gotSchema.Required, 6)
	assert.Equal(t, entity.UrgencyLevels(), gw.gotSchema.Properties["urgencyLevel"].Enum)
}

func TestSummarizeEmptyTranscriptSkipsProviders(t *testing.T) {
	gw := &fakeGateway{}

	res, err := NewSummaryService(gw, logger.NewNopLogger()).Summarize(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, gw.extracts)
	assert.Equal(t, "Desconocido", res.Summary.ClientName)
	assert.Equal(t, entity.UrgencyLow, res.Summary.UrgencyLevel)
}

func TestSummarizePassesThroughManualReview(t *testing.T) {
	gw := &fakeGateway{extraction: gateway.Extraction{Data: ManualReviewRecord(), Provider: gateway.ProviderNone, Degraded: true}}

	res, err := NewSummaryService(gw, logger.NewNopLogger()).Summarize(context.Background(), []entity.ChatMessage{
		{Role: entity.ChatRoleUser, Text: "Hola"},
	})

	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, entity.UrgencyHigh, res.Summary.UrgencyLevel)
}
