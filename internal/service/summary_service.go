package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
)

type SummaryResult struct {
	Summary  entity.LeadSummary
	Provider string
	Degraded bool
}

type ISummaryService interface {
	Summarize(ctx context.Context, messages []entity.ChatMessage) (*SummaryResult, error)
}

type summaryService struct {
	gateway ProviderGateway
	logger  logger.ILogger
}

func NewSummaryService(gw ProviderGateway, log logger.ILogger) ISummaryService {
	return &summaryService{gateway: gw, logger: log}
}

// LeadSummarySchema is the fixed six-field extraction schema.
func LeadSummarySchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"clientName":        {Type: llm.TypeString, Description: "Nombre del cliente si se mencionó, o 'Anónimo'"},
			"contactInfo":       {Type: llm.TypeString, Description: "Teléfono, email o 'No provisto'"},
			"legalCategory":     {Type: llm.TypeString, Description: "Área del derecho (Penal, Civil, Familia, etc.)"},
			"caseSummary":       {Type: llm.TypeString, Description: "Resumen breve de los hechos y la problemática (máx 50 palabras)"},
			"urgencyLevel":      {Type: llm.TypeString, Enum: entity.UrgencyLevels()},
			"recommendedAction": {Type: llm.TypeString, Description: "Sugerencia para el abogado que tomará el caso"},
		},
		Required: []string{"clientName", "contactInfo", "legalCategory", "caseSummary", "urgencyLevel", "recommendedAction"},
	}
}

func (s *summaryService) Summarize(ctx context.Context, messages []entity.ChatMessage) (*SummaryResult, error) {
	if len(messages) == 0 {
		return &SummaryResult{
			Summary: entity.LeadSummary{
				ClientName:        constant.EmptyTranscriptClientName,
				ContactInfo:       constant.EmptyTranscriptContactInfo,
				LegalCategory:     constant.EmptyTranscriptLegalCategory,
				CaseSummary:       constant.EmptyTranscriptCaseSummary,
				UrgencyLevel:      entity.UrgencyLow,
				RecommendedAction: constant.EmptyTranscriptRecommendedAction,
			},
			Provider: "none",
		}, nil
	}

	prompt := fmt.Sprintf(constant.LeadExtractionPromptV1, entity.Transcript(messages))
	extraction := s.gateway.StructuredExtract(ctx, LeadSummarySchema(), prompt)

	var summary entity.LeadSummary
	if err := json.Unmarshal(extraction.Data, &summary); err != nil {
		return nil, fmt.Errorf("decode lead summary: %w", err)
	}

	s.logger.Info("SummaryService", "Lead summary extracted", map[string]interface{}{
		"provider": extraction.Provider,
		"degraded": extraction.Degraded,
		"urgency":  summary.UrgencyLevel,
		"messages": len(messages),
	})

	return &SummaryResult{Summary: summary, Provider: extraction.Provider, Degraded: extraction.Degraded}, nil
}
