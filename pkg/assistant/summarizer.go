package assistant

import (
	"context"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
)

const (
	FallbackClientName        = "Cliente Web (Fallback)"
	FallbackRecommendedAction = "Contactar manualmente"
	// ManualModeCategory replaces the AI category when the transcript is button choices.
	ManualModeCategory = "Modo Manual (Botones)"
)

type SummaryRelay interface {
	Summary(ctx context.Context, messages []entity.ChatMessage) (*entity.LeadSummary, error)
}

type Summarizer struct {
	relay   SummaryRelay
	timeout time.Duration
	logger  logger.ILogger
}

func NewSummarizer(relay SummaryRelay, timeout time.Duration, log logger.ILogger) *Summarizer {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Summarizer{relay: relay, timeout: timeout, logger: log}
}

// FallbackSummary is returned whenever the relay cannot produce a usable record.
func FallbackSummary() entity.LeadSummary {
	return entity.LeadSummary{
		ClientName:        FallbackClientName,
		ContactInfo:       constant.EmptyTranscriptContactInfo,
		LegalCategory:     constant.EmptyTranscriptLegalCategory,
		CaseSummary:       "No fue posible generar el resumen automático.",
		UrgencyLevel:      entity.UrgencyMedium,
		RecommendedAction: FallbackRecommendedAction,
	}
}

func emptyTranscriptSummary() entity.LeadSummary {
	return entity.LeadSummary{
		ClientName:        constant.EmptyTranscriptClientName,
		ContactInfo:       constant.EmptyTranscriptContactInfo,
		LegalCategory:     constant.EmptyTranscriptLegalCategory,
		CaseSummary:       constant.EmptyTranscriptCaseSummary,
		UrgencyLevel:      entity.UrgencyLow,
		RecommendedAction: constant.EmptyTranscriptRecommendedAction,
	}
}

// Summarize never fails; every returned record is Complete.
func (s *Summarizer) Summarize(ctx context.Context, transcript []entity.ChatMessage, manualMode bool) entity.LeadSummary {
	summary := s.extract(ctx, transcript)
	if manualMode {
		summary.LegalCategory = ManualModeCategory
	}
	return summary
}

func (s *Summarizer) extract(ctx context.Context, transcript []entity.ChatMessage) entity.LeadSummary {
	if len(transcript) == 0 {
		return emptyTranscriptSummary()
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.relay.Summary(reqCtx, transcript)
	if err != nil {
		s.logger.Warn("Summarizer", "Summary request failed, using fallback record", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackSummary()
	}
	if !summary.Complete() {
		s.logger.Warn("Summarizer", "Summary record incomplete, using fallback record", map[string]interface{}{
			"urgency": summary.UrgencyLevel,
		})
		return FallbackSummary()
	}
	return *summary
}
