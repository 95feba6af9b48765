package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gateway"
)

// ProviderGateway is the failover chain the relay services depend on.
type ProviderGateway interface {
	Reply(ctx context.Context, systemPrompt string, history []llm.Message, message string) gateway.Reply
	StructuredExtract(ctx context.Context, schema *llm.Schema, prompt string) gateway.Extraction
}

type IChatService interface {
	Reply(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
}

type chatService struct {
	gateway ProviderGateway
	logger  logger.ILogger
}

func NewChatService(gw ProviderGateway, log logger.ILogger) IChatService {
	return &chatService{gateway: gw, logger: log}
}

func (s *chatService) Reply(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	topic := strings.TrimSpace(req.Context)
	if topic == "" {
		topic = "General"
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, item := range req.History {
		var b strings.Builder
		for _, part := range item.Parts {
			b.WriteString(part.Text)
		}
		history = append(history, llm.Message{Role: item.Role, Content: b.String()})
	}

	reply := s.gateway.Reply(ctx, fmt.Sprintf(constant.IntakeSystemPromptV1, topic), history, req.Message)

	s.logger.Info("ChatService", "Reply generated", map[string]interface{}{
		"provider":     reply.Provider,
		"degraded":     reply.Degraded,
		"history_size": len(history),
	})

	return &dto.ChatResponse{Text: reply.Text, Degraded: reply.Degraded}
}

// DegradedReply is the fixed high-demand reply, shared with the client so it can recognise it.
func DegradedReply(firmPhone string) string {
	return fmt.Sprintf(constant.DegradedReplyTemplate, firmPhone)
}

// ManualReviewRecord is what structured extraction yields once every provider failed.
func ManualReviewRecord() json.RawMessage {
	raw, _ := json.Marshal(entity.LeadSummary{
		ClientName:        constant.ManualReviewClientName,
		ContactInfo:       constant.ManualReviewContactInfo,
		LegalCategory:     constant.ManualReviewLegalCategory,
		CaseSummary:       constant.ManualReviewCaseSummary,
		UrgencyLevel:      entity.UrgencyHigh,
		RecommendedAction: constant.ManualReviewRecommendedAction,
	})
	return raw
}
