package service

import (
	"context"
	"errors"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/repository/contract"
	"github.com/cokeastorga/astorgayabogados/internal/repository/specification"
	"github.com/cokeastorga/astorgayabogados/pkg/events"
)

var ErrMissingSessionId = errors.New("session id is required")

type IAuditService interface {
	Save(ctx context.Context, session *entity.ChatSession) (*dto.SaveAuditResponse, error)
	FindBySession(ctx context.Context, sessionId string) ([]*dto.AuditRecordResponse, error)
}

type auditService struct {
	repo        contract.AuditRepository
	publisher   events.Publisher
	logger      logger.ILogger
	platform    string
	environment string
}

// NewAuditService accepts a nil publisher; lead events are then skipped.
func NewAuditService(repo contract.AuditRepository, publisher events.Publisher, log logger.ILogger, platform, environment string) IAuditService {
	return &auditService{
		repo:        repo,
		publisher:   publisher,
		logger:      log,
		platform:    platform,
		environment: environment,
	}
}

func (s *auditService) Save(ctx context.Context, session *entity.ChatSession) (*dto.SaveAuditResponse, error) {
	if session.Id == "" {
		return nil, ErrMissingSessionId
	}

	record := &entity.AuditRecord{
		SessionId:   session.Id,
		Session:     *session,
		Platform:    s.platform,
		Environment: s.environment,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("AuditService", "Failed to store chat audit", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("AuditService", "Chat audit stored", map[string]interface{}{
		"session_id": session.Id,
		"audit_id":   record.Id.String(),
		"messages":   len(session.Messages),
	})

	if s.publisher != nil && session.LeadSummary != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := s.publisher.Publish(pubCtx, events.NewLeadCapturedEvent(record)); err != nil {
			s.logger.Warn("AuditService", "Failed to publish lead event", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.SaveAuditResponse{Success: true, Id: record.Id}, nil
}

func (s *auditService) FindBySession(ctx context.Context, sessionId string) ([]*dto.AuditRecordResponse, error) {
	if sessionId == "" {
		return nil, ErrMissingSessionId
	}

	records, err := s.repo.FindAll(ctx,
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "saved_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AuditRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, &dto.AuditRecordResponse{
			Id:          r.Id,
			SessionId:   r.SessionId,
			Session:     r.Session,
			Platform:    r.Platform,
			Environment: r.Environment,
			SavedAt:     r.SavedAt,
		})
	}
	return res, nil
}
