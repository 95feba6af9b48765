package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) AuditToModel(r *entity.AuditRecord) (*model.ChatAudit, error) {
	if r == nil {
		return nil, nil
	}

	doc, err := json.Marshal(r.Session)
	if err != nil {
		return nil, fmt.Errorf("marshal session document: %w", err)
	}

	var urgency string
	if r.Session.LeadSummary != nil {
		urgency = string(r.Session.LeadSummary.UrgencyLevel)
	}

	return &model.ChatAudit{
		Id:               r.Id,
		SessionId:        r.SessionId,
		Document:         datatypes.JSON(doc),
		UrgencyLevel:     urgency,
		RequiresFollowUp: r.Session.RequiresFollowUp != nil && *r.Session.RequiresFollowUp,
		Platform:         r.Platform,
		Environment:      r.Environment,
		SavedAt:          r.SavedAt,
	}, nil
}

func (m *AuditMapper) AuditToEntity(a *model.ChatAudit) (*entity.AuditRecord, error) {
	if a == nil {
		return nil, nil
	}

	var session entity.ChatSession
	if len(a.Document) > 0 {
		if err := json.Unmarshal(a.Document, &session); err != nil {
			return nil, fmt.Errorf("unmarshal session document: %w", err)
		}
	}

	return &entity.AuditRecord{
		Id:          a.Id,
		SessionId:   a.SessionId,
		Session:     session,
		Platform:    a.Platform,
		Environment: a.Environment,
		SavedAt:     a.SavedAt,
	}, nil
}
