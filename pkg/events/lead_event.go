package events

import (
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
)

// NewLeadCapturedEvent announces a stored audit record carrying a lead summary.
// The transcript itself stays in the audit store.
func NewLeadCapturedEvent(record *entity.AuditRecord) LeadEvent {
	data := map[string]interface{}{
		"audit_id":   record.Id.String(),
		"session_id": record.SessionId,
		"platform":   record.Platform,
	}
	if s := record.Session.LeadSummary; s != nil {
		data["client_name"] = s.ClientName
		data["contact_info"] = s.ContactInfo
		data["legal_category"] = s.LegalCategory
		data["urgency_level"] = string(s.UrgencyLevel)
	}
	if record.Session.RequiresFollowUp != nil {
		data["requires_follow_up"] = *record.Session.RequiresFollowUp
	}
	if record.Session.ClientSatisfaction != "" {
		data["satisfaction"] = string(record.Session.ClientSatisfaction)
	}

	return LeadEvent{
		Type:       constant.EventLeadCaptured,
		Id:         record.Id.String(),
		Data:       data,
		OccurredAt: time.Now(),
	}
}
