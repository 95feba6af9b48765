package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatAudit stores one closed chat session as a JSONB document.
type ChatAudit struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        string         `gorm:"type:text;not null;index"`
	Document         datatypes.JSON `gorm:"type:jsonb;not null"`
	UrgencyLevel     string         `gorm:"type:text;index"`
	RequiresFollowUp bool           `gorm:"not null;default:false"`
	Platform         string         `gorm:"type:text;not null"`
	Environment      string         `gorm:"type:text;not null"`
	SavedAt          time.Time      `gorm:"autoCreateTime;index"`
}

func (ChatAudit) TableName() string {
	return "chat_audits"
}
