package dto

import (
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/entity"

	"github.com/google/uuid"
)

type SaveAuditResponse struct {
	Success bool      `json:"success"`
	Id      uuid.UUID `json:"id"`
}

type AuditRecordResponse struct {
	Id          uuid.UUID          `json:"id"`
	SessionId   string             `json:"session_id"`
	Session     entity.ChatSession `json:"session"`
	Platform    string             `json:"platform"`
	Environment string             `json:"environment"`
	SavedAt     time.Time          `json:"saved_at"`
}
