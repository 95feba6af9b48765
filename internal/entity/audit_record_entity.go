package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuditRecord struct {
	Id          uuid.UUID
	SessionId   string
	Session     ChatSession
	Platform    string
	Environment string
	SavedAt     time.Time
}
