package specification

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BySessionId filters audit rows written for one chat session
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByUrgency filters by the lead urgency extracted at close time
type ByUrgency struct {
	Levels []string
}

func (s ByUrgency) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("urgency_level IN ?", s.Levels)
}

type SavedAfter struct {
	Since time.Time
}

func (s SavedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("saved_at >= ?", s.Since)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
