package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
)

const (
	// LocalQueueKey names the single array holding sessions the relay did not accept.
	LocalQueueKey     = "chat_audit_log_fallback"
	SyncStatusPending = "pending"
)

type AuditRelay interface {
	Audit(ctx context.Context, session *entity.ChatSession) (*dto.SaveAuditResponse, error)
}

// LocalQueue is satisfied by *localqueue.Queue.
type LocalQueue interface {
	Append(key string, record interface{}) error
	List(key string) ([]json.RawMessage, error)
}

// PendingAuditRecord is a session waiting for an offline sync.
type PendingAuditRecord struct {
	entity.ChatSession
	SyncStatus string `json:"_syncStatus"`
	QueuedAt   int64  `json:"queuedAt"`
}

type AuditStore struct {
	relay   AuditRelay
	queue   LocalQueue
	timeout time.Duration
	logger  logger.ILogger
	now     func() time.Time
}

// NewAuditStore accepts a nil queue; a failed remote write is then only logged.
func NewAuditStore(relay AuditRelay, queue LocalQueue, timeout time.Duration, log logger.ILogger) *AuditStore {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &AuditStore{relay: relay, queue: queue, timeout: timeout, logger: log, now: time.Now}
}

// Persist reports true only when the relay stored the session.
func (a *AuditStore) Persist(ctx context.Context, session *entity.ChatSession) bool {
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.relay.Audit(reqCtx, session)
	if err == nil && res.Success {
		a.logger.Info("AuditStore", "Session stored remotely", map[string]interface{}{
			"session_id": session.Id,
			"audit_id":   res.Id.String(),
		})
		return true
	}
	if err == nil {
		err = errors.New("relay did not confirm the write")
	}

	a.logger.Warn("AuditStore", "Remote audit failed, queueing locally", map[string]interface{}{
		"session_id": session.Id,
		"error":      err.Error(),
	})

	if a.queue == nil {
		a.logger.Error("AuditStore", "No local queue, session dropped", map[string]interface{}{"session_id": session.Id})
		return false
	}

	pending := PendingAuditRecord{
		ChatSession: *session,
		SyncStatus:  SyncStatusPending,
		QueuedAt:    a.now().UnixMilli(),
	}
	if err := a.queue.Append(LocalQueueKey, pending); err != nil {
		a.logger.Error("AuditStore", "Local audit queue failed, session dropped", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
	return false
}

// Pending lists the locally queued sessions in arrival order.
func (a *AuditStore) Pending() ([]PendingAuditRecord, error) {
	if a.queue == nil {
		return nil, nil
	}
	raws, err := a.queue.List(LocalQueueKey)
	if err != nil {
		return nil, err
	}

	out := make([]PendingAuditRecord, 0, len(raws))
	for _, raw := range raws {
		var rec PendingAuditRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode pending audit: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
