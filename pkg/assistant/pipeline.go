package assistant

import (
	"context"
	"strings"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type LeadSummarizer interface {
	Summarize(ctx context.Context, transcript []entity.ChatMessage, manualMode bool) entity.LeadSummary
}

type LeadNotifier interface {
	SendLead(ctx context.Context, summary entity.LeadSummary, contactRequested bool, satisfaction entity.Satisfaction) bool
}

type SessionPersister interface {
	Persist(ctx context.Context, session *entity.ChatSession) bool
}

// CloseRequest is what the feedback wizard collected.
type CloseRequest struct {
	ManualMode       bool
	ContactRequested bool
	Contact          string
	Satisfaction     entity.Satisfaction
}

type NotifyResult struct {
	Attempted bool
	Sent      bool
}

type PersistResult struct {
	// Remote is false when the session went to the local queue instead.
	Remote bool
}

type PipelineResult struct {
	Summary entity.LeadSummary
	Notify  NotifyResult
	Persist PersistResult
}

// Pipeline runs summarize, then notify and persist side by side.
// Neither of the last two depends on the other's outcome.
type Pipeline struct {
	summarizer LeadSummarizer
	notifier   LeadNotifier
	persister  SessionPersister
	logger     logger.ILogger
}

func NewPipeline(summarizer LeadSummarizer, notifier LeadNotifier, persister SessionPersister, log logger.ILogger) *Pipeline {
	return &Pipeline{summarizer: summarizer, notifier: notifier, persister: persister, logger: log}
}

func (p *Pipeline) Run(ctx context.Context, session *entity.ChatSession, req CloseRequest) PipelineResult {
	summary := p.summarizer.Summarize(ctx, session.Messages, req.ManualMode)
	if contact := strings.TrimSpace(req.Contact); contact != "" {
		summary.ContactInfo = contact
	}

	session.ClientSatisfaction = req.Satisfaction
	followUp := req.ContactRequested
	session.RequiresFollowUp = &followUp
	if err := session.SetLeadSummary(summary); err != nil {
		p.logger.Warn("Pipeline", "Lead summary already present, keeping the first one", map[string]interface{}{
			"session_id": session.Id,
		})
		summary = *session.LeadSummary
	}

	result := PipelineResult{Summary: summary}

	// The session is not touched again from here on.
	var g errgroup.Group
	g.Go(func() error {
		if !ShouldNotify(summary, req.ContactRequested) {
			return nil
		}
		result.Notify = NotifyResult{
			Attempted: true,
			Sent:      p.notifier.SendLead(ctx, summary, req.ContactRequested, req.Satisfaction),
		}
		return nil
	})
	g.Go(func() error {
		result.Persist = PersistResult{Remote: p.persister.Persist(ctx, session)}
		return nil
	})
	_ = g.Wait()

	p.logger.Info("Pipeline", "Session closed", map[string]interface{}{
		"session_id": session.Id,
		"urgency":    summary.UrgencyLevel,
		"notified":   result.Notify.Sent,
		"remote":     result.Persist.Remote,
		"messages":   len(session.Messages),
	})
	return result
}
