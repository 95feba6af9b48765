package assistant

import (
	"context"
	"errors"
	"sync"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"

	"github.com/google/uuid"
)

var errRelayDown = errors.New("relay down")

// scriptedChatRelay answers with reply until fail is set; every request is recorded.
type scriptedChatRelay struct {
	mu       sync.Mutex
	requests []dto.ChatRequest
	reply    func(n int, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

func (r *scriptedChatRelay) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	r.mu.Lock()
	r.requests = append(r.requests, *req)
	n := len(r.requests)
	r.mu.Unlock()
	return r.reply(n, req)
}

func (r *scriptedChatRelay) last() dto.ChatRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func echoRelay() *scriptedChatRelay {
	return &scriptedChatRelay{reply: func(n int, req *dto.ChatRequest) (*dto.ChatResponse, error) {
		return &dto.ChatResponse{Text: "respuesta a: " + req.Message}, nil
	}}
}

func degradedRelay() *scriptedChatRelay {
	return &scriptedChatRelay{reply: func(int, *dto.ChatRequest) (*dto.ChatResponse, error) {
		return &dto.ChatResponse{Text: "alta demanda", Degraded: true}, nil
	}}
}

type fakeSummaryRelay struct {
	summary *entity.LeadSummary
	err     error
	calls   int
}

func (f *fakeSummaryRelay) Summary(context.Context, []entity.ChatMessage) (*entity.LeadSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeEmailRelay struct {
	mu    sync.Mutex
	types []string
	data  []interface{}
	err   error
}

func (f *fakeEmailRelay) Email(_ context.Context, emailType string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, emailType)
	f.data = append(f.data, data)
	return f.err
}

type fakeAuditRelay struct {
	mu       sync.Mutex
	sessions []entity.ChatSession
	err      error
}

func (f *fakeAuditRelay) Audit(_ context.Context, session *entity.ChatSession) (*dto.SaveAuditResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, *session)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SaveAuditResponse{Success: true, Id: uuid.New()}, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
	ok    bool
}

func (c *countingNotifier) SendLead(context.Context, entity.LeadSummary, bool, entity.Satisfaction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.ok
}

type countingPersister struct {
	mu       sync.Mutex
	sessions []entity.ChatSession
}

func (c *countingPersister) Persist(_ context.Context, session *entity.ChatSession) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = append(c.sessions, *session)
	return true
}

type staticSummarizer struct {
	summary    entity.LeadSummary
	manualMode bool
	transcript []entity.ChatMessage
}

func (s *staticSummarizer) Summarize(_ context.Context, transcript []entity.ChatMessage, manualMode bool) entity.LeadSummary {
	s.transcript = transcript
	s.manualMode = manualMode
	out := s.summary
	if manualMode {
		out.LegalCategory = ManualModeCategory
	}
	return out
}

func mediumLead() entity.LeadSummary {
	return entity.LeadSummary{
		ClientName:        "Ana",
		ContactInfo:       "No provisto",
		LegalCategory:     "Civil",
		CaseSummary:       "Deuda impaga.",
		UrgencyLevel:      entity.UrgencyMedium,
		RecommendedAction: "Agendar",
	}
}
