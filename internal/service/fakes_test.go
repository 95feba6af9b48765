package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/mailer"
	"github.com/cokeastorga/astorgayabogados/internal/repository/specification"
	"github.com/cokeastorga/astorgayabogados/pkg/events"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gateway"

	"github.com/google/uuid"
)

type fakeGateway struct {
	reply      gateway.Reply
	extraction gateway.Extraction

	gotSystem  string
	gotHistory []llm.Message
	gotMessage string
	gotPrompt  string
	gotSchema  *llm.Schema
	extracts   int
}

func (f *fakeGateway) Reply(_ context.Context, systemPrompt string, history []llm.Message, message string) gateway.Reply {
	f.gotSystem, f.gotHistory, f.gotMessage = systemPrompt, history, message
	return f.reply
}

func (f *fakeGateway) StructuredExtract(_ context.Context, schema *llm.Schema, prompt string) gateway.Extraction {
	f.extracts++
	f.gotSchema, f.gotPrompt = schema, prompt
	return f.extraction
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeAuditRepo struct {
	records []*entity.AuditRecord
	err     error
}

func (f *fakeAuditRepo) Create(_ context.Context, record *entity.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	record.Id = uuid.New()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AuditRecord, error) {
	for _, spec := range specs {
		if bySession, ok := spec.(specification.BySessionId); ok {
			out := make([]*entity.AuditRecord, 0)
			for _, r := range f.records {
				if r.SessionId == bySession.SessionId {
					out = append(out, r)
				}
			}
			return out, nil
		}
	}
	return f.records, nil
}

func (f *fakeAuditRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.records)), nil
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return f.err
}

type fakeSearcher struct {
	text    string
	sources []llm.Source
	err     error
	calls   int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ ...llm.Option) (string, []llm.Source, error) {
	f.calls++
	return f.text, f.sources, f.err
}

var errBoom = errors.New("boom")

func mustJSON(v interface{}) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
