package service

import (
	"context"
	"testing"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedSession(withLead bool) *entity.ChatSession {
	s := &entity.ChatSession{
		Id: "chat_1718000000000_abcdefghi",
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleModel, Text: "Bienvenido", Timestamp: 1},
			{Role: entity.ChatRoleUser, Text: "Civil", Timestamp: 2},
		},
	}
	if withLead {
		s.LeadSummary = &entity.LeadSummary{ClientName: "Ana", UrgencyLevel: entity.UrgencyMedium}
	}
	return s
}

func TestAuditSaveStoresMetadataAndPublishesLead(t *testing.T) {
	repo := &fakeAuditRepo{}
	pub := &fakePublisher{}
	svc := NewAuditService(repo, pub, logger.NewNopLogger(), "web-chat", "test")

	res, err := svc.Save(context.Background(), closedSession(true))

	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "web-chat", repo.records[0].Platform)
	assert.Equal(t, "test", repo.records[0].Environment)
	assert.Equal(t, res.Id, repo.records[0].Id)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "LEAD_CAPTURED", pub.published[0].EventType())
}

func TestAuditSaveWithoutLeadDoesNotPublish(t *testing.T) {
	pub := &fakePublisher{}

	_, err := NewAuditService(&fakeAuditRepo{}, pub, logger.NewNopLogger(), "web-chat", "test").
		Save(context.Background(), closedSession(false))

	require.NoError(t, err)
	assert.Empty(t, pub.published)
}

func TestAuditSaveIgnoresPublisherFailure(t *testing.T) {
	pub := &fakePublisher{err: errBoom}

	res, err := NewAuditService(&fakeAuditRepo{}, pub, logger.NewNopLogger(), "web-chat", "test").
		Save(context.Background(), closedSession(true))

	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestAuditSaveErrors(t *testing.T) {
	svc := NewAuditService(&fakeAuditRepo{err: errBoom}, nil, logger.NewNopLogger(), "web-chat", "test")

	_, err := svc.Save(context.Background(), closedSession(false))
	assert.ErrorIs(t, err, errBoom)

	_, err = svc.Save(context.Background(), &entity.ChatSession{})
	assert.ErrorIs(t, err, ErrMissingSessionId)
}

func TestAuditFindBySession(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, logger.NewNopLogger(), "web-chat", "test")
	session := closedSession(false)
	_, err := svc.Save(context.Background(), session)
	require.NoError(t, err)

	found, err := svc.FindBySession(context.Background(), session.Id)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, session.Messages, found[0].Session.Messages)
}
