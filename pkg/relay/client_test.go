package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hola", req.Message)
		assert.Equal(t, "penal", req.Context)

		_ = json.NewEncoder(w).Encode(dto.ChatResponse{Text: "respuesta", Degraded: true})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL+"/", nil).Chat(context.Background(), &dto.ChatRequest{Message: "hola", Context: "penal"})

	require.NoError(t, err)
	assert.Equal(t, "respuesta", res.Text)
	assert.True(t, res.Degraded)
}

func TestNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Summary(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Text: "x"}})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Summary(context.Background(), nil)

	assert.Error(t, err)
}

func TestContextDeadlineAbortsRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, nil).Chat(ctx, &dto.ChatRequest{Message: "hola"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEmailReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.EmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lead", req.Type)
		assert.JSONEq(t, `{"requestedContact":true,"summary":{"clientName":"","contactInfo":"","legalCategory":"","caseSummary":"","urgencyLevel":"","recommendedAction":""}}`, string(req.Data))
		_ = json.NewEncoder(w).Encode(dto.EmailResponse{Success: false, Error: "smtp"})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Email(context.Background(), "lead", dto.LeadEmailData{ContactRequested: true})

	assert.ErrorIs(t, err, ErrEmailRejected)
}
