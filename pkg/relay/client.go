// Package relay is the typed HTTP client for the backend relay endpoints.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
)

// StatusError is returned for any non-2xx relay response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

var ErrEmailRejected = errors.New("relay reported email not sent")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient leaves deadlines to the caller's context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	var res dto.ChatResponse
	if err := c.post(ctx, "/api/chat", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Summary(ctx context.Context, messages []entity.ChatMessage) (*entity.LeadSummary, error) {
	var res entity.LeadSummary
	if err := c.post(ctx, "/api/summary", dto.SummaryRequest{Messages: messages}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Email(ctx context.Context, emailType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode email data: %w", err)
	}

	var res dto.EmailResponse
	if err := c.post(ctx, "/api/email", dto.EmailRequest{Type: emailType, Data: raw}, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrEmailRejected, res.Error)
	}
	return nil
}

func (c *Client) Audit(ctx context.Context, session *entity.ChatSession) (*dto.SaveAuditResponse, error) {
	var res dto.SaveAuditResponse
	if err := c.post(ctx, "/api/audit", session, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) News(ctx context.Context) (*dto.NewsResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/news", nil)
	if err != nil {
		return nil, err
	}
	var res dto.NewsResponse
	if err := c.do(httpReq, "/api/news", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq, path, out)
}

func (c *Client) do(httpReq *http.Request, path string, out interface{}) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("relay %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
