package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
)

const (
	DefaultRequestTimeout = 15 * time.Second

	timeoutTemplate         = "La consulta está tardando demasiado. Por favor, intente nuevamente o llámenos al %s."
	connectionErrorTemplate = "Error de conexión. Por favor llámenos al %s."
)

type ChatRelay interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type SendResult struct {
	Text    string
	IsError bool
}

type ConversationConfig struct {
	Timeout       time.Duration
	HistoryWindow int
	FirmPhone     string
	// DegradedReply is the relay's canned high-demand text, matched when the explicit flag is absent.
	DegradedReply string
}

// Conversation is the client-held chat session. The relay keeps no state, so the
// recent context travels with every request.
type Conversation struct {
	relay   ChatRelay
	history *History
	cfg     ConversationConfig
	topic   string
	logger  logger.ILogger
}

func NewConversation(relay ChatRelay, cfg ConversationConfig, log logger.ILogger) *Conversation {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	return &Conversation{
		relay:   relay,
		history: NewHistory(cfg.HistoryWindow),
		cfg:     cfg,
		logger:  log,
	}
}

// SetTopic sets the context forwarded with every turn.
func (c *Conversation) SetTopic(topic string) {
	c.topic = topic
}

func (c *Conversation) Reset() {
	c.topic = ""
	c.history.Reset()
}

// Outbound is the context the next request would carry.
func (c *Conversation) Outbound() []dto.ChatHistoryItem {
	return c.history.Snapshot()
}

// Send never returns an error; failures come back as IsError with user-facing text.
func (c *Conversation) Send(ctx context.Context, message string) SendResult {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	res, err := c.relay.Chat(reqCtx, &dto.ChatRequest{
		Message: message,
		History: c.history.Snapshot(),
		Context: c.topic,
	})
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("Conversation", "Chat request timed out", map[string]interface{}{
				"timeout": c.cfg.Timeout.String(),
			})
			return SendResult{Text: fmt.Sprintf(timeoutTemplate, c.cfg.FirmPhone), IsError: true}
		}
		c.logger.Warn("Conversation", "Chat request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return SendResult{Text: fmt.Sprintf(connectionErrorTemplate, c.cfg.FirmPhone), IsError: true}
	}

	if res.Degraded || (c.cfg.DegradedReply != "" && res.Text == c.cfg.DegradedReply) {
		c.logger.Warn("Conversation", "Relay reported provider exhaustion", map[string]interface{}{
			"explicit": res.Degraded,
		})
		return SendResult{Text: res.Text, IsError: true}
	}

	c.history.Append(
		historyItem(string(entity.ChatRoleUser), message),
		historyItem(string(entity.ChatRoleModel), res.Text),
	)
	return SendResult{Text: res.Text}
}
