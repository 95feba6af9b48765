package assistant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversation(relay ChatRelay, timeout time.Duration) *Conversation {
	return NewConversation(relay, ConversationConfig{
		Timeout:       timeout,
		HistoryWindow: 20,
		FirmPhone:     "+56 9 500 89 295",
		DegradedReply: "Lo siento, alta demanda",
	}, logger.NewNopLogger())
}

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Append(historyItem("user", fmt.Sprint(i)))
	}

	snap := h.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "2", snap[0].Parts[0].Text)
	assert.Equal(t, "4", snap[2].Parts[0].Text)

	snap[0].Role = "mutated"
	assert.Equal(t, "user", h.Snapshot()[0].Role)
}

func TestSendAppendsPairOnSuccess(t *testing.T) {
	relay := echoRelay()
	c := newConversation(relay, time.Second)
	c.SetTopic("laboral")

	res := c.Send(context.Background(), "me despidieron")

	assert.Equal(t, SendResult{Text: "respuesta a: me despidieron"}, res)
	assert.Equal(t, "laboral", relay.last().Context)
	assert.Empty(t, relay.last().History)
	require.Len(t, c.Outbound(), 2)
	assert.Equal(t, "user", c.Outbound()[0].Role)
	assert.Equal(t, "model", c.Outbound()[1].Role)
}

func TestSendFlagsExhaustion(t *testing.T) {
	tests := []struct {
		name string
		res  *dto.ChatResponse
	}{
		{"explicit flag", &dto.ChatResponse{Text: "cualquier texto", Degraded: true}},
		{"canned text", &dto.ChatResponse{Text: "Lo siento, alta demanda"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConversation(&scriptedChatRelay{reply: func(int, *dto.ChatRequest) (*dto.ChatResponse, error) {
				return tt.res, nil
			}}, time.Second)

			res := c.Send(context.Background(), "hola")

			assert.True(t, res.IsError)
			assert.Equal(t, tt.res.Text, res.Text)
			assert.Zero(t, len(c.Outbound()))
		})
	}
}

func TestSendTimeout(t *testing.T) {
	relay := &scriptedChatRelay{reply: func(_ int, _ *dto.ChatRequest) (*dto.ChatResponse, error) {
		time.Sleep(200 * time.Millisecond)
		return nil, context.DeadlineExceeded
	}}
	c := newConversation(relay, 20*time.Millisecond)

	res := c.Send(context.Background(), "hola")

	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "tardando demasiado")
	assert.Empty(t, c.Outbound())
}

func TestSendConnectionError(t *testing.T) {
	c := newConversation(&scriptedChatRelay{reply: func(int, *dto.ChatRequest) (*dto.ChatResponse, error) {
		return nil, errRelayDown
	}}, time.Second)

	res := c.Send(context.Background(), "hola")

	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "Error de conexión")
	assert.Contains(t, res.Text, "+56 9 500 89 295")
}

func TestOutboundWindowAfterTwentyFiveTurns(t *testing.T) {
	relay := echoRelay()
	c := newConversation(relay, time.Second)

	for i := 1; i <= 25; i++ {
		c.Send(context.Background(), fmt.Sprintf("turno %d", i))
	}
	c.Send(context.Background(), "turno 26")

	history := relay.last().History
	require.Len(t, history, 20)
	assert.Equal(t, "turno 16", history[0].Parts[0].Text)
	assert.Equal(t, "respuesta a: turno 25", history[19].Parts[0].Text)
}

func TestResetClearsContext(t *testing.T) {
	c := newConversation(echoRelay(), time.Second)
	c.SetTopic("penal")
	c.Send(context.Background(), "hola")

	c.Reset()

	assert.Empty(t, c.Outbound())
	assert.Empty(t, c.topic)
}
