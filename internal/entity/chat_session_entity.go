package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrLeadSummaryAlreadySet = errors.New("lead summary already set for this session")

type Satisfaction string

const (
	SatisfactionPositive Satisfaction = "positive"
	SatisfactionNeutral  Satisfaction = "neutral"
	SatisfactionNegative Satisfaction = "negative"
)

func (s Satisfaction) Valid() bool {
	switch s {
	case SatisfactionPositive, SatisfactionNeutral, SatisfactionNegative:
		return true
	}
	return false
}

type DeviceInfo struct {
	UserAgent  string `json:"userAgent"`
	Platform   string `json:"platform,omitempty"`
	Language   string `json:"language,omitempty"`
	ScreenSize string `json:"screenSize,omitempty"`
}

type ChatSession struct {
	Id                 string        `json:"id"`
	StartTime          int64         `json:"startTime"`
	Messages           []ChatMessage `json:"messages"`
	AreaOfInterest     string        `json:"areaOfInterest,omitempty"`
	DeviceInfo         DeviceInfo    `json:"deviceInfo"`
	LeadSummary        *LeadSummary  `json:"leadSummary,omitempty"`
	ClientSatisfaction Satisfaction  `json:"clientSatisfaction,omitempty"`
	RequiresFollowUp   *bool         `json:"requiresFollowUp,omitempty"`
}

// NewSessionId renders "<prefix>_<epoch-ms>_<random>".
func NewSessionId(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), random)
}

func NewChatSession(now time.Time, device DeviceInfo) *ChatSession {
	return &ChatSession{
		Id:         NewSessionId("chat", now),
		StartTime:  now.UnixMilli(),
		Messages:   make([]ChatMessage, 0),
		DeviceInfo: device,
	}
}

func (s *ChatSession) AppendMessage(role ChatRole, text string, at time.Time) ChatMessage {
	msg := ChatMessage{Role: role, Text: text, Timestamp: at.UnixMilli()}
	s.Messages = append(s.Messages, msg)
	return msg
}

func (s *ChatSession) SetLeadSummary(summary LeadSummary) error {
	if s.LeadSummary != nil {
		return ErrLeadSummaryAlreadySet
	}
	s.LeadSummary = &summary
	return nil
}

// UserMessageCount counts messages typed or chosen by the visitor.
func (s *ChatSession) UserMessageCount() int {
	n := 0
	for _, m := range s.Messages {
		if m.Role == ChatRoleUser {
			n++
		}
	}
	return n
}

// Transcript renders "ROLE: text" lines, the format the extraction prompt expects.
func Transcript(messages []ChatMessage) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.ToUpper(string(m.Role)))
		b.WriteString(": ")
		b.WriteString(m.Text)
	}
	return b.String()
}
