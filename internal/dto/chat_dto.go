package dto

import "github.com/cokeastorga/astorgayabogados/internal/entity"

type ChatPart struct {
	Text string `json:"text"`
}

// ChatHistoryItem mirrors the primary provider's content shape so the client can send it untouched.
type ChatHistoryItem struct {
	Role  string     `json:"role" validate:"required,oneof=user model"`
	Parts []ChatPart `json:"parts" validate:"required,min=1"`
}

type ChatRequest struct {
	Message string            `json:"message" validate:"required,max=4000"`
	History []ChatHistoryItem `json:"history" validate:"max=20,dive"`
	Context string            `json:"context,omitempty" validate:"max=200"`
}

type ChatResponse struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded,omitempty"`
}

type SummaryRequest struct {
	Messages []entity.ChatMessage `json:"messages" validate:"required"`
}

type SummaryErrorResponse struct {
	Error string `json:"error"`
}

type NewsResponse struct {
	Text    string       `json:"text"`
	Sources []NewsSource `json:"sources"`
}

type NewsSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
