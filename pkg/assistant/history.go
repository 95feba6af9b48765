package assistant

import "github.com/cokeastorga/astorgayabogados/internal/dto"

// DefaultHistoryWindow is the number of entries sent back to the relay on every turn.
const DefaultHistoryWindow = 20

// History is the outbound context buffer. It never holds more than its limit;
// appending past the limit evicts the oldest entries first.
type History struct {
	limit   int
	entries []dto.ChatHistoryItem
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryWindow
	}
	return &History{limit: limit, entries: make([]dto.ChatHistoryItem, 0, limit)}
}

func (h *History) Append(items ...dto.ChatHistoryItem) {
	h.entries = append(h.entries, items...)
	if over := len(h.entries) - h.limit; over > 0 {
		kept := make([]dto.ChatHistoryItem, h.limit, h.limit)
		copy(kept, h.entries[over:])
		h.entries = kept
	}
}

// Snapshot returns a copy safe to hand to a request body.
func (h *History) Snapshot() []dto.ChatHistoryItem {
	out := make([]dto.ChatHistoryItem, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Limit() int {
	return h.limit
}

func (h *History) Reset() {
	h.entries = h.entries[:0]
}

func historyItem(role, text string) dto.ChatHistoryItem {
	return dto.ChatHistoryItem{Role: role, Parts: []dto.ChatPart{{Text: text}}}
}
