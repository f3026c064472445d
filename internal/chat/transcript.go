package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// Transcript is the append-only ordered log of exchanged messages. It is the
// ground truth for rendering, history building and entity extraction.
//
// The only permitted mutation of an existing entry is Replace, which fills in
// the body of a placeholder exactly once. Reset clears the log atomically so
// no consumer can observe a partially cleared state.
type Transcript struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append inserts msg at the end, preserving insertion order
func (t *Transcript) Append(msg *domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Replace splices the deferred body (and optional quick actions) into the
// placeholder identified by id. Position and id are preserved. Returns false
// when no message with that id exists.
func (t *Transcript) Replace(id uuid.UUID, body string, quickActions []domain.QuickAction) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.messages {
		if m.ID == id {
			m.Body = body
			if quickActions != nil {
				m.QuickActions = quickActions
			}
			return true
		}
	}
	return false
}

// Visible returns the messages with non-empty bodies, in conversational
// order. Placeholders awaiting a remote reply are skipped. The returned
// slice is a copy and safe for the caller to hold.
func (t *Transcript) Visible() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, 0, len(t.messages))
	for _, m := range t.messages {
		if m.Body != "" {
			out = append(out, *m)
		}
	}
	return out
}

// All returns every message including placeholders
func (t *Transcript) All() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, 0, len(t.messages))
	for _, m := range t.messages {
		out = append(out, *m)
	}
	return out
}

// Len reports the number of stored messages, placeholders included
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Reset clears the log
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}

// Text concatenates all visitor and assistant bodies for free-text scanning
func (t *Transcript) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var size int
	for _, m := range t.messages {
		size += len(m.Body) + 1
	}
	buf := make([]byte, 0, size)
	for _, m := range t.messages {
		if m.Body == "" {
			continue
		}
		buf = append(buf, m.Body...)
		buf = append(buf, '\n')
	}
	return string(buf)
}
