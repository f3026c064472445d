package chat

import (
	"sync"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// Hub fans engine events out to any number of subscribers (typically one
// websocket per rendered widget). It implements both EventSink and Effects:
// side effects are delivered to the rendering layer as events, because the
// dialogs, navigation and phone integration live there.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a buffered event channel and a cancel func. Events are
// dropped for subscribers that fall behind; the transcript endpoint is the
// source of truth, the stream is only a nudge.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to all subscribers without blocking
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// OpenQuoteDialog implements Effects
func (h *Hub) OpenQuoteDialog(draft domain.ExtractedLeadDraft) {
	h.Publish(Event{Type: EventOpenQuoteDialog, Draft: &draft})
}

// OpenSamplesDialog implements Effects
func (h *Hub) OpenSamplesDialog() {
	h.Publish(Event{Type: EventOpenSamplesDialog})
}

// NavigateTo implements Effects
func (h *Hub) NavigateTo(route string) {
	h.Publish(Event{Type: EventNavigate, Route: route})
}

// InitiateCall implements Effects
func (h *Hub) InitiateCall(number string) {
	h.Publish(Event{Type: EventCall, Number: number})
}
