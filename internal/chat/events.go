package chat

import "github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"

// EventType identifies an engine event pushed to the rendering layer
type EventType string

const (
	EventMessageAppended   EventType = "message_appended"
	EventMessageReplaced   EventType = "message_replaced"
	EventTyping            EventType = "typing"
	EventSessionOpened     EventType = "session_opened"
	EventSessionClosed     EventType = "session_closed"
	EventSessionReset      EventType = "session_reset"
	EventOpenQuoteDialog   EventType = "open_quote_dialog"
	EventOpenSamplesDialog EventType = "open_samples_dialog"
	EventNavigate          EventType = "navigate"
	EventCall              EventType = "call"
)

// Event is a single engine notification. Only the fields relevant to the
// type are set.
type Event struct {
	Type    EventType                  `json:"type"`
	Message *domain.Message            `json:"message,omitempty"`
	Draft   *domain.ExtractedLeadDraft `json:"draft,omitempty"`
	Route   string                     `json:"route,omitempty"`
	Number  string                     `json:"number,omitempty"`
	Typing  bool                       `json:"typing"`
}

// EventSink receives engine events. Implementations must not block and must
// not call back into the Session.
type EventSink interface {
	Publish(ev Event)
}
