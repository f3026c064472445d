package domain

// OpenRequest opens the widget, optionally seeding a first visitor message
// and a product the conversation should be about.
type OpenRequest struct {
	Message     string `json:"message" validate:"max=2000"`
	ProductName string `json:"productName" validate:"max=120"`
}

// MessageRequest is a single visitor turn
type MessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ActionRequest triggers one of the fixed quick actions
type ActionRequest struct {
	ActionCode ActionCode `json:"actionCode" validate:"required"`
}

// ResetRequest clears the session. Confirm must be set when the widget has
// asked for confirmation first.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// TranscriptResponse is the renderer-facing view of the session
type TranscriptResponse struct {
	Messages []Message           `json:"messages"`
	Typing   bool                `json:"typing"`
	Open     bool                `json:"open"`
	Context  ConversationContext `json:"context"`
}

// SummaryResponse wraps the remote summarization result
type SummaryResponse struct {
	Summary string `json:"summary"`
}
