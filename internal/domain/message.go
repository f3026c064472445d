package domain

import (
	"time"

	"github.com/google/uuid"
)

// Author identifies the sender of a message
type Author string

const (
	AuthorVisitor   Author = "visitor"
	AuthorAssistant Author = "assistant"
)

// ActionCode identifies a quick action the widget can trigger
type ActionCode string

const (
	ActionRequestQuote     ActionCode = "REQUEST_QUOTE"
	ActionBookHomeVisit    ActionCode = "BOOK_HOME_VISIT"
	ActionBookConsultation ActionCode = "BOOK_CONSULTATION"
	ActionRequestSamples   ActionCode = "REQUEST_SAMPLES"
	ActionProductInfo      ActionCode = "PRODUCT_INFO"
	ActionBrowseProducts   ActionCode = "BROWSE_PRODUCTS"
	ActionContactInfo      ActionCode = "CONTACT_INFO"
	ActionShowFAQ          ActionCode = "SHOW_FAQ"
	ActionCallUs           ActionCode = "CALL_US"
)

// Valid reports whether the code is one of the known quick actions
func (c ActionCode) Valid() bool {
	switch c {
	case ActionRequestQuote, ActionBookHomeVisit, ActionBookConsultation,
		ActionRequestSamples, ActionProductInfo, ActionBrowseProducts,
		ActionContactInfo, ActionShowFAQ, ActionCallUs:
		return true
	}
	return false
}

// QuickAction is a pre-defined button attached to an assistant message.
// Immutable once constructed.
type QuickAction struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Code  ActionCode `json:"action"`
	Icon  string     `json:"icon,omitempty"`
}

// Message represents a single entry of the conversation transcript.
// ID and Author never change after creation. Body is empty only while the
// message acts as a placeholder for a pending remote reply.
type Message struct {
	ID           uuid.UUID     `json:"id"`
	Author       Author        `json:"author"`
	Body         string        `json:"body"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// NewMessage creates a message with a fresh id
func NewMessage(author Author, body string) *Message {
	return &Message{
		ID:        uuid.New(),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
