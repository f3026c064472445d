package domain

// ConversationContext is session-scoped mutable state shared between the
// intent router, the completion bridge fallback routing and the extractor.
type ConversationContext struct {
	LastProductMentioned string `json:"lastProductMentioned,omitempty"`
	UserIntent           string `json:"userIntent,omitempty"`
	ExchangeCount        int    `json:"exchangeCount"`
}
