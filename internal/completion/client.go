package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// FallbackReply is the fixed apology surfaced on any transport failure or
// malformed response. Nothing past the bridge ever sees the underlying error.
const FallbackReply = "Sorry, I'm having trouble answering right now. " +
	"Please try again in a moment, or call us on (02) 9340 5050 and we'll " +
	"help you straight away."

// Client talks to the remote completion service over its JSON contract
type Client struct {
	baseURL      string
	historyLimit int
	client       *http.Client
}

// NewClient creates a completion client for the configured service
func NewClient(cfg config.CompletionConfig, historyLimit int) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if historyLimit <= 0 {
		historyLimit = 15
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		historyLimit: historyLimit,
		client:       &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message      string        `json:"message"`
	Conversation []chatMessage `json:"conversation"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// Complete sends the current input plus recent history to the completion
// endpoint and returns the assistant reply text with any heuristic quick
// actions. It never returns an error: a structured error field is surfaced
// verbatim as the reply, everything else degrades to FallbackReply.
func (c *Client) Complete(ctx context.Context, input string, history []domain.Message) (string, []domain.QuickAction) {
	conversation := make([]chatMessage, 0, c.historyLimit+1)
	conversation = append(conversation, chatMessage{Role: "system", Content: systemPolicy})

	for _, m := range trimHistory(history, c.historyLimit) {
		role := "user"
		if m.Author == domain.AuthorAssistant {
			role = "assistant"
		}
		conversation = append(conversation, chatMessage{Role: role, Content: m.Body})
	}

	body, err := json.Marshal(chatRequest{Message: input, Conversation: conversation})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal completion request")
		return FallbackReply, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("failed to create completion request")
		return FallbackReply, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Msg("completion request failed")
		return FallbackReply, nil
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		log.Warn().Err(err).Msg("malformed completion response")
		return FallbackReply, nil
	}

	// A structured error is a valid service answer and goes to the visitor
	// verbatim, no retry.
	if chatResp.Error != "" {
		return chatResp.Error, nil
	}
	if chatResp.Reply == "" {
		// Neither reply nor error counts as transport failure
		log.Warn().Int("status", resp.StatusCode).Msg("completion response missing reply")
		return FallbackReply, nil
	}

	return chatResp.Reply, bookingActions(chatResp.Reply)
}

// trimHistory keeps the last limit non-empty messages; placeholders pending
// a remote reply never enter the payload.
func trimHistory(history []domain.Message, limit int) []domain.Message {
	out := make([]domain.Message, 0, len(history))
	for _, m := range history {
		if m.Body != "" {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

type summaryRequest struct {
	Messages []domain.Message `json:"messages"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

// Summarize sends the transcript to the remote summary endpoint. Unlike
// Complete, failures here propagate: the lead form caller decides what to
// do without a summary.
func (c *Client) Summarize(ctx context.Context, messages []domain.Message) (string, error) {
	body, err := json.Marshal(summaryRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/summary", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create summary request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	var sumResp summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sumResp); err != nil {
		return "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	if sumResp.Error != "" {
		return "", fmt.Errorf("summary service error: %s", sumResp.Error)
	}
	return sumResp.Summary, nil
}
