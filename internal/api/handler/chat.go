package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/api/response"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/chat"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/completion"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

var validate = validator.New()

// ChatHandler exposes the conversation engine to the rendering layer
type ChatHandler struct {
	session *chat.Session
	client  *completion.Client
}

// NewChatHandler creates a new chat handler
func NewChatHandler(session *chat.Session, client *completion.Client) *ChatHandler {
	return &ChatHandler{session: session, client: client}
}

// Open opens the widget, optionally seeding a message and a product
func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenRequest
	// Body is optional
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	chat.OpenChatbot(req.Message, req.ProductName)
	h.writeTranscript(w)
}

// Close closes the widget
func (h *ChatHandler) Close(w http.ResponseWriter, r *http.Request) {
	chat.CloseChatbot()
	response.OK(w, map[string]string{"message": "Chat closed"})
}

// Message handles one visitor turn
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req domain.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.session.HandleInput(r.Context(), req.Content); err != nil {
		switch {
		case errors.Is(err, chat.ErrClosed):
			response.Conflict(w, "Chat is closed")
		case errors.Is(err, chat.ErrReplyPending):
			response.TooManyRequests(w, "A reply is already pending")
		default:
			response.InternalError(w, "Failed to handle message")
		}
		return
	}

	h.writeTranscript(w)
}

// Action triggers a quick action
func (h *ChatHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req domain.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !req.ActionCode.Valid() {
		response.BadRequest(w, "Unknown action code")
		return
	}

	if err := h.session.HandleAction(req.ActionCode); err != nil {
		if errors.Is(err, chat.ErrClosed) {
			response.Conflict(w, "Chat is closed")
			return
		}
		response.InternalError(w, "Failed to handle action")
		return
	}

	h.writeTranscript(w)
}

// Reset clears the session, with a confirmation gate for non-trivial
// transcripts
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetRequest
	// Body is optional
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.session.Reset(req.Confirm); err != nil {
		if errors.Is(err, chat.ErrConfirmReset) {
			response.Conflict(w, "Reset requires confirmation")
			return
		}
		response.InternalError(w, "Failed to reset chat")
		return
	}

	h.writeTranscript(w)
}

// Transcript returns the visible transcript plus session flags
func (h *ChatHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	h.writeTranscript(w)
}

// LeadDraft computes the lead form prefill from the transcript
func (h *ChatHandler) LeadDraft(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.session.LeadDraft())
}

// Summary forwards the transcript to the remote summary endpoint
func (h *ChatHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.client.Summarize(r.Context(), h.session.Messages())
	if err != nil {
		response.BadGateway(w, "Summary service unavailable")
		return
	}
	response.OK(w, domain.SummaryResponse{Summary: summary})
}

func (h *ChatHandler) writeTranscript(w http.ResponseWriter) {
	response.OK(w, domain.TranscriptResponse{
		Messages: h.session.Visible(),
		Typing:   h.session.Typing(),
		Open:     h.session.IsOpen(),
		Context:  h.session.Context(),
	})
}

// validationMessages maps validator errors to field messages
func validationMessages(err error) any {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request"
	}
	errors := make(map[string]string)
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errors[e.Field()] = "field is required"
		case "max":
			errors[e.Field()] = "must be at most " + e.Param() + " characters"
		default:
			errors[e.Field()] = "validation failed on " + e.Tag()
		}
	}
	return errors
}
