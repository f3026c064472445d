package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/extract"
)

var (
	// ErrClosed is returned for input against a closed widget
	ErrClosed = errors.New("chat session is closed")
	// ErrReplyPending rejects a new visitor turn while a completion is in flight
	ErrReplyPending = errors.New("a reply is already pending")
	// ErrConfirmReset signals that the reset needs confirmation first
	ErrConfirmReset = errors.New("reset requires confirmation")
)

// Completer produces the assistant reply for inputs the rule matcher cannot
// answer. Implementations never fail: every failure mode must degrade to
// reply text.
type Completer interface {
	Complete(ctx context.Context, input string, history []domain.Message) (string, []domain.QuickAction)
}

// Session is the aggregate root of the conversation engine: it owns the
// transcript, the conversation context and the open/closed flag, enforces
// the exchange ceiling and coordinates the placeholder-then-replace flow
// for remote completions.
//
// A Session is single-conversation state; all methods are safe for
// concurrent use but only one remote completion may be outstanding at a
// time.
type Session struct {
	cfg       config.ChatConfig
	rules     *RuleMatcher
	router    *IntentRouter
	completer Completer
	effects   Effects
	sink      EventSink

	mu           sync.Mutex
	transcript   *Transcript
	convCtx      domain.ConversationContext
	open         bool
	typing       bool
	replyPending bool
	confirmReset bool
	// generation invalidates in-flight replies and timers across reset/close
	generation int
	resetTimer *time.Timer
}

// NewSession creates a closed, empty session. effects and sink may be nil.
func NewSession(cfg config.ChatConfig, completer Completer, effects Effects, sink EventSink) *Session {
	if cfg.ExchangeCeiling <= 0 {
		cfg.ExchangeCeiling = 20
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = 3 * time.Second
	}
	return &Session{
		cfg:        cfg,
		rules:      NewRuleMatcher(),
		router:     NewIntentRouter(cfg),
		completer:  completer,
		effects:    effects,
		sink:       sink,
		transcript: NewTranscript(),
	}
}

// Open marks the session open, appending the welcome message on first open.
// An optional seed message is handled as a visitor turn and an optional
// product name primes the conversation context.
func (s *Session) Open(message, productName string) {
	s.mu.Lock()
	if !s.open {
		s.open = true
		if s.transcript.Len() == 0 {
			s.appendLocked(welcomeMessage())
		}
		s.publish(Event{Type: EventSessionOpened})
		log.Info().Msg("chat session opened")
	}
	if productName != "" {
		product := extract.DetectProduct(productName)
		if product == "" {
			product = strings.ToLower(strings.TrimSpace(productName))
		}
		s.convCtx.LastProductMentioned = product
	}
	s.mu.Unlock()

	if strings.TrimSpace(message) != "" {
		if err := s.HandleInput(context.Background(), message); err != nil {
			log.Warn().Err(err).Msg("seed message dropped")
		}
	}
}

// Close closes the widget. An in-flight completion or a pending auto-reset
// is invalidated and its result dropped silently.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.open = false
	s.typing = false
	s.replyPending = false
	s.confirmReset = false
	s.generation++
	s.stopResetTimerLocked()
	s.publish(Event{Type: EventSessionClosed})
	log.Info().Msg("chat session closed")
}

// HandleInput processes one visitor turn: transcript append, governance
// check, then either the local rule reply or the placeholder-and-remote
// flow. The placeholder is appended before the network call starts so the
// visible transcript always reflects the visitor's turn immediately.
func (s *Session) HandleInput(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrClosed
	}
	if s.replyPending {
		return ErrReplyPending
	}

	// History snapshot excludes the turn being processed
	history := s.transcript.Visible()

	s.appendLocked(domain.NewMessage(domain.AuthorVisitor, content))
	s.convCtx.ExchangeCount++

	if product := extract.DetectProduct(content); product != "" {
		s.convCtx.LastProductMentioned = product
	}

	// Governance: at the ceiling the assistant turn is the limit notice and
	// the session resets itself after the configured delay.
	if s.convCtx.ExchangeCount >= s.cfg.ExchangeCeiling {
		s.appendLocked(limitMessage())
		gen := s.generation
		s.resetTimer = time.AfterFunc(s.cfg.ResetDelay, func() {
			s.autoReset(gen)
		})
		log.Info().Int("exchanges", s.convCtx.ExchangeCount).Msg("conversation limit reached, reset scheduled")
		return nil
	}

	if reply, ok := s.rules.Classify(content); ok {
		s.appendLocked(reply)
		return nil
	}

	placeholder := domain.NewMessage(domain.AuthorAssistant, "")
	s.transcript.Append(placeholder)
	s.typing = true
	s.replyPending = true
	s.publish(Event{Type: EventTyping, Typing: true})

	gen := s.generation
	go s.completeAsync(gen, placeholder.ID, content, history)

	return nil
}

// completeAsync runs the remote completion off the caller's goroutine and
// splices the result into the placeholder, unless the session was reset or
// closed in the meantime.
func (s *Session) completeAsync(gen int, placeholderID uuid.UUID, input string, history []domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reply, actions := s.completer.Complete(ctx, input, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Session reset or closed while the call was in flight
		log.Debug().Msg("dropping stale completion reply")
		return
	}

	s.typing = false
	s.replyPending = false
	if !s.transcript.Replace(placeholderID, reply, actions) {
		log.Warn().Str("id", placeholderID.String()).Msg("placeholder vanished before replace")
		return
	}
	s.publish(Event{Type: EventTyping, Typing: false})
	for _, m := range s.transcript.All() {
		if m.ID == placeholderID {
			msg := m
			s.publish(Event{Type: EventMessageReplaced, Message: &msg})
			break
		}
	}
}

// HandleAction routes a quick action, appending its reply (if any) and
// firing its side effect.
func (s *Session) HandleAction(code domain.ActionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrClosed
	}

	draft := extract.LeadDraft(s.transcript.Text(), s.convCtx)
	if msg := s.router.Route(code, &s.convCtx, draft, s.effects); msg != nil {
		s.appendLocked(msg)
	}
	return nil
}

// Reset clears the session back to a fresh welcome. With more than one
// message on the transcript the first call arms a confirmation gate and
// returns ErrConfirmReset; the next call goes through.
func (s *Session) Reset(confirm bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transcript.Len() > 1 && !confirm && !s.confirmReset {
		s.confirmReset = true
		return ErrConfirmReset
	}
	s.resetLocked()
	return nil
}

// autoReset fires from the governance timer; a stale generation means the
// session was reset or closed manually in the meantime.
func (s *Session) autoReset(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || !s.open {
		return
	}
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.stopResetTimerLocked()
	s.generation++
	s.transcript.Reset()
	s.convCtx = domain.ConversationContext{}
	s.typing = false
	s.replyPending = false
	s.confirmReset = false
	s.publish(Event{Type: EventSessionReset})
	s.appendLocked(welcomeMessage())
	log.Info().Msg("chat session reset")
}

func (s *Session) stopResetTimerLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Session) appendLocked(msg *domain.Message) {
	s.transcript.Append(msg)
	m := *msg
	s.publish(Event{Type: EventMessageAppended, Message: &m})
}

func (s *Session) publish(ev Event) {
	if s.sink != nil {
		s.sink.Publish(ev)
	}
}

// Visible returns the renderable transcript. It takes the session lock so
// a reset is never observed half-applied (cleared store, welcome not yet
// seeded).
func (s *Session) Visible() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Visible()
}

// Messages returns the full transcript for the summary endpoint
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Visible()
}

// Typing reports whether a remote reply is pending
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// IsOpen reports the open/closed flag
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Context returns a copy of the conversation context
func (s *Session) Context() domain.ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convCtx
}

// LeadDraft computes the structured lead draft from the full transcript on
// demand, for prefilling the lead-capture forms.
func (s *Session) LeadDraft() domain.ExtractedLeadDraft {
	s.mu.Lock()
	text := s.transcript.Text()
	convCtx := s.convCtx
	s.mu.Unlock()
	return extract.LeadDraft(text, convCtx)
}
