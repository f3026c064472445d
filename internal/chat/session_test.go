package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

// stubCompleter is a controllable in-process Completer
type stubCompleter struct {
	reply   string
	actions []domain.QuickAction
	delay   time.Duration

	mu      sync.Mutex
	calls   int
	history []domain.Message
}

func (c *stubCompleter) Complete(ctx context.Context, input string, history []domain.Message) (string, []domain.QuickAction) {
	c.mu.Lock()
	c.calls++
	c.history = history
	c.mu.Unlock()
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.reply, c.actions
}

func (c *stubCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestSession(completer Completer) *Session {
	cfg := testChatConfig()
	cfg.ResetDelay = 30 * time.Millisecond
	return NewSession(cfg, completer, nil, nil)
}

func lastBody(s *Session) string {
	visible := s.Visible()
	if len(visible) == 0 {
		return ""
	}
	return visible[len(visible)-1].Body
}

func TestSession_OpenAppendsWelcome(t *testing.T) {
	s := newTestSession(&stubCompleter{})

	s.Open("", "")

	require.True(t, s.IsOpen())
	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, welcomeBody, visible[0].Body)
	assert.Equal(t, defaultQuickActions(), visible[0].QuickActions)
}

func TestSession_InputWhileClosed(t *testing.T) {
	s := newTestSession(&stubCompleter{})

	err := s.HandleInput(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_GreetingAnsweredLocally(t *testing.T) {
	completer := &stubCompleter{reply: "remote"}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "hello"))

	assert.Equal(t, welcomeBody, lastBody(s))
	assert.Zero(t, completer.callCount(), "greetings must never reach the bridge")
	assert.False(t, s.Typing())
}

func TestSession_RemoteFlowReplacesPlaceholder(t *testing.T) {
	completer := &stubCompleter{
		reply: "Roller blinds start at $180 per window.",
		delay: 20 * time.Millisecond,
	}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "how much are roller blinds?"))

	// The visitor turn is visible immediately even though the reply is pending
	visible := s.Visible()
	assert.Equal(t, "how much are roller blinds?", visible[len(visible)-1].Body)

	assert.Eventually(t, func() bool {
		return lastBody(s) == completer.reply && !s.Typing()
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, completer.callCount())
	assert.Equal(t, "roller blind", s.Context().LastProductMentioned)
}

func TestSession_HistoryExcludesCurrentTurn(t *testing.T) {
	completer := &stubCompleter{reply: "sure"}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "do you do awnings?"))
	assert.Eventually(t, func() bool { return !s.Typing() }, time.Second, 5*time.Millisecond)

	completer.mu.Lock()
	defer completer.mu.Unlock()
	for _, m := range completer.history {
		assert.NotEqual(t, "do you do awnings?", m.Body)
	}
}

func TestSession_SecondInputRejectedWhilePending(t *testing.T) {
	completer := &stubCompleter{reply: "done", delay: 50 * time.Millisecond}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "first question"))
	assert.ErrorIs(t, s.HandleInput(context.Background(), "second question"), ErrReplyPending)

	assert.Eventually(t, func() bool { return !s.Typing() }, time.Second, 5*time.Millisecond)
	assert.NoError(t, s.HandleInput(context.Background(), "third question"))
}

func TestSession_CloseDropsInFlightReply(t *testing.T) {
	completer := &stubCompleter{reply: "LATE REPLY", delay: 40 * time.Millisecond}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "anyone there?"))
	s.Close()

	time.Sleep(100 * time.Millisecond)

	assert.False(t, s.IsOpen())
	for _, m := range s.Visible() {
		assert.NotEqual(t, "LATE REPLY", m.Body)
	}
}

func TestSession_GovernanceLimitAndAutoReset(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")

	for i := 0; i < 20; i++ {
		require.NoError(t, s.HandleInput(context.Background(), "hello"))
	}

	// The 20th visitor turn gets the limit notice instead of a reply
	assert.Equal(t, limitBody, lastBody(s))
	assert.Equal(t, 20, s.Context().ExchangeCount)

	assert.Eventually(t, func() bool {
		visible := s.Visible()
		return len(visible) == 1 &&
			visible[0].Body == welcomeBody &&
			s.Context().ExchangeCount == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSession_ManualResetNeedsConfirmation(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")
	require.NoError(t, s.HandleInput(context.Background(), "hello"))
	require.Greater(t, len(s.Visible()), 1)

	// First attempt arms the gate
	assert.ErrorIs(t, s.Reset(false), ErrConfirmReset)
	// Second attempt goes through
	assert.NoError(t, s.Reset(false))

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, welcomeBody, visible[0].Body)
	assert.Zero(t, s.Context().ExchangeCount)
}

func TestSession_ManualResetWithConfirm(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")
	require.NoError(t, s.HandleInput(context.Background(), "hello"))

	assert.NoError(t, s.Reset(true))
	assert.Len(t, s.Visible(), 1)
}

func TestSession_ResetOfFreshSessionSkipsGate(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")

	assert.NoError(t, s.Reset(false))
	assert.Len(t, s.Visible(), 1)
}

func TestSession_ProductInfoNoopWithoutProduct(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")
	before := len(s.Visible())

	require.NoError(t, s.HandleAction(domain.ActionProductInfo))

	assert.Len(t, s.Visible(), before, "PRODUCT_INFO without context must produce nothing")
}

func TestSession_OpenSeedsProductAndMessage(t *testing.T) {
	s := newTestSession(&stubCompleter{})

	s.Open("hello", "Roller Blinds")

	assert.Equal(t, "roller blind", s.Context().LastProductMentioned)
	// welcome + seeded visitor turn + local greeting reply
	assert.Len(t, s.Visible(), 3)
}

func TestSession_LeadDraftFromTranscript(t *testing.T) {
	completer := &stubCompleter{reply: "noted"}
	s := newTestSession(completer)
	s.Open("", "")

	require.NoError(t, s.HandleInput(context.Background(), "I need roller blinds for 3 windows in the bedroom"))
	assert.Eventually(t, func() bool { return !s.Typing() }, time.Second, 5*time.Millisecond)

	draft := s.LeadDraft()
	assert.Equal(t, "roller blind", draft.DetectedProduct)
	assert.Equal(t, "Bedroom", draft.RoomType)
	assert.Equal(t, "3", draft.WindowCount)
}

func TestSession_ResetNeverExposesEmptyTranscript(t *testing.T) {
	s := newTestSession(&stubCompleter{})
	s.Open("", "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(100 * time.Millisecond)
		for time.Now().Before(deadline) {
			_ = s.Reset(true)
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			if !assert.NotEmpty(t, s.Visible(), "reset must swap the transcript atomically") {
				return
			}
		}
	}
}
