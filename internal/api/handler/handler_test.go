package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/api"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/chat"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/completion"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/domain"
)

type envelope struct {
	Success bool                      `json:"success"`
	Data    domain.TranscriptResponse `json:"data"`
	Error   any                       `json:"error"`
}

type engine struct {
	server   *httptest.Server
	upstream *httptest.Server
	session  *chat.Session
}

// newEngine wires a full router against a stubbed completion service
func newEngine(t *testing.T, upstreamHandler http.HandlerFunc) *engine {
	t.Helper()

	upstream := httptest.NewServer(upstreamHandler)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Completion: config.CompletionConfig{BaseURL: upstream.URL, Timeout: 2 * time.Second},
		Chat: config.ChatConfig{
			HistoryLimit:    15,
			ExchangeCeiling: 20,
			ResetDelay:      30 * time.Millisecond,
			Phone:           "(02) 9340 5050",
			CatalogRoute:    "/products",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	client := completion.NewClient(cfg.Completion, cfg.Chat.HistoryLimit)
	hub := chat.NewHub()
	session := chat.NewSession(cfg.Chat, client, hub, hub)
	chat.Register(session)
	t.Cleanup(func() { chat.Unregister(session) })

	server := httptest.NewServer(api.NewRouter(cfg, session, client, hub))
	t.Cleanup(server.Close)

	return &engine{server: server, upstream: upstream, session: session}
}

func (e *engine) post(t *testing.T, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(e.server.URL+path, "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func (e *engine) transcript(t *testing.T) envelope {
	t.Helper()
	resp, err := http.Get(e.server.URL + "/api/v1/chat/transcript")
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func okUpstream(reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"reply": reply})
	}
}

func TestHealthCheck(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))

	resp, err := http.Get(e.server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, true, env["success"])
}

func TestChatFlow_OpenAndGreet(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))

	resp, env := e.post(t, "/api/v1/chat/open", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Data.Open)
	require.Len(t, env.Data.Messages, 1)

	resp, env = e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: "hello"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.Messages, 3)
}

func TestChatFlow_RemoteReply(t *testing.T) {
	e := newEngine(t, okUpstream("Roller blinds start at $180."))

	e.post(t, "/api/v1/chat/open", nil)
	resp, _ := e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: "roller blind prices?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		env := e.transcript(t)
		if env.Data.Typing {
			return false
		}
		msgs := env.Data.Messages
		return len(msgs) > 0 && msgs[len(msgs)-1].Body == "Roller blinds start at $180."
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChatFlow_MessageWhileClosed(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))

	resp, _ := e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: "hello"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestChatFlow_EmptyMessageRejected(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)

	resp, _ := e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: ""})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatFlow_UnknownActionRejected(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)

	resp, _ := e.post(t, "/api/v1/chat/action", map[string]string{"actionCode": "DO_MAGIC"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatFlow_ProductInfoNoop(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)

	resp, env := e.post(t, "/api/v1/chat/action", domain.ActionRequest{ActionCode: domain.ActionProductInfo})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.Messages, 1, "no product in context, no new message")
}

func TestChatFlow_ResetConfirmationGate(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)
	e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: "hello"})

	resp, _ := e.post(t, "/api/v1/chat/reset", domain.ResetRequest{Confirm: false})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env := e.post(t, "/api/v1/chat/reset", domain.ResetRequest{Confirm: true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.Messages, 1)
	assert.Zero(t, env.Data.Context.ExchangeCount)
}

func TestChatFlow_LeadDraft(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)
	e.post(t, "/api/v1/chat/message", domain.MessageRequest{Content: "I want venetian blinds for the kitchen"})

	resp, err := http.Get(e.server.URL + "/api/v1/chat/lead-draft")
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Data domain.ExtractedLeadDraft `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "venetian blind", env.Data.DetectedProduct)
	assert.Equal(t, "Kitchen", env.Data.RoomType)
}

func TestChatFlow_Summary(t *testing.T) {
	e := newEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/summary") {
			json.NewEncoder(w).Encode(map[string]string{"summary": "Short chat."})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"reply": "ok"})
	})
	e.post(t, "/api/v1/chat/open", nil)

	resp, err := http.Post(e.server.URL+"/api/v1/chat/summary", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data domain.SummaryResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "Short chat.", env.Data.Summary)
}

func TestChatFlow_EventStream(t *testing.T) {
	e := newEngine(t, okUpstream("ok"))
	e.post(t, "/api/v1/chat/open", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/api/v1/chat/events"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	e.post(t, "/api/v1/chat/action", domain.ActionRequest{ActionCode: domain.ActionCallUs})

	// The action produces a message_appended and a call event, order not
	// guaranteed relative to each other
	sawCall := false
	for i := 0; i < 5 && !sawCall; i++ {
		var ev chat.Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			break
		}
		if ev.Type == chat.EventCall {
			sawCall = true
			assert.Equal(t, "(02) 9340 5050", ev.Number)
		}
	}
	assert.True(t, sawCall, "expected a call event on the stream")
}
