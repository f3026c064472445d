package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/chat"
)

// EventsHandler streams engine events to the rendering layer over a
// WebSocket. The renderer uses the stream as a nudge to refetch or patch
// its view; missing an event is harmless.
type EventsHandler struct {
	hub            *chat.Hub
	originPatterns []string
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *chat.Hub, originPatterns []string) *EventsHandler {
	return &EventsHandler{hub: hub, originPatterns: originPatterns}
}

// ServeHTTP upgrades the connection and forwards events until the client
// goes away
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		log.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	events, cancel := h.hub.Subscribe()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			writeCtx, done := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, ev)
			done()
			if err != nil {
				log.Debug().Err(err).Msg("websocket write failed, dropping subscriber")
				return
			}
		}
	}
}
