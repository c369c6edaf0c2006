package websocket

import (
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/session"
	"net/http"
	"slices"
	"time"
)

// SessionParam names the session when the client cannot set the session
// header, as browsers cannot on a websocket handshake
const SessionParam = "session"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[any]

	// AllowedOrigins are the browser origins that may connect. Empty allows any origin.
	AllowedOrigins []string
}

type Message struct {
	EventType string      `json:"event-type"`
	Data      interface{} `json:"data"`
}

func NewHandler(log hclog.Logger, eventBus *events.EventBus[any], allowedOrigins ...string) *Handler {
	h := &Handler{
		Log:            log,
		EventBus:       eventBus,
		AllowedOrigins: allowedOrigins,
	}
	h.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts requests without an Origin header, those are not from a browser
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.AllowedOrigins, "*") || slices.Contains(h.AllowedOrigins, origin)
}

// message maps an event to its wire form. sessionID is "" for catalog events,
// which every client receives. Session events go only to that session's clients.
func message(event any) (msg Message, sessionID string, ok bool) {
	switch e := event.(type) {
	case events.CartUpdated:
		return Message{EventType: "cart_updated", Data: e}, e.SessionID, true
	case events.CouponApplied:
		return Message{EventType: "coupon_applied", Data: e}, e.SessionID, true
	case events.WishlistToggled:
		return Message{EventType: "wishlist_toggled", Data: e}, e.SessionID, true
	case events.OrderPlaced:
		return Message{EventType: "order_placed", Data: e}, e.SessionID, true
	case events.Notification:
		return Message{EventType: "notification", Data: e}, e.SessionID, true
	case events.ProductAdded:
		return Message{EventType: "product_added", Data: e}, "", true
	case events.ProductUpdated:
		return Message{EventType: "product_updated", Data: e}, "", true
	case events.ProductDeleted:
		return Message{EventType: "product_deleted", Data: e}, "", true
	}
	return Message{}, "", false
}

// sessionOf returns the session presented by the client, "" when none or malformed
func sessionOf(r *http.Request) string {
	id := r.Header.Get(session.Header)
	if id == "" {
		id = r.URL.Query().Get(SessionParam)
	}
	if !session.ValidID(id) {
		return ""
	}
	return id
}

// HandleWebSocket streams bus events to the client. Catalog events are sent to
// every client; session events only to clients presenting that session's id in
// the X-Session-ID header or the ?session= parameter.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	owner := sessionOf(r)

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	h.Log.Debug("WebSocket client connected", "has_session", owner != "", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go h.readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-subscriber:
			msg, sessionID, ok := message(event)
			if !ok {
				h.Log.Warn("Unknown event type", "event", event)
				continue
			}
			if sessionID != "" && sessionID != owner {
				continue
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				h.Log.Error("Error marshalling message", "event_type", msg.EventType, "error", err)
				continue
			}

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Log.Debug("Ping failed, dropping client", "error", err)
				return
			}
		case <-done:
			h.Log.Info("WebSocket connection closed by the client")
			return
		}
	}
}

// readPump discards client messages and extends the read deadline on every pong
func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			return
		}
	}
}
