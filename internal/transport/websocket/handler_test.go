package websocket

import (
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const (
	mine  = "6f1c1a3e-8a52-4c36-9b44-1f7e2f0c9a10"
	other = "0d3f5b7a-2c14-4e8e-a0a1-9c6b2d8e4f21"
)

func dial(t *testing.T, bus *events.EventBus[any], query string, header http.Header) *websocket.Conn {
	t.Helper()
	h := NewHandler(hclog.NewNullLogger(), bus)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// publish retries until the handler has subscribed
func publish(t *testing.T, bus *events.EventBus[any], e any) {
	t.Helper()
	require.Eventually(t, func() bool { return bus.Publish(e) > 0 }, time.Second, 5*time.Millisecond)
}

func read(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestStreamsSessionEvents(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus, "", http.Header{"X-Session-ID": {mine}})

	publish(t, bus, events.CartUpdated{SessionID: mine, ItemCount: 2, Total: 99.5})
	msg := read(t, conn)
	assert.Equal(t, "cart_updated", msg["event-type"])
	data := msg["data"].(map[string]any)
	assert.Equal(t, float64(2), data["item_count"])
	assert.NotContains(t, data, "session_id")

	bus.Publish(events.ProductDeleted{ProductID: 4})
	assert.Equal(t, "product_deleted", read(t, conn)["event-type"])
}

func TestNoSessionGetsCatalogEventsOnly(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus, "", nil)

	publish(t, bus, events.Notification{SessionID: mine, Level: events.LevelSuccess, Message: "Welcome back!"})
	bus.Publish(events.CartUpdated{SessionID: mine, ItemCount: 1})
	bus.Publish(events.OrderPlaced{SessionID: other, OrderID: "ORD-AB12C"})
	bus.Publish(events.ProductAdded{ProductID: 17})
	bus.Publish(events.ProductUpdated{ProductID: 17})

	assert.Equal(t, "product_added", read(t, conn)["event-type"])
	assert.Equal(t, "product_updated", read(t, conn)["event-type"])
}

func TestMalformedSessionGetsCatalogEventsOnly(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus, "?session=", http.Header{"X-Session-ID": {"not-a-uuid"}})

	publish(t, bus, events.Notification{Level: events.LevelInfo, Message: "Cart cleared."})
	bus.Publish(events.ProductDeleted{ProductID: 3})

	assert.Equal(t, "product_deleted", read(t, conn)["event-type"])
}

func TestSessionParam(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus, "?session="+mine, nil)

	publish(t, bus, events.Notification{SessionID: other, Level: events.LevelInfo, Message: "Cart cleared."})
	bus.Publish("not an event")
	bus.Publish(events.ProductAdded{ProductID: 17})
	bus.Publish(events.Notification{SessionID: mine, Level: events.LevelSuccess, Message: "Welcome back!"})

	assert.Equal(t, "product_added", read(t, conn)["event-type"])
	msg := read(t, conn)
	assert.Equal(t, "notification", msg["event-type"])
	assert.Equal(t, "Welcome back!", msg["data"].(map[string]any)["message"])
	assert.NotContains(t, msg["data"], "session_id")
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no list", nil, "http://evil.example", true},
		{"listed", []string{"http://localhost:5173"}, "http://localhost:5173", true},
		{"not listed", []string{"http://localhost:5173"}, "http://evil.example", false},
		{"wildcard", []string{"*"}, "http://evil.example", true},
		{"no origin header", []string{"http://localhost:5173"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(hclog.NewNullLogger(), events.NewEventBus[any](), tt.allowed...)
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, h.checkOrigin(r))
		})
	}
}

func TestRejectsForeignOrigin(t *testing.T) {
	h := NewHandler(hclog.NewNullLogger(), events.NewEventBus[any](), "http://localhost:5173")
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
