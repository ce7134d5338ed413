package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// dialTestConn upgrades a connection against a throwaway server so a
// Client can be built without going through the HTTP handler.
func dialTestConn(t *testing.T) *gws.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		go func() {
			for {
				if _, _, err := serverConn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestClient(t *testing.T, h *Hub, userID int64, sendBuffer int) *Client {
	return &Client{
		hub:    h,
		conn:   dialTestConn(t),
		send:   make(chan []byte, sendBuffer),
		userID: userID,
		logger: zerolog.Nop(),
	}
}

func TestHubDeliverAndUnregister(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	client := newTestClient(t, h, 7, 8)
	h.register <- client
	require.True(t, h.IsUserConnected(7))

	h.SendToUser(7, "message", map[string]string{"content": "hello"})

	select {
	case data := <-client.send:
		require.Contains(t, string(data), `"type":"message"`)
		require.Contains(t, string(data), "hello")
	case <-time.After(time.Second):
		t.Fatal("event was never delivered")
	}

	h.unregister <- client
	require.Eventually(t, func() bool { return !h.IsUserConnected(7) },
		time.Second, 10*time.Millisecond)
}

func TestHubDropsSlowClientWithoutStalling(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	// No writePump running, so the one-slot buffer fills on the first
	// event and overflows on the second.
	slow := newTestClient(t, h, 7, 1)
	h.register <- slow

	h.SendToUser(7, "message", map[string]string{"content": "first"})
	h.SendToUser(7, "message", map[string]string{"content": "second"})

	fresh := newTestClient(t, h, 8, 8)
	select {
	case h.register <- fresh:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after a slow client")
	}

	require.Eventually(t, func() bool { return !h.IsUserConnected(7) },
		time.Second, 10*time.Millisecond)
	require.True(t, h.IsUserConnected(8))

	// The slow client's channel must end up closed once its buffered
	// event is drained.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("slow client's send channel was never closed")
		}
	}
}

func TestHubEventForDisconnectedUserIsDropped(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	h.SendToUser(42, "message", map[string]string{"content": "nobody home"})
	require.Eventually(t, func() bool { return len(h.deliver) == 0 },
		time.Second, 10*time.Millisecond)

	client := newTestClient(t, h, 42, 8)
	h.register <- client

	select {
	case data := <-client.send:
		t.Fatalf("unexpected delivery of a pre-connection event: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}
