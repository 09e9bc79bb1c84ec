package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindlink/internal/config"

	"github.com/gorilla/websocket"
)

// testConfig keeps timers short so round flows complete quickly, and leaves
// the prompt URL empty so no round ever reaches for the network.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.RoundDuration = 5 * time.Second
	cfg.Intermission = 50 * time.Millisecond
	cfg.PromptURL = ""
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(testConfig())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, payload any) {
	t.Helper()
	if err := conn.WriteJSON(payload); err != nil {
		t.Fatalf("write websocket message: %v", err)
	}
}

// waitForEvent reads messages until one with the wanted type arrives.
func waitForEvent(t *testing.T, conn *websocket.Conn, wanted string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read websocket message waiting for %s: %v", wanted, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode websocket message: %v", err)
		}
		if msg["type"] == wanted {
			return msg
		}
	}
	t.Fatalf("timed out waiting for %s", wanted)
	return nil
}

// addObserver registers a hub client without a real connection so tests can
// assert what a room broadcast.
func addObserver(s *Server, code, id string) chan any {
	cl := &client{id: id, send: make(chan any, 16)}
	s.hub.Add(cl)
	s.hub.JoinRoom(code, id)
	return cl.send
}

func nextBroadcast(t *testing.T, ch chan any) any {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for broadcast")
		return nil
	}
}
