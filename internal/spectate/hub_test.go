package spectate

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"lionhunt/internal/sim"
	"lionhunt/internal/world"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	go h.Run(ctx)
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) sim.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f sim.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func frame(tick int, reason world.Reason) sim.Frame {
	return sim.Frame{
		GameID: "g",
		Tick:   tick,
		Snapshot: world.Snapshot{
			GridSize: 10,
			Lion:     world.Position{Row: 2, Col: 0},
			Hunters:  []world.Position{{Row: 9, Col: 9}},
			Score:    10,
			Reason:   reason,
		},
	}
}

func TestPublishReachesSpectators(t *testing.T) {
	h, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	waitClients(t, h, 2)

	h.Publish(frame(3, world.None))
	for _, conn := range []*websocket.Conn{a, b} {
		f := readFrame(t, conn)
		if f.Tick != 3 || f.Lion != (world.Position{Row: 2, Col: 0}) || f.Score != 10 || f.GridSize != 10 {
			t.Fatalf("frame %+v", f)
		}
	}
}

func TestLateSpectatorGetsLastFrame(t *testing.T) {
	h, url := startHub(t)
	first := dial(t, url)
	waitClients(t, h, 1)
	h.Observe(frame(7, world.Captured))
	readFrame(t, first)

	late := dial(t, url)
	f := readFrame(t, late)
	if f.Tick != 7 || f.Reason != world.Captured {
		t.Fatalf("late frame %+v", f)
	}
}

func TestFrameJSONFields(t *testing.T) {
	data, err := json.Marshal(frame(1, world.Cleared))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"game_id", "tick", "grid_size", "lion", "hunters", "tokens", "score", "reason"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing %q in %s", key, data)
		}
	}
	if raw["reason"] != "cleared" {
		t.Fatalf("reason = %v", raw["reason"])
	}
}

func TestSlowSpectatorIsDropped(t *testing.T) {
	h, _ := startHub(t)
	slow := &client{hub: h, send: make(chan []byte)}
	h.register <- slow
	waitClients(t, h, 1)

	h.Publish(frame(1, world.None))
	waitClients(t, h, 0)
	if _, ok := <-slow.send; ok {
		t.Fatal("send channel of a dropped spectator must be closed")
	}

	// A late unregister from the read pump must not close the channel again.
	h.unregister <- slow
	h.Publish(frame(2, world.None))
	if n := h.Clients(); n != 0 {
		t.Fatalf("hub has %d clients after dropping the slow one", n)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	h, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, h, 1)
	conn.Close()
	waitClients(t, h, 0)
}
