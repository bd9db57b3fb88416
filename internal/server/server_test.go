package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/sphsim/internal/config"
	"github.com/san-kum/sphsim/internal/snapshot"
	"github.com/san-kum/sphsim/internal/sph"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dial(t *testing.T, ts *httptest.Server, s *Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestBroadcast(t *testing.T) {
	s := New(Params{}, quietLogger())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	conn := dial(t, ts, s)

	st, err := config.GetPreset("line5").NewState()
	if err != nil {
		t.Fatal(err)
	}
	s.Hub().Broadcast(snapshot.Marshal(st.Particles))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if mt != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", mt)
	}
	got, err := snapshot.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || got[2].Pos != st.Particles[2].Pos {
		t.Errorf("unexpected frame %+v", got)
	}
}

func TestHubDropsForSlowClients(t *testing.T) {
	h := NewHub(quietLogger())
	c := &client{send: make(chan []byte, 1)}
	h.clients[c] = struct{}{}

	h.Broadcast([]byte{1})
	h.Broadcast([]byte{2})
	if h.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", h.Dropped())
	}
	if got := <-c.send; got[0] != 1 {
		t.Errorf("kept frame %v, want the first", got)
	}
}

func TestClientDisconnect(t *testing.T) {
	s := New(Params{}, quietLogger())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts, s)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not removed after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStaticFiles(t *testing.T) {
	s := New(Params{}, quietLogger())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "WebSocket") {
		t.Errorf("built-in viewer not served: %d", resp.StatusCode)
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	s = New(Params{Root: root}, quietLogger())
	ts2 := httptest.NewServer(s.Handler())
	defer ts2.Close()

	resp, err = http.Get(ts2.URL + "/hello.txt")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "hi" {
		t.Errorf("root file = %q", body)
	}
}

func TestSimulate(t *testing.T) {
	s := New(Params{Every: 2}, quietLogger())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	conn := dial(t, ts, s)

	st, err := config.GetPreset("line5").NewState()
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Simulate(ctx, st, 0.0008) }()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	cancel()
	if err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Errorf("Simulate returned %v", err)
	}

	particles, err := snapshot.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(particles) != len(st.Particles) {
		t.Errorf("frame has %d particles", len(particles))
	}
	var zero sph.Particle
	if particles[0] == zero {
		t.Error("frame particle is empty")
	}
}
