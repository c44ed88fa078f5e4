package hub

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// Handlers outlive the tests that start them, so they must not log to t.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(5 * time.Second)
	for h.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return conn
}

func TestHub_Notify(t *testing.T) {
	h := New(discard)
	conn := dial(t, h)

	h.Notify(context.Background(), notify.Notification{Level: notify.Success, Message: "Post liked"})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got struct {
		Type string              `json:"type"`
		Data notify.Notification `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Type != EventNotification {
		t.Errorf("Got type %q, want %q", got.Type, EventNotification)
	}
	want := notify.Notification{Level: notify.Success, Message: "Post liked"}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Errorf("Notification mismatch (-want +got):\n%s", diff)
	}
}

func TestHub_Disconnect(t *testing.T) {
	h := New(discard)
	conn := dial(t, h)
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for h.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
