package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neilotoole/slogt"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/delay"
)

// gate is a Sleeper that blocks until released.
type gate struct {
	release chan struct{}
}

func (g gate) Sleep(ctx context.Context, _ time.Duration) error {
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var contacts = []Contact{{ID: "1", Name: "Sarah Johnson"}, {ID: "2", Name: "Mike Chen"}}

func directions(c Conversation) []Direction {
	out := make([]Direction, len(c.Messages))
	for i, m := range c.Messages {
		out[i] = m.Direction
	}
	return out
}

func TestService_SendReplies(t *testing.T) {
	s := NewService(slogt.New(t), &delay.Instant{}, contacts...)
	ctx := context.Background()

	if _, err := s.Open("1"); err != nil {
		t.Fatal(err)
	}
	c, err := s.Send(ctx, "1", "  Hi there  ")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if c.Messages[0].Text != "Hi there" {
		t.Errorf("Got text %q, want %q", c.Messages[0].Text, "Hi there")
	}
	s.Wait()

	got := s.Conversations()[0]
	if len(got.Messages) != 2 {
		t.Fatalf("Got %d messages, want 2", len(got.Messages))
	}
	if got.Messages[1].Direction != Received || got.Messages[1].Text != AutoReply {
		t.Errorf("Got reply %+v, want the auto reply", got.Messages[1])
	}
	if !got.Active {
		t.Error("Conversation not active")
	}
}

func TestService_NoReplyAfterSwitchingAway(t *testing.T) {
	g := gate{release: make(chan struct{})}
	s := NewService(slogt.New(t), g, contacts...)
	ctx := context.Background()

	if _, err := s.Open("1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Send(ctx, "1", "Hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Open("2"); err != nil {
		t.Fatal(err)
	}
	close(g.release)
	s.Wait()

	got := s.Conversations()[0]
	if d := directions(got); len(d) != 1 || d[0] != Sent {
		t.Errorf("Got directions %v, want [sent]", d)
	}
}

func TestService_SendErrors(t *testing.T) {
	s := NewService(slogt.New(t), &delay.Instant{}, contacts...)
	ctx := context.Background()

	if _, err := s.Send(ctx, "1", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send() blank error = %v, want %v", err, ErrEmptyMessage)
	}
	if _, err := s.Send(ctx, "9", "hi"); !errors.Is(err, ErrNoConversation) {
		t.Errorf("Send() unknown error = %v, want %v", err, ErrNoConversation)
	}
	if _, err := s.Open("9"); !errors.Is(err, ErrNoConversation) {
		t.Errorf("Open() unknown error = %v, want %v", err, ErrNoConversation)
	}
	s.Wait()
}
