package friends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/delay"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

func TestService_Respond(t *testing.T) {
	tests := []struct {
		name        string
		respond     func(s *Service, ctx context.Context, name string) error
		requester   string
		wantErr     error
		wantFriends []string
		wantNotif   []notify.Notification
	}{
		{
			name:        "Confirm",
			respond:     (*Service).Confirm,
			requester:   "Bob",
			wantFriends: []string{"Bob"},
			wantNotif:   []notify.Notification{{Level: notify.Success, Message: "You are now friends with Bob"}},
		},
		{
			name:        "Delete",
			respond:     (*Service).Delete,
			requester:   "Bob",
			wantFriends: []string{},
			wantNotif:   []notify.Notification{{Level: notify.Info, Message: "Friend request from Bob deleted"}},
		},
		{
			name:        "Unknown",
			respond:     (*Service).Confirm,
			requester:   "Mallory",
			wantErr:     ErrNoRequest,
			wantFriends: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &delay.Instant{}
			rec := &notify.Recorder{}
			s := NewService(sleeper, rec, []string{"Alice", "Bob"})

			err := tt.respond(s, context.Background(), tt.requester)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Got error %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.wantFriends, s.Friends()); diff != "" {
				t.Errorf("Friends mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantNotif, rec.Notifications); diff != "" {
				t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
			}

			if tt.wantErr != nil {
				if got := len(sleeper.Slept()); got != 0 {
					t.Errorf("Slept %d times on error, want 0", got)
				}
				return
			}
			if diff := cmp.Diff([]time.Duration{500 * time.Millisecond}, sleeper.Slept()); diff != "" {
				t.Errorf("Slept mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"Alice"}, s.Requests()); diff != "" {
				t.Errorf("Requests mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_ConfirmCancelled(t *testing.T) {
	s := NewService(delay.Timer{}, nil, []string{"Bob"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Confirm(ctx, "Bob"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Confirm() error = %v, want %v", err, context.Canceled)
	}
	if diff := cmp.Diff([]string{"Bob"}, s.Requests()); diff != "" {
		t.Errorf("Requests mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Send(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &notify.Recorder{}
	s := NewService(&delay.Instant{}, rec, nil, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if got := s.Label("Carol"); got != LabelAdd {
		t.Errorf("Got label %q, want %q", got, LabelAdd)
	}
	if err := s.Send(ctx, "Carol"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := s.Label("Carol"); got != LabelSent {
		t.Errorf("Got label %q, want %q", got, LabelSent)
	}

	now = now.Add(2 * time.Second)
	if err := s.Send(ctx, "Carol"); !errors.Is(err, ErrRequestPending) {
		t.Errorf("Send() within cooldown error = %v, want %v", err, ErrRequestPending)
	}

	now = now.Add(time.Second)
	if got := s.Label("Carol"); got != LabelAdd {
		t.Errorf("Got label %q after cooldown, want %q", got, LabelAdd)
	}
	if err := s.Send(ctx, "Carol"); err != nil {
		t.Errorf("Send() after cooldown error = %v", err)
	}

	want := []notify.Notification{
		{Level: notify.Success, Message: "Friend request sent to Carol"},
		{Level: notify.Success, Message: "Friend request sent to Carol"},
	}
	if diff := cmp.Diff(want, rec.Notifications); diff != "" {
		t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
	}
}
