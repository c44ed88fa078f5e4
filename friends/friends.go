// Package friends manages incoming friend requests and outgoing requests
// sent from friend suggestions.
package friends

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/delay"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

var (
	// ErrNoRequest is returned when there is no pending request from a name.
	ErrNoRequest = errors.New("no pending friend request")
	// ErrRequestPending is returned when a request was sent too recently.
	ErrRequestPending = errors.New("friend request already sent")
)

const (
	// respondDelay simulates the round trip of answering a request.
	respondDelay = 500 * time.Millisecond
	// sentCooldown is how long a suggestion shows "Request Sent".
	sentCooldown = 3 * time.Second
)

// Suggestion button labels.
const (
	LabelAdd  = "Add Friend"
	LabelSent = "Request Sent"
)

// Service holds the friend state of the current user. It is safe for
// concurrent use.
type Service struct {
	sleeper  delay.Sleeper
	notifier notify.Notifier
	now      func() time.Time

	mu       sync.Mutex
	requests []string
	friends  []string
	sent     map[string]time.Time
}

// An Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source used for the sent cooldown.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service with the given pending requests, oldest first.
func NewService(sleeper delay.Sleeper, n notify.Notifier, requests []string, opts ...Option) *Service {
	if n == nil {
		n = notify.Discard
	}
	s := &Service{
		sleeper:  sleeper,
		notifier: n,
		now:      time.Now,
		requests: slices.Clone(requests),
		sent:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Requests returns the pending requests in arrival order.
func (s *Service) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.requests...)
}

// Friends returns the confirmed friends in confirmation order.
func (s *Service) Friends() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.friends...)
}

// Confirm accepts the request from name.
func (s *Service) Confirm(ctx context.Context, name string) error {
	if err := s.respond(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	s.friends = append(s.friends, name)
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.Notification{
		Level:   notify.Success,
		Message: fmt.Sprintf("You are now friends with %s", name),
	})
	return nil
}

// Delete rejects the request from name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.respond(ctx, name); err != nil {
		return err
	}
	s.notifier.Notify(ctx, notify.Notification{
		Level:   notify.Info,
		Message: fmt.Sprintf("Friend request from %s deleted", name),
	})
	return nil
}

// respond waits out the simulated latency and removes the request.
func (s *Service) respond(ctx context.Context, name string) error {
	s.mu.Lock()
	pending := slices.Contains(s.requests, name)
	s.mu.Unlock()
	if !pending {
		return ErrNoRequest
	}

	if err := s.sleeper.Sleep(ctx, respondDelay); err != nil {
		return fmt.Errorf("respond to %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.requests, name)
	if i < 0 {
		return ErrNoRequest
	}
	s.requests = slices.Delete(s.requests, i, i+1)
	return nil
}

// Send sends a friend request to name. For a short while afterwards the
// suggestion is labelled LabelSent and another Send returns ErrRequestPending.
func (s *Service) Send(ctx context.Context, name string) error {
	s.mu.Lock()
	now := s.now()
	if at, ok := s.sent[name]; ok && now.Sub(at) < sentCooldown {
		s.mu.Unlock()
		return ErrRequestPending
	}
	s.sent[name] = now
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.Notification{
		Level:   notify.Success,
		Message: fmt.Sprintf("Friend request sent to %s", name),
	})
	return nil
}

// Label returns the suggestion button label for name.
func (s *Service) Label(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at, ok := s.sent[name]; ok && s.now().Sub(at) < sentCooldown {
		return LabelSent
	}
	return LabelAdd
}
