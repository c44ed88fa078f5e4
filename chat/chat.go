// Package chat implements direct conversations with a simulated reply from
// the other side.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/delay"
)

var (
	// ErrEmptyMessage is returned when a message is blank.
	ErrEmptyMessage = errors.New("empty message")
	// ErrNoConversation is returned for an unknown conversation id.
	ErrNoConversation = errors.New("conversation not found")
)

// AutoReply is the text of the simulated reply.
const AutoReply = "Thanks for your message! I'll get back to you soon."

const replyDelay = time.Second

// Direction tells sent and received messages apart.
type Direction string

const (
	Sent     Direction = "sent"
	Received Direction = "received"
)

// A Message is one chat line.
type Message struct {
	Text      string    `json:"text"`
	Direction Direction `json:"direction"`
	SentAt    time.Time `json:"sent_at"`
}

// A Conversation is the message history with one contact.
type Conversation struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Active   bool      `json:"active"`
	Messages []Message `json:"messages"`
}

// Service holds the conversations of the current user. It is safe for
// concurrent use.
type Service struct {
	Logger  *slog.Logger
	sleeper delay.Sleeper
	now     func() time.Time
	wg      sync.WaitGroup

	mu     sync.Mutex
	convs  []*Conversation
	active string
}

// A Contact is someone the user can message.
type Contact struct {
	ID   string
	Name string
}

// NewService returns a Service with one empty conversation per contact, in
// the given order.
func NewService(logger *slog.Logger, sleeper delay.Sleeper, contacts ...Contact) *Service {
	s := &Service{Logger: logger, sleeper: sleeper, now: time.Now}
	for _, ct := range contacts {
		s.convs = append(s.convs, &Conversation{ID: ct.ID, Name: ct.Name, Messages: []Message{}})
	}
	return s
}

// Conversations returns a snapshot of every conversation.
func (s *Service) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Conversation, len(s.convs))
	for i, c := range s.convs {
		out[i] = s.snapshot(c)
	}
	return out
}

// Open makes the conversation with the given id the active one.
func (s *Service) Open(id string) (Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.find(id)
	if c == nil {
		return Conversation{}, ErrNoConversation
	}
	s.active = id
	return s.snapshot(c), nil
}

// Send appends text to the conversation. The contact replies after a short
// delay, provided the conversation is still active by then.
func (s *Service) Send(ctx context.Context, id, text string) (Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Conversation{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.find(id)
	if c == nil {
		return Conversation{}, ErrNoConversation
	}
	c.Messages = append(c.Messages, Message{Text: text, Direction: Sent, SentAt: s.now()})

	s.wg.Add(1)
	go s.reply(context.WithoutCancel(ctx), id)
	return s.snapshot(c), nil
}

func (s *Service) reply(ctx context.Context, id string) {
	defer s.wg.Done()
	if err := s.sleeper.Sleep(ctx, replyDelay); err != nil {
		s.Logger.Error("Could not wait for reply", "conversation_id", id, "error", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != id {
		return
	}
	c := s.find(id)
	if c == nil {
		return
	}
	c.Messages = append(c.Messages, Message{Text: AutoReply, Direction: Received, SentAt: s.now()})
}

// Wait blocks until every pending reply has been delivered or dropped.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) find(id string) *Conversation {
	for _, c := range s.convs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Service) snapshot(c *Conversation) Conversation {
	out := *c
	out.Active = c.ID == s.active
	out.Messages = append([]Message{}, c.Messages...)
	return out
}
