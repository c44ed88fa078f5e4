// Package notify carries user-facing notifications and yes/no prompts between
// the services and whatever presents them.
package notify

import (
	"context"
	"log/slog"
)

// Level classifies a notification.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// A Notification is a short message meant for the user.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// A Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Log writes notifications to a logger.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	switch n.Level {
	case Warning:
		level = slog.LevelWarn
	case Error:
		level = slog.LevelError
	}
	l.Logger.Log(ctx, level, "Notification", "level", string(n.Level), "message", n.Message)
}

// Fanout delivers every notification to each of its notifiers in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, nt := range f {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

// Recorder keeps notifications in memory. It is meant for tests.
type Recorder struct {
	Notifications []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.Notifications = append(r.Notifications, n)
}

// A Confirmer answers a blocking yes/no prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Answer is a Confirmer that always gives the same answer.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool { return bool(a) }
