package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// ErrEmptyComment is returned when a comment is blank. The comment list is
// left unchanged and the input should be focused again.
var ErrEmptyComment = errors.New("empty comment")

// ShareData is passed to a native share capability.
type ShareData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// A Sharer opens a native share sheet.
type Sharer interface {
	Share(ctx context.Context, data ShareData) error
}

// A Clipboard accepts text copied by the user.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// MemoryClipboard is a Clipboard that keeps the last written text.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// Text returns the last written text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Share methods reported by Handler.Share.
const (
	ShareNative    = "native"
	ShareClipboard = "clipboard"
)

// A ShareResult describes how a post was shared.
type ShareResult struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Handler applies the per-post interactions to a feed.
type Handler struct {
	Feed      *Feed
	Notifier  notify.Notifier
	Sharer    Sharer // nil when no native share capability exists
	Clipboard Clipboard
	PageURL   string
	Logger    *slog.Logger
}

func (h *Handler) notify(ctx context.Context, level notify.Level, msg string) {
	if h.Notifier != nil {
		h.Notifier.Notify(ctx, notify.Notification{Level: level, Message: msg})
	}
}

// ToggleLike flips the like state of a post. Liking increments the count,
// unliking decrements it.
func (h *Handler) ToggleLike(ctx context.Context, id string) (Post, error) {
	p, err := h.Feed.update(id, func(p *Post) {
		if p.Liked {
			p.Liked = false
			p.LikeCount--
			return
		}
		p.Liked = true
		p.LikeCount++
	})
	if err != nil {
		return Post{}, err
	}

	if p.Liked {
		h.notify(ctx, notify.Success, "Post liked")
	} else {
		h.notify(ctx, notify.Info, "Post unliked")
	}
	return p, nil
}

// ToggleComments shows or hides the comment panel of a post.
func (h *Handler) ToggleComments(_ context.Context, id string) (Post, error) {
	return h.Feed.update(id, func(p *Post) {
		p.CommentsShown = !p.CommentsShown
	})
}

// SendComment appends a comment to a post. Blank text returns
// ErrEmptyComment without touching the post.
func (h *Handler) SendComment(ctx context.Context, id, text string) (Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		if _, err := h.Feed.Post(id); err != nil {
			return Post{}, err
		}
		return Post{}, ErrEmptyComment
	}

	p, err := h.Feed.update(id, func(p *Post) {
		p.Comments = append(p.Comments, Comment{Author: DefaultAuthor, Text: text})
	})
	if err != nil {
		return Post{}, err
	}
	h.notify(ctx, notify.Success, "Comment added")
	return p, nil
}

// Share shares a post through the native share capability if there is one,
// and otherwise copies the page link to the clipboard. A failed native share
// is logged and otherwise ignored.
func (h *Handler) Share(ctx context.Context, id string) (ShareResult, error) {
	if _, err := h.Feed.Post(id); err != nil {
		return ShareResult{}, err
	}

	if h.Sharer != nil {
		err := h.Sharer.Share(ctx, ShareData{
			Title: "Check out this post!",
			Text:  "I found this interesting post on PingSocial.",
			URL:   h.PageURL,
		})
		if err != nil && h.Logger != nil {
			h.Logger.Error("Could not share post", "post_id", id, "error", err.Error())
		}
		return ShareResult{Method: ShareNative, URL: h.PageURL}, nil
	}

	if err := h.Clipboard.WriteText(ctx, h.PageURL); err != nil {
		return ShareResult{}, fmt.Errorf("write clipboard: %w", err)
	}
	h.notify(ctx, notify.Success, "Post link copied to clipboard!")
	return ShareResult{Method: ShareClipboard, URL: h.PageURL}, nil
}
