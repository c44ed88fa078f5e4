package feed

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// ErrEmptyPost is returned when a post has neither text nor a photo.
var ErrEmptyPost = errors.New("empty post")

// EmptyPostWarning is shown to the user when ErrEmptyPost is returned.
const EmptyPostWarning = "Please write something or add a photo to post."

// A Composer drafts the next post. Attachments accumulate until Submit
// succeeds, which publishes the post to the feed and resets the draft.
type Composer struct {
	mu       sync.Mutex
	feed     *Feed
	notifier notify.Notifier
	att      Attachment
}

// NewComposer returns a composer publishing to f. A nil notifier discards
// notifications.
func NewComposer(f *Feed, n notify.Notifier) *Composer {
	if n == nil {
		n = notify.Discard
	}
	return &Composer{feed: f, notifier: n}
}

// AttachPhoto sets the photo as a data URI, replacing any previous choice.
func (c *Composer) AttachPhoto(dataURI string) {
	if dataURI == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.att.PhotoURL = dataURI
}

// TagFriends sets the tagged friends from a comma separated list. An empty
// input keeps the current tags.
func (c *Composer) TagFriends(list string) {
	var friends []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			friends = append(friends, name)
		}
	}
	if len(friends) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.att.TaggedFriends = friends
}

// SetFeeling sets the feeling. An empty input keeps the current one.
func (c *Composer) SetFeeling(feeling string) {
	feeling = strings.TrimSpace(feeling)
	if feeling == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.att.Feeling = feeling
}

// Attachment returns a snapshot of the pending attachment.
func (c *Composer) Attachment() Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.att.clone()
}

// Preview returns the labels for the pending attachment.
func (c *Composer) Preview() []string {
	return c.Attachment().Labels()
}

// Submit publishes a post with text and the pending attachment. If the
// trimmed text is empty and no photo is attached it returns ErrEmptyPost and
// leaves both the draft and the feed untouched.
func (c *Composer) Submit(ctx context.Context, text string) (Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" && c.att.PhotoURL == "" {
		c.notifier.Notify(ctx, notify.Notification{Level: notify.Warning, Message: EmptyPostWarning})
		return Post{}, ErrEmptyPost
	}

	p := c.feed.insert(text, c.att.clone())
	c.att = Attachment{}
	return p, nil
}
