// Package feed implements the post feed: composing posts, the ordered feed
// itself and the per-post interactions (likes, comments, sharing).
package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// ErrPostNotFound is returned for operations on a post that is not in the feed.
var ErrPostNotFound = errors.New("post not found")

// DeletePrompt is the question asked before a post is deleted.
const DeletePrompt = "Are you sure you want to delete this post?"

// A Feed is an ordered sequence of posts rendered below a fixed leading
// element. It is safe for concurrent use.
type Feed struct {
	mu    sync.Mutex
	posts []*Post // newest first
	now   func() time.Time
}

// New returns an empty feed.
func New() *Feed {
	return &Feed{now: time.Now}
}

// insert places p immediately after the leading element.
func (f *Feed) insert(text string, att Attachment) Post {
	p := &Post{
		ID:         uuid.NewString(),
		Author:     DefaultAuthor,
		Text:       text,
		Attachment: att,
		Comments:   []Comment{},
		CreatedAt:  f.now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]*Post{p}, f.posts...)
	return p.clone()
}

// Posts returns a snapshot of the posts, newest first.
func (f *Feed) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Post, len(f.posts))
	for i, p := range f.posts {
		out[i] = p.clone()
	}
	return out
}

// Children returns the feed container's children: the leading composer
// element followed by every post.
func (f *Feed) Children() []Node {
	posts := f.Posts()
	nodes := make([]Node, 0, len(posts)+1)
	nodes = append(nodes, Node{Kind: KindComposer})
	for i := range posts {
		nodes = append(nodes, Node{Kind: KindPost, Post: &posts[i]})
	}
	return nodes
}

// Post returns the post with the given id.
func (f *Feed) Post(id string) (Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return Post{}, ErrPostNotFound
	}
	return f.posts[i].clone(), nil
}

// Delete removes the post with the given id once c confirms it. It reports
// whether the post was removed; a declined prompt leaves the feed unchanged.
func (f *Feed) Delete(ctx context.Context, id string, c notify.Confirmer) (bool, error) {
	if _, err := f.Post(id); err != nil {
		return false, err
	}
	if !c.Confirm(ctx, DeletePrompt) {
		return false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return false, ErrPostNotFound
	}
	f.posts = append(f.posts[:i], f.posts[i+1:]...)
	return true, nil
}

// update runs fn on the post with the given id while holding the lock and
// returns the resulting snapshot.
func (f *Feed) update(id string, fn func(p *Post)) (Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return Post{}, ErrPostNotFound
	}
	fn(f.posts[i])
	return f.posts[i].clone(), nil
}

func (f *Feed) index(id string) int {
	for i, p := range f.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
