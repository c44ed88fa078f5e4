package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/neilotoole/slogt"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

func TestComposer_Submit(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(c *Composer)
		text      string
		wantErr   error
		wantPosts int
		wantAtt   Attachment
	}{
		{
			name:    "EmptyTextNoPhoto",
			text:    "   ",
			wantErr: ErrEmptyPost,
		},
		{
			name:    "EmptyTextKeepsDraft",
			setup:   func(c *Composer) { c.TagFriends("Alice") },
			text:    "",
			wantErr: ErrEmptyPost,
		},
		{
			name:      "Text",
			text:      "Hello",
			wantPosts: 1,
			wantAtt:   Attachment{TaggedFriends: []string{}},
		},
		{
			name:      "PhotoOnly",
			setup:     func(c *Composer) { c.AttachPhoto("data:image/png;base64,AAAA") },
			wantPosts: 1,
			wantAtt:   Attachment{PhotoURL: "data:image/png;base64,AAAA", TaggedFriends: []string{}},
		},
		{
			name: "AllAttachments",
			setup: func(c *Composer) {
				c.AttachPhoto("data:image/png;base64,AAAA")
				c.TagFriends(" Alice, ,Charlie ")
				c.SetFeeling("happy")
			},
			text:      "Beach day",
			wantPosts: 1,
			wantAtt: Attachment{
				PhotoURL:      "data:image/png;base64,AAAA",
				TaggedFriends: []string{"Alice", "Charlie"},
				Feeling:       "happy",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			rec := &notify.Recorder{}
			c := NewComposer(f, rec)
			if tt.setup != nil {
				tt.setup(c)
			}
			before := c.Attachment()

			p, err := c.Submit(context.Background(), tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if got := len(f.Posts()); got != tt.wantPosts {
				t.Errorf("Got %d posts, want %d", got, tt.wantPosts)
			}

			if tt.wantErr != nil {
				want := []notify.Notification{{Level: notify.Warning, Message: EmptyPostWarning}}
				if diff := cmp.Diff(want, rec.Notifications); diff != "" {
					t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(before, c.Attachment()); diff != "" {
					t.Errorf("Draft changed on failed submit (-want +got):\n%s", diff)
				}
				return
			}

			if diff := cmp.Diff(tt.wantAtt, p.Attachment); diff != "" {
				t.Errorf("Attachment mismatch (-want +got):\n%s", diff)
			}
			if p.Text != tt.text {
				t.Errorf("Got text %q, want %q", p.Text, tt.text)
			}
			if labels := c.Preview(); len(labels) != 0 {
				t.Errorf("Draft not reset after submit, preview = %v", labels)
			}
		})
	}
}

func TestComposer_TagFriendsEmptyKeepsTags(t *testing.T) {
	c := NewComposer(New(), nil)
	c.TagFriends("Alice, Charlie")
	c.TagFriends("")
	c.TagFriends(" , ")
	c.SetFeeling("happy")
	c.SetFeeling("  ")

	want := []string{"Tagged: Alice, Charlie", "Feeling happy"}
	if diff := cmp.Diff(want, c.Preview()); diff != "" {
		t.Errorf("Preview() mismatch (-want +got):\n%s", diff)
	}
}

func TestFeed_InsertAfterLeadingElement(t *testing.T) {
	f := New()
	c := NewComposer(f, nil)
	ctx := context.Background()

	if _, err := c.Submit(ctx, "First"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Submit(ctx, "Hello"); err != nil {
		t.Fatal(err)
	}

	nodes := f.Children()
	if len(nodes) != 3 {
		t.Fatalf("Got %d children, want 3", len(nodes))
	}
	if nodes[0].Kind != KindComposer {
		t.Errorf("Got leading kind %q, want %q", nodes[0].Kind, KindComposer)
	}
	if nodes[1].Post == nil || nodes[1].Post.Text != "Hello" {
		t.Errorf("Got children[1] = %+v, want the Hello post", nodes[1])
	}
	if nodes[2].Post == nil || nodes[2].Post.Text != "First" {
		t.Errorf("Got children[2] = %+v, want the First post", nodes[2])
	}
}

func TestFeed_Delete(t *testing.T) {
	tests := []struct {
		name        string
		confirm     bool
		wantDeleted bool
		wantPosts   int
	}{
		{name: "Confirmed", confirm: true, wantDeleted: true, wantPosts: 0},
		{name: "Declined", confirm: false, wantDeleted: false, wantPosts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			p, err := NewComposer(f, nil).Submit(context.Background(), "Hello")
			if err != nil {
				t.Fatal(err)
			}

			var prompt string
			c := notify.ConfirmFunc(func(_ context.Context, q string) bool {
				prompt = q
				return tt.confirm
			})
			deleted, err := f.Delete(context.Background(), p.ID, c)
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Got deleted %v, want %v", deleted, tt.wantDeleted)
			}
			if prompt != DeletePrompt {
				t.Errorf("Got prompt %q, want %q", prompt, DeletePrompt)
			}
			if got := len(f.Posts()); got != tt.wantPosts {
				t.Errorf("Got %d posts, want %d", got, tt.wantPosts)
			}
		})
	}
}

func TestFeed_DeleteUnknown(t *testing.T) {
	_, err := New().Delete(context.Background(), "nope", notify.Answer(true))
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Delete() error = %v, want %v", err, ErrPostNotFound)
	}
}

func newHandler(t *testing.T) (*Handler, Post, *notify.Recorder) {
	t.Helper()
	f := New()
	p, err := NewComposer(f, nil).Submit(context.Background(), "Hello")
	if err != nil {
		t.Fatal(err)
	}
	rec := &notify.Recorder{}
	return &Handler{
		Feed:      f,
		Notifier:  rec,
		Clipboard: &MemoryClipboard{},
		PageURL:   "http://localhost:8080/home.html",
		Logger:    slogt.New(t),
	}, p, rec
}

func TestHandler_ToggleLike(t *testing.T) {
	h, p, rec := newHandler(t)
	ctx := context.Background()

	got, err := h.ToggleLike(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Liked || got.LikeCount != 1 || got.LikeIcon() != "fas fa-thumbs-up" {
		t.Errorf("After first toggle got liked=%v count=%d icon=%q", got.Liked, got.LikeCount, got.LikeIcon())
	}

	got, err = h.ToggleLike(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Liked || got.LikeCount != 0 || got.LikeIcon() != "far fa-thumbs-up" {
		t.Errorf("After second toggle got liked=%v count=%d icon=%q", got.Liked, got.LikeCount, got.LikeIcon())
	}

	want := []notify.Notification{
		{Level: notify.Success, Message: "Post liked"},
		{Level: notify.Info, Message: "Post unliked"},
	}
	if diff := cmp.Diff(want, rec.Notifications); diff != "" {
		t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_ToggleComments(t *testing.T) {
	h, p, _ := newHandler(t)
	ctx := context.Background()

	if p.CommentsShown {
		t.Fatal("Comment panel shown by default")
	}
	for i, want := range []bool{true, false, true, false} {
		got, err := h.ToggleComments(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.CommentsShown != want {
			t.Errorf("Toggle %d: got shown %v, want %v", i+1, got.CommentsShown, want)
		}
	}
}

func TestHandler_SendComment(t *testing.T) {
	h, p, _ := newHandler(t)
	ctx := context.Background()

	if _, err := h.SendComment(ctx, p.ID, "   "); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("SendComment() blank error = %v, want %v", err, ErrEmptyComment)
	}
	if got, _ := h.Feed.Post(p.ID); len(got.Comments) != 0 {
		t.Errorf("Blank comment changed the list: %v", got.Comments)
	}

	got, err := h.SendComment(ctx, p.ID, "nice!")
	if err != nil {
		t.Fatal(err)
	}
	want := []Comment{{Author: DefaultAuthor, Text: "nice!"}}
	if diff := cmp.Diff(want, got.Comments); diff != "" {
		t.Errorf("Comments mismatch (-want +got):\n%s", diff)
	}

	if _, err := h.SendComment(ctx, "nope", "hi"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("SendComment() unknown post error = %v, want %v", err, ErrPostNotFound)
	}
}

type testSharer struct {
	got ShareData
	err error
}

func (s *testSharer) Share(_ context.Context, data ShareData) error {
	s.got = data
	return s.err
}

func TestHandler_Share(t *testing.T) {
	t.Run("Native", func(t *testing.T) {
		h, p, rec := newHandler(t)
		s := &testSharer{err: errors.New("share cancelled")}
		h.Sharer = s

		res, err := h.Share(context.Background(), p.ID)
		if err != nil {
			t.Fatalf("Share() error = %v", err)
		}
		if res.Method != ShareNative {
			t.Errorf("Got method %q, want %q", res.Method, ShareNative)
		}
		want := ShareData{
			Title: "Check out this post!",
			Text:  "I found this interesting post on PingSocial.",
			URL:   "http://localhost:8080/home.html",
		}
		if diff := cmp.Diff(want, s.got); diff != "" {
			t.Errorf("ShareData mismatch (-want +got):\n%s", diff)
		}
		if len(rec.Notifications) != 0 {
			t.Errorf("Got notifications %v, want none", rec.Notifications)
		}
	})

	t.Run("Clipboard", func(t *testing.T) {
		h, p, rec := newHandler(t)
		res, err := h.Share(context.Background(), p.ID)
		if err != nil {
			t.Fatalf("Share() error = %v", err)
		}
		if res.Method != ShareClipboard {
			t.Errorf("Got method %q, want %q", res.Method, ShareClipboard)
		}
		if got := h.Clipboard.(*MemoryClipboard).Text(); got != h.PageURL {
			t.Errorf("Got clipboard %q, want %q", got, h.PageURL)
		}
		want := []notify.Notification{{Level: notify.Success, Message: "Post link copied to clipboard!"}}
		if diff := cmp.Diff(want, rec.Notifications); diff != "" {
			t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
		}
	})
}
