package feed

import (
	"strings"
	"time"
)

// DefaultAuthor is the label shown on posts and comments made by the
// current user.
const DefaultAuthor = "Your Name"

// An Attachment holds the non-text content bundled with a post.
type Attachment struct {
	PhotoURL      string   `json:"photo_url,omitempty"`
	TaggedFriends []string `json:"tagged_friends"`
	Feeling       string   `json:"feeling,omitempty"`
}

// Labels returns the preview labels for the attachment, in display order.
func (a Attachment) Labels() []string {
	labels := make([]string, 0, 3)
	if a.PhotoURL != "" {
		labels = append(labels, "Photo Added")
	}
	if len(a.TaggedFriends) > 0 {
		labels = append(labels, "Tagged: "+strings.Join(a.TaggedFriends, ", "))
	}
	if a.Feeling != "" {
		labels = append(labels, "Feeling "+a.Feeling)
	}
	return labels
}

func (a Attachment) clone() Attachment {
	out := a
	out.TaggedFriends = append([]string{}, a.TaggedFriends...)
	return out
}

// A Comment is a reply appended to a post.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// A Post is an entry in the feed.
type Post struct {
	ID            string     `json:"id"`
	Author        string     `json:"author"`
	Text          string     `json:"text"`
	Attachment    Attachment `json:"attachment"`
	LikeCount     int        `json:"like_count"`
	Liked         bool       `json:"liked"`
	CommentsShown bool       `json:"comments_shown"`
	Comments      []Comment  `json:"comments"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LikeIcon returns the icon classes for the post's like button.
func (p Post) LikeIcon() string {
	if p.Liked {
		return "fas fa-thumbs-up"
	}
	return "far fa-thumbs-up"
}

func (p *Post) clone() Post {
	out := *p
	out.Attachment = p.Attachment.clone()
	out.Comments = append([]Comment{}, p.Comments...)
	return out
}

// NodeKind tells the feed's leading element apart from posts.
type NodeKind string

const (
	KindComposer NodeKind = "composer"
	KindPost     NodeKind = "post"
)

// A Node is one child of the feed container.
type Node struct {
	Kind NodeKind `json:"kind"`
	Post *Post    `json:"post,omitempty"`
}
