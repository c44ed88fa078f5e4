package api

import (
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/chat"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/feed"
)

// A Post is a feed post as rendered for clients.
type Post struct {
	feed.Post
	LikeIcon string   `json:"like_icon"`
	Labels   []string `json:"labels"`
}

func newPost(p feed.Post) Post {
	return Post{Post: p, LikeIcon: p.LikeIcon(), Labels: p.Attachment.Labels()}
}

// A Node is one child of the feed container.
type Node struct {
	Kind feed.NodeKind `json:"kind"`
	Post *Post         `json:"post,omitempty"`
}

// A Composer is the state of the post composer.
type Composer struct {
	Attachment feed.Attachment `json:"attachment"`
	Preview    []string        `json:"preview"`
}

// Friends lists the pending requests and confirmed friends.
type Friends struct {
	Requests []string `json:"requests"`
	Friends  []string `json:"friends"`
}

// A Suggestion is a friend suggestion and its button label.
type Suggestion struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Conversations lists every conversation.
type Conversations struct {
	Conversations []chat.Conversation `json:"conversations"`
}

type postText struct {
	Text string `json:"text"`
}

type commentText struct {
	Text string `json:"text"`
}

type messageText struct {
	Text string `json:"text"`
}

type tagList struct {
	Friends string `json:"friends" validate:"required,max=500"`
}

type feeling struct {
	Feeling string `json:"feeling" validate:"required,max=100"`
}

// likeEvent is broadcast when a post's like state changes.
type likeEvent struct {
	ID        string `json:"id"`
	LikeCount int    `json:"like_count"`
	Liked     bool   `json:"liked"`
}

// deleteEvent is broadcast when a post is removed.
type deleteEvent struct {
	ID string `json:"id"`
}
