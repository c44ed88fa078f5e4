package sqlstore

import (
	"time"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
)

// A user represents a member account in the database.
type user struct {
	ID       int64     `bun:",pk,autoincrement"`
	Name     string    `bun:",notnull"`
	Email    string    `bun:",notnull,unique"`
	Status   string    `bun:",notnull,default:'active'"`
	JoinedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// A reportedPost represents a reported member post in the database.
type reportedPost struct {
	ID          int64     `bun:",pk,autoincrement"`
	Author      string    `bun:",notnull"`
	PostText    string    `bun:"post_text,notnull"`
	ReportCount int       `bun:",notnull,default:0"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (u user) ModerationUser() moderation.User {
	return moderation.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Status:   moderation.Status(u.Status),
		JoinedAt: u.JoinedAt,
	}
}

func (p reportedPost) ModerationPost() moderation.Post {
	return moderation.Post{
		ID:          p.ID,
		Author:      p.Author,
		Text:        p.PostText,
		ReportCount: p.ReportCount,
		CreatedAt:   p.CreatedAt,
	}
}
