package moderation

import "time"

// Status is a user's account status.
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

// A User is a member account as seen by an administrator.
type User struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Status   Status    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// A Post is a member post that has been reported.
type Post struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	ReportCount int       `json:"report_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// A Query selects a window of search results.
type Query struct {
	Search string
	Limit  int
	Offset int
}

// A Page is one page of search results.
type Page[T any] struct {
	Number     int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	Items      []T  `json:"items"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}
