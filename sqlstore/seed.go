package sqlstore

import (
	"context"
	"fmt"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
)

var (
	demoUsers = []moderation.User{
		{Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Status: moderation.StatusActive},
		{Name: "Mike Chen", Email: "mike.chen@example.com", Status: moderation.StatusActive},
		{Name: "Emma Wilson", Email: "emma.wilson@example.com", Status: moderation.StatusBanned},
		{Name: "David Brown", Email: "david.brown@example.com", Status: moderation.StatusActive},
		{Name: "Lisa Anderson", Email: "lisa.anderson@example.com", Status: moderation.StatusActive},
		{Name: "James Taylor", Email: "james.taylor@example.com", Status: moderation.StatusActive},
	}
	demoPosts = []moderation.Post{
		{Author: "Emma Wilson", Text: "Click here to win a free phone!!!", ReportCount: 12},
		{Author: "David Brown", Text: "Selling followers, DM me", ReportCount: 5},
		{Author: "Mike Chen", Text: "This restaurant was the worst ever", ReportCount: 1},
	}
)

// Seed fills an empty database with demo users and reported posts.
func (s *Store) Seed(ctx context.Context) error {
	n, err := s.bun.NewSelect().Model((*user)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, u := range demoUsers {
		if _, err := s.InsertUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	for _, p := range demoPosts {
		if _, err := s.InsertPost(ctx, p); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
	}
	return nil
}
