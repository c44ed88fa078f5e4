// Package moderation implements the admin dashboard's user and post
// moderation: search, pagination, bans, deletion and report dismissal.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// ErrNotFound is returned by a Store when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// PageSize is the number of rows on a page.
const PageSize = 10

// A Store persists the moderation directory.
type Store interface {
	ListUsers(ctx context.Context, q Query) ([]User, int, error)
	GetUser(ctx context.Context, id int64) (User, error)
	SetUserStatus(ctx context.Context, id int64, status Status) error
	DeleteUser(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, q Query) ([]Post, int, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	DeletePost(ctx context.Context, id int64) error
	ResetReports(ctx context.Context, id int64) error
}

// A Cache stores rendered listing pages under a version. Invalidate moves
// the cache to a new version, so pages stored under an older one are never
// served again.
type Cache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, key string) ([]byte, bool, error)
	Set(ctx context.Context, version int64, key string, val []byte) error
	Invalidate(ctx context.Context) error
}

// Service runs moderation actions against a Store. Cache and Notifier are
// optional.
type Service struct {
	Store    Store
	Cache    Cache
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Users returns the given page of users matching search.
func (s *Service) Users(ctx context.Context, search string, page int) (Page[User], error) {
	return list(ctx, s, "users", search, page, s.Store.ListUsers)
}

// Posts returns the given page of reported posts matching search.
func (s *Service) Posts(ctx context.Context, search string, page int) (Page[Post], error) {
	return list(ctx, s, "posts", search, page, s.Store.ListPosts)
}

func list[T any](ctx context.Context, s *Service, kind, search string, page int, fetch func(context.Context, Query) ([]T, int, error)) (Page[T], error) {
	search = strings.ToLower(strings.TrimSpace(search))
	if page < 1 {
		page = 1
	}

	// The version is read before the store so a page fetched ahead of a
	// concurrent change is stored under the version that change retires.
	key := fmt.Sprintf("%s:%d:%s", kind, page, search)
	cached := s.Cache != nil
	var version int64
	if cached {
		v, err := s.Cache.Version(ctx)
		if err != nil {
			s.Logger.Error("Could not read cache version", "error", err.Error())
			cached = false
		}
		version = v
	}
	if cached {
		b, ok, err := s.Cache.Get(ctx, version, key)
		if err != nil {
			s.Logger.Error("Could not read cached page", "key", key, "error", err.Error())
		}
		var hit Page[T]
		if ok && json.Unmarshal(b, &hit) == nil {
			return hit, nil
		}
	}

	items, total, err := fetch(ctx, Query{Search: search, Limit: PageSize, Offset: (page - 1) * PageSize})
	if err != nil {
		return Page[T]{}, fmt.Errorf("list %s: %w", kind, err)
	}
	totalPages := max(1, (total+PageSize-1)/PageSize)
	if page > totalPages {
		page = totalPages
		items, total, err = fetch(ctx, Query{Search: search, Limit: PageSize, Offset: (page - 1) * PageSize})
		if err != nil {
			return Page[T]{}, fmt.Errorf("list %s: %w", kind, err)
		}
	}
	if items == nil {
		items = []T{}
	}

	p := Page[T]{
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
		Items:      items,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	if cached {
		if b, err := json.Marshal(p); err == nil {
			if err := s.Cache.Set(ctx, version, key, b); err != nil {
				s.Logger.Error("Could not cache page", "key", key, "error", err.Error())
			}
		}
	}
	return p, nil
}

// Post returns a single reported post.
func (s *Service) Post(ctx context.Context, id int64) (Post, error) {
	p, err := s.Store.GetPost(ctx, id)
	if err != nil {
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// Ban marks a user as banned once c confirms it.
func (s *Service) Ban(ctx context.Context, id int64, c notify.Confirmer) (bool, error) {
	return s.setStatus(ctx, id, c, StatusBanned, "ban", "banned")
}

// Unban reactivates a banned user once c confirms it.
func (s *Service) Unban(ctx context.Context, id int64, c notify.Confirmer) (bool, error) {
	return s.setStatus(ctx, id, c, StatusActive, "unban", "unbanned")
}

func (s *Service) setStatus(ctx context.Context, id int64, c notify.Confirmer, status Status, verb, done string) (bool, error) {
	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if !c.Confirm(ctx, fmt.Sprintf("Are you sure you want to %s %s?", verb, u.Name)) {
		return false, nil
	}
	if err := s.Store.SetUserStatus(ctx, id, status); err != nil {
		return false, fmt.Errorf("set user status: %w", err)
	}
	s.changed(ctx, fmt.Sprintf("%s has been %s", u.Name, done))
	return true, nil
}

// DeleteUser removes a user once c confirms it.
func (s *Service) DeleteUser(ctx context.Context, id int64, c notify.Confirmer) (bool, error) {
	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if !c.Confirm(ctx, deletePrompt("user")) {
		return false, nil
	}
	if err := s.Store.DeleteUser(ctx, id); err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	s.changed(ctx, fmt.Sprintf("User %q has been deleted", u.Name))
	return true, nil
}

// DeletePost removes a reported post once c confirms it.
func (s *Service) DeletePost(ctx context.Context, id int64, c notify.Confirmer) (bool, error) {
	if _, err := s.Store.GetPost(ctx, id); err != nil {
		return false, fmt.Errorf("get post: %w", err)
	}
	if !c.Confirm(ctx, deletePrompt("post")) {
		return false, nil
	}
	if err := s.Store.DeletePost(ctx, id); err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	s.changed(ctx, `Post "post" has been deleted`)
	return true, nil
}

// DismissReports clears the report count of a post once c confirms it.
func (s *Service) DismissReports(ctx context.Context, id int64, c notify.Confirmer) (bool, error) {
	if _, err := s.Store.GetPost(ctx, id); err != nil {
		return false, fmt.Errorf("get post: %w", err)
	}
	if !c.Confirm(ctx, "Are you sure you want to dismiss all reports for this post?") {
		return false, nil
	}
	if err := s.Store.ResetReports(ctx, id); err != nil {
		return false, fmt.Errorf("reset reports: %w", err)
	}
	s.changed(ctx, "Reports dismissed successfully")
	return true, nil
}

func deletePrompt(entity string) string {
	return fmt.Sprintf("Are you sure you want to delete this %s? This action cannot be undone.", entity)
}

// changed drops cached pages and tells the administrator what happened.
func (s *Service) changed(ctx context.Context, msg string) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			s.Logger.Error("Could not invalidate cache", "error", err.Error())
		}
	}
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, notify.Notification{Level: notify.Success, Message: msg})
	}
}
