// Package sqlstore provides moderation storage on bun, backed by PostgreSQL
// or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
)

// Store provides moderation storage in a SQL database.
type Store struct {
	bun *bun.DB
}

var _ moderation.Store = (*Store)(nil)

// Connect opens the database named by url, which must start with
// "postgres://" or "sqlite://", pings it and creates missing tables.
func Connect(ctx context.Context, url string) (*Store, error) {
	var (
		s   *Store
		err error
	)
	switch {
	case strings.HasPrefix(url, "postgres://"):
		s, err = connectPostgres(ctx, url)
	case strings.HasPrefix(url, "sqlite://"):
		s, err = openSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database url %q", url)
	}
	if err != nil {
		return nil, err
	}
	if err := s.createTables(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func connectPostgres(ctx context.Context, connStr string) (*Store, error) {
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{bun: bun.NewDB(sqlDB, pgdialect.New())}, nil
}

func openSQLite(ctx context.Context, dsn string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// In-memory databases live as long as their connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{bun: bun.NewDB(sqlDB, sqlitedialect.New())}, nil
}

func (s *Store) createTables(ctx context.Context) error {
	for _, model := range []any{(*user)(nil), (*reportedPost)(nil)} {
		if _, err := s.bun.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.bun.Close()
}

// ListUsers returns the users matching q.Search, ordered by id, and the
// number of matches.
func (s *Store) ListUsers(ctx context.Context, q moderation.Query) ([]moderation.User, int, error) {
	var users []user
	sel := s.bun.NewSelect().
		Model(&users).
		Order("id ASC").
		Limit(q.Limit).
		Offset(q.Offset)
	sel = search(sel, q.Search, "name", "email", "status")

	total, err := sel.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}
	out := make([]moderation.User, len(users))
	for i, u := range users {
		out[i] = u.ModerationUser()
	}
	return out, total, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id int64) (moderation.User, error) {
	var u user
	if err := s.bun.NewSelect().Model(&u).Where("id = ?", id).Scan(ctx); err != nil {
		return moderation.User{}, notFound(err)
	}
	return u.ModerationUser(), nil
}

// SetUserStatus updates the status of a user.
func (s *Store) SetUserStatus(ctx context.Context, id int64, status moderation.Status) error {
	res, err := s.bun.NewUpdate().
		Model((*user)(nil)).
		Set("status = ?", string(status)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return affected(res)
}

// DeleteUser deletes a user.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.bun.NewDelete().Model((*user)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return affected(res)
}

// ListPosts returns the reported posts matching q.Search, most reported
// first, and the number of matches.
func (s *Store) ListPosts(ctx context.Context, q moderation.Query) ([]moderation.Post, int, error) {
	var posts []reportedPost
	sel := s.bun.NewSelect().
		Model(&posts).
		Order("report_count DESC", "id ASC").
		Limit(q.Limit).
		Offset(q.Offset)
	sel = search(sel, q.Search, "author", "post_text")

	total, err := sel.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}
	out := make([]moderation.Post, len(posts))
	for i, p := range posts {
		out[i] = p.ModerationPost()
	}
	return out, total, nil
}

// GetPost returns the reported post with the given id.
func (s *Store) GetPost(ctx context.Context, id int64) (moderation.Post, error) {
	var p reportedPost
	if err := s.bun.NewSelect().Model(&p).Where("id = ?", id).Scan(ctx); err != nil {
		return moderation.Post{}, notFound(err)
	}
	return p.ModerationPost(), nil
}

// DeletePost deletes a reported post.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.bun.NewDelete().Model((*reportedPost)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return affected(res)
}

// ResetReports sets the report count of a post to zero.
func (s *Store) ResetReports(ctx context.Context, id int64) error {
	res, err := s.bun.NewUpdate().
		Model((*reportedPost)(nil)).
		Set("report_count = 0").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return affected(res)
}

// InsertUser inserts a user. The returned user holds the generated id.
func (s *Store) InsertUser(ctx context.Context, u moderation.User) (moderation.User, error) {
	m := &user{Name: u.Name, Email: u.Email, Status: string(u.Status), JoinedAt: u.JoinedAt}
	if m.Status == "" {
		m.Status = string(moderation.StatusActive)
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
		return moderation.User{}, fmt.Errorf("insert: %w", err)
	}
	return m.ModerationUser(), nil
}

// InsertPost inserts a reported post. The returned post holds the generated id.
func (s *Store) InsertPost(ctx context.Context, p moderation.Post) (moderation.Post, error) {
	m := &reportedPost{Author: p.Author, PostText: p.Text, ReportCount: p.ReportCount, CreatedAt: p.CreatedAt}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
		return moderation.Post{}, fmt.Errorf("insert: %w", err)
	}
	return m.ModerationPost(), nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// search restricts sel to rows where any of the columns contains term,
// ignoring case.
func search(sel *bun.SelectQuery, term string, columns ...string) *bun.SelectQuery {
	if term == "" {
		return sel
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return sel.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, col := range columns {
			q = q.WhereOr(`LOWER(?) LIKE ? ESCAPE '\'`, bun.Ident(col), pattern)
		}
		return q
	})
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return moderation.ErrNotFound
	}
	return fmt.Errorf("scan: %w", err)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return moderation.ErrNotFound
	}
	return nil
}
