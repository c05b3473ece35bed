package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS posts (
		id                TEXT PRIMARY KEY,
		topic             TEXT NOT NULL,
		status            TEXT NOT NULL,
		content           TEXT NOT NULL,
		hashtags          TEXT NOT NULL DEFAULT '[]',
		engagement_score  TEXT,
		scheduled_at      TEXT,
		linkedin_post_urn TEXT,
		published_at      TEXT,
		error_message     TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS posts_status_scheduled_idx ON posts (status, scheduled_at);
`

// sqliteTime is a fixed-width UTC layout so that text comparison orders by time
const sqliteTime = "2006-01-02 15:04:05.000000000"

// PostSQLite implements PostRepository for SQLite
type PostSQLite struct {
	db *sql.DB
}

// NewPostSQLite creates a new SQLite post repository
func NewPostSQLite(db *sql.DB) *PostSQLite {
	return &PostSQLite{db: db}
}

// Migrate creates the posts table when it does not exist
func (r *PostSQLite) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrating posts table: %w", err)
	}
	return nil
}

// Save inserts or replaces a post
func (r *PostSQLite) Save(ctx context.Context, post *entity.Post) error {
	docs, err := encodeDocuments(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			topic = excluded.topic,
			status = excluded.status,
			content = excluded.content,
			hashtags = excluded.hashtags,
			engagement_score = excluded.engagement_score,
			scheduled_at = excluded.scheduled_at,
			linkedin_post_urn = excluded.linkedin_post_urn,
			published_at = excluded.published_at,
			error_message = excluded.error_message,
			updated_at = excluded.updated_at
	`

	var score sql.NullString
	if docs.score != nil {
		score = sql.NullString{String: string(docs.score), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		post.ID,
		post.Topic,
		string(post.Status),
		string(docs.content),
		string(docs.hashtags),
		score,
		formatNullTime(post.ScheduledAt),
		nullString(post.LinkedInPostURN),
		formatNullTime(post.PublishedAt),
		nullString(post.ErrorMessage),
		formatTime(post.CreatedAt),
		formatTime(post.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostSQLite) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	post, err := scanSQLitePost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post: %w", err)
	}

	return post, nil
}

// Delete removes a post
func (r *PostSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// List retrieves posts with filtering
func (r *PostSQLite) List(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []any{}

	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}
	query += " ORDER BY created_at ASC"

	return r.query(ctx, query, args...)
}

// GetDue retrieves scheduled posts that are due at now
func (r *PostSQLite) GetDue(ctx context.Context, now time.Time) ([]entity.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?
		ORDER BY scheduled_at ASC
	`
	return r.query(ctx, query, string(entity.StatusScheduled), formatTime(now))
}

func (r *PostSQLite) query(ctx context.Context, query string, args ...any) ([]entity.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.Post{}
	for rows.Next() {
		post, err := scanSQLitePost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}

	return posts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePost(row rowScanner) (*entity.Post, error) {
	var post entity.Post
	var status, contentDoc, hashtagsDoc, createdAt, updatedAt string
	var score, scheduledAt, urn, publishedAt, errorMessage sql.NullString

	err := row.Scan(
		&post.ID,
		&post.Topic,
		&status,
		&contentDoc,
		&hashtagsDoc,
		&score,
		&scheduledAt,
		&urn,
		&publishedAt,
		&errorMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Status = entity.Status(status)
	docs := documentColumns{content: []byte(contentDoc), hashtags: []byte(hashtagsDoc)}
	if score.Valid {
		docs.score = []byte(score.String)
	}
	if err := decodeDocuments(&post, docs); err != nil {
		return nil, err
	}

	post.LinkedInPostURN = urn.String
	post.ErrorMessage = errorMessage.String
	if post.ScheduledAt, err = parseNullTime(scheduledAt); err != nil {
		return nil, err
	}
	if post.PublishedAt, err = parseNullTime(publishedAt); err != nil {
		return nil, err
	}
	if post.CreatedAt, err = time.Parse(sqliteTime, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if post.UpdatedAt, err = time.Parse(sqliteTime, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &post, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(sqliteTime, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: %w", s.String, err)
	}
	return &t, nil
}
