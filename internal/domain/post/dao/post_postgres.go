package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS posts (
		id                TEXT PRIMARY KEY,
		topic             TEXT NOT NULL,
		status            TEXT NOT NULL,
		content           JSONB NOT NULL,
		hashtags          JSONB NOT NULL DEFAULT '[]',
		engagement_score  JSONB,
		scheduled_at      TIMESTAMPTZ,
		linkedin_post_urn TEXT,
		published_at      TIMESTAMPTZ,
		error_message     TEXT,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS posts_status_scheduled_idx ON posts (status, scheduled_at);
`

const postColumns = `id, topic, status, content, hashtags, engagement_score, scheduled_at,
	linkedin_post_urn, published_at, error_message, created_at, updated_at`

// PostPostgres implements PostRepository for PostgreSQL
type PostPostgres struct {
	pool *pgxpool.Pool
}

// NewPostPostgres creates a new PostgreSQL post repository
func NewPostPostgres(pool *pgxpool.Pool) *PostPostgres {
	return &PostPostgres{pool: pool}
}

// Migrate creates the posts table when it does not exist
func (r *PostPostgres) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrating posts table: %w", err)
	}
	return nil
}

// Save inserts or replaces a post
func (r *PostPostgres) Save(ctx context.Context, post *entity.Post) error {
	docs, err := encodeDocuments(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			topic = EXCLUDED.topic,
			status = EXCLUDED.status,
			content = EXCLUDED.content,
			hashtags = EXCLUDED.hashtags,
			engagement_score = EXCLUDED.engagement_score,
			scheduled_at = EXCLUDED.scheduled_at,
			linkedin_post_urn = EXCLUDED.linkedin_post_urn,
			published_at = EXCLUDED.published_at,
			error_message = EXCLUDED.error_message,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		post.ID,
		post.Topic,
		post.Status,
		docs.content,
		docs.hashtags,
		docs.score,
		post.ScheduledAt,
		nullString(post.LinkedInPostURN),
		post.PublishedAt,
		nullString(post.ErrorMessage),
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostPostgres) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post: %w", err)
	}

	return post, nil
}

// Delete removes a post
func (r *PostPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// List retrieves posts with filtering
func (r *PostPostgres) List(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	return r.query(ctx, query, args...)
}

// GetDue retrieves scheduled posts that are due at now
func (r *PostPostgres) GetDue(ctx context.Context, now time.Time) ([]entity.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = $1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
		ORDER BY scheduled_at ASC
	`
	return r.query(ctx, query, entity.StatusScheduled, now)
}

func (r *PostPostgres) query(ctx context.Context, query string, args ...any) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
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

func scanPost(row pgx.Row) (*entity.Post, error) {
	var post entity.Post
	var docs documentColumns
	var urn, errorMessage *string
	var scheduledAt, publishedAt *time.Time

	err := row.Scan(
		&post.ID,
		&post.Topic,
		&post.Status,
		&docs.content,
		&docs.hashtags,
		&docs.score,
		&scheduledAt,
		&urn,
		&publishedAt,
		&errorMessage,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeDocuments(&post, docs); err != nil {
		return nil, err
	}
	if urn != nil {
		post.LinkedInPostURN = *urn
	}
	if errorMessage != nil {
		post.ErrorMessage = *errorMessage
	}
	post.ScheduledAt = utcPtr(scheduledAt)
	post.PublishedAt = utcPtr(publishedAt)
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()

	return &post, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
