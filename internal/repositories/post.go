package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// ErrPostNotFound is returned when an update or delete matches no row owned by the caller.
var ErrPostNotFound = errors.New("post not found")

const postColumns = `post_id, title, content, user_id, created_at, updated_at`

// PostReadRepository handles post read operations
type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetByID returns the post with the given id, or nil if it does not exist.
func (r *PostReadRepository) GetByID(ctx context.Context, postID int64) (*models.PostDB, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, postID)

	logger.FromContext(ctx).Debugw("query",
		"sql", query,
		"args", []any{postID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}
	return &post, nil
}

// ListAll returns every post ordered by id.
func (r *PostReadRepository) ListAll(ctx context.Context) ([]models.PostDB, error) {
	const query = `SELECT ` + postColumns + ` FROM posts ORDER BY post_id`

	posts := []models.PostDB{}
	err := r.db.SelectContext(ctx, &posts, query)

	logger.FromContext(ctx).Debugw("query",
		"sql", query,
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	return posts, nil
}

// ListByUserID returns the posts owned by userID ordered by id.
func (r *PostReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PostDB, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY post_id`

	posts := []models.PostDB{}
	err := r.db.SelectContext(ctx, &posts, query, userID)

	logger.FromContext(ctx).Debugw("query",
		"sql", query,
		"args", []any{userID},
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("select user posts: %w", err)
	}
	return posts, nil
}

// PostWriteRepository handles post write operations
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostWriteRepository(db *sqlx.DB, txGetter TxGetter) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a post owned by userID and returns the stored row.
func (r *PostWriteRepository) Save(ctx context.Context, userID uuid.UUID, title, content string) (*models.PostDB, error) {
	const query = `
		INSERT INTO posts (title, content, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + postColumns

	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, title, content, userID)

	logger.FromContext(ctx).Debugw("query",
		"sql", oneLine(query),
		"args", []any{title, userID},
		"result", post.PostID,
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

// Update rewrites title and content of a post owned by userID. The owner column is never written.
func (r *PostWriteRepository) Update(ctx context.Context, postID int64, userID uuid.UUID, title, content string) (*models.PostDB, error) {
	const query = `
		UPDATE posts
		SET title = $3, content = $4, updated_at = NOW()
		WHERE post_id = $1 AND user_id = $2
		RETURNING ` + postColumns

	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, postID, userID, title, content)

	logger.FromContext(ctx).Debugw("query",
		"sql", oneLine(query),
		"args", []any{postID, userID, title},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

// Delete removes a post owned by userID.
func (r *PostWriteRepository) Delete(ctx context.Context, postID int64, userID uuid.UUID) error {
	const query = `DELETE FROM posts WHERE post_id = $1 AND user_id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, postID, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.FromContext(ctx).Debugw("query",
		"sql", query,
		"args", []any{postID, userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
