package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newsfold/news-service/internal/domain"
)

// Compile-time interface verification.
var _ CommentRepository = (*PgCommentRepository)(nil)

// PgCommentRepository is a PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	db DBTX
}

// NewPgCommentRepository creates a new PostgreSQL comment repository.
func NewPgCommentRepository(db DBTX) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// UpdateVotes applies the delta as a relative update, same shape as article
// vote updates: the row returned reflects this delta plus any concurrent
// ones, never a stale read-modify-write.
func (r *PgCommentRepository) UpdateVotes(ctx context.Context, id, delta int) (*domain.Comment, error) {
	if id < 1 {
		return nil, domain.NewValidationError("comment_id", "must be at least 1")
	}

	query := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, article_id, author, body, votes, created_at`

	var c domain.Comment
	err := r.db.QueryRow(ctx, query, delta, id).Scan(
		&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewCommentNotFound(id)
		}
		return nil, fmt.Errorf("failed to update comment votes: %w", err)
	}

	return &c, nil
}

// Delete removes a comment, distinguishing a missing row from a successful
// delete so the handler can return 404 rather than a silent 204.
func (r *PgCommentRepository) Delete(ctx context.Context, id int) error {
	if id < 1 {
		return domain.NewValidationError("comment_id", "must be at least 1")
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM comments WHERE comment_id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check comment existence: %w", err)
	}
	if !exists {
		return domain.NewCommentNotFound(id)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
