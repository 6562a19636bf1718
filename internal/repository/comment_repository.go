package repository

import (
	"context"

	"github.com/newsfold/news-service/internal/domain"
)

// CommentRepository manages comments addressed by their own id, independent
// of the owning article. Creation and per-article listing live on
// ArticleRepository because they are article-scoped operations.
type CommentRepository interface {
	// UpdateVotes applies a signed delta to a comment's votes atomically.
	UpdateVotes(ctx context.Context, id, delta int) (*domain.Comment, error)

	// Delete removes a single comment.
	Delete(ctx context.Context, id int) error
}
