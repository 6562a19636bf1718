package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/newsfold/news-service/internal/domain"
)

// ArticleRepository manages article persistence, the derived comment count,
// and the comment flows scoped to a single article.
type ArticleRepository interface {
	// List returns one page of article summaries plus the total number of
	// matching articles (ignoring pagination, respecting the topic filter).
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int64, error)

	// GetByID returns a single article including body and comment count.
	GetByID(ctx context.Context, id int) (*domain.Article, error)

	// Insert creates an article and returns it shaped like GetByID.
	Insert(ctx context.Context, in domain.NewArticle) (*domain.Article, error)

	// UpdateVotes applies a signed delta to an article's votes atomically.
	UpdateVotes(ctx context.Context, id, delta int) (*domain.Article, error)

	// Delete removes an article and its comments.
	Delete(ctx context.Context, id int) error

	// ListComments returns an article's comments, most recent first. An
	// article with no comments yields an empty slice, not an error.
	ListComments(ctx context.Context, articleID int) ([]*domain.Comment, error)

	// InsertComment posts a comment on an article.
	InsertComment(ctx context.Context, articleID int, in domain.NewComment) (*domain.Comment, error)
}

// articleSortColumns is the fixed whitelist of client-facing sort keys and
// the SQL identifiers they resolve to. comment_count resolves to the
// aggregate alias; everything else is a column on articles.
var articleSortColumns = map[string]string{
	"author":        "a.author",
	"title":         "a.title",
	"article_id":    "a.article_id",
	"topic":         "a.topic",
	"created_at":    "a.created_at",
	"votes":         "a.votes",
	"comment_count": "comment_count",
}

// ArticleFilter carries the client-supplied listing parameters. All fields
// are set by the caller; the HTTP layer applies the documented defaults
// (sort_by created_at, order desc, limit 10, page 1) before building one.
type ArticleFilter struct {
	// Topic restricts the listing to one topic slug. Empty means no filter.
	Topic string
	// SortBy is a key from the sort whitelist.
	SortBy string
	// Order is "asc" or "desc", case-sensitive.
	Order string
	// Limit is the page size, >= 1.
	Limit int
	// Page is the 1-based page number.
	Page int
}

// Validate rejects any value outside the accepted domain. The sort column
// and direction end up interpolated into query text, so this runs before
// orderClause may be called; never rely on the database to reject a bad
// identifier.
func (f ArticleFilter) Validate() error {
	if _, ok := articleSortColumns[f.SortBy]; !ok {
		return domain.NewValidationError("sort_by", fmt.Sprintf("%q is not a sortable column", f.SortBy))
	}
	if f.Order != "asc" && f.Order != "desc" {
		return domain.NewValidationError("order", `must be "asc" or "desc"`)
	}
	if f.Limit < 1 {
		return domain.NewValidationError("limit", "must be at least 1")
	}
	if f.Page < 1 {
		return domain.NewValidationError("p", "must be at least 1")
	}
	return nil
}

// orderClause returns the ORDER BY expression for a validated filter. This is
// the single trusted constructor for interpolated identifiers; both parts are
// guaranteed members of fixed sets by Validate.
func (f ArticleFilter) orderClause() string {
	return articleSortColumns[f.SortBy] + " " + strings.ToUpper(f.Order)
}

// offset returns the OFFSET for the 1-based page.
func (f ArticleFilter) offset() int {
	return (f.Page - 1) * f.Limit
}
