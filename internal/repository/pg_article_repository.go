package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/newsfold/news-service/internal/domain"
)

// Compile-time interface verification.
var _ ArticleRepository = (*PgArticleRepository)(nil)

// PgArticleRepository is a PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db DBTX
}

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

// articleSummaryColumns are the listing columns; the body is deliberately
// excluded from the listing view. Comment counts count the comment body
// column rather than the article id so that zero-comment articles report 0
// through the left join instead of 1.
const articleSummaryColumns = `a.author, a.title, a.article_id, a.topic, a.created_at, a.votes,
			COUNT(c.body)::INT AS comment_count`

// List returns one page of article summaries and the total matching count.
func (r *PgArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Topic != "" {
		// A missing topic is a 404 naming the slug, not an empty page.
		exists, err := r.topicExists(ctx, filter.Topic)
		if err != nil {
			return nil, 0, err
		}
		if !exists {
			return nil, 0, domain.NewTopicNotFound(filter.Topic)
		}

		conditions = append(conditions, fmt.Sprintf("a.topic = $%d", argIndex))
		args = append(args, filter.Topic)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Total matching articles, ignoring pagination.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM articles a %s", whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	// The ORDER BY identifiers come from the whitelist validated above; the
	// values remain bound parameters.
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		LEFT JOIN comments c ON a.article_id = c.article_id
		%s
		GROUP BY a.article_id
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		articleSummaryColumns, whereClause, filter.orderClause(), argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.offset())

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0, filter.Limit)
	for rows.Next() {
		a, err := scanArticleSummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, totalCount, nil
}

// GetByID returns the full article, body included, with its comment count.
func (r *PgArticleRepository) GetByID(ctx context.Context, id int) (*domain.Article, error) {
	if id < 1 {
		return nil, domain.NewValidationError("article_id", "must be at least 1")
	}

	query := `
		SELECT a.author, a.title, a.article_id, a.body, a.topic, a.created_at, a.votes,
			COUNT(c.body)::INT AS comment_count
		FROM articles a
		LEFT JOIN comments c ON a.article_id = c.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id`

	var a domain.Article
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.Author, &a.Title, &a.ArticleID, &a.Body, &a.Topic, &a.CreatedAt, &a.Votes, &a.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewArticleNotFound(id)
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}

	return &a, nil
}

// Insert creates an article after verifying its author and topic references,
// then re-fetches it shaped like GetByID (comment count 0 for a fresh row).
func (r *PgArticleRepository) Insert(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := r.userExists(ctx, in.Author)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewUsernameNotFound()
	}

	exists, err = r.topicExists(ctx, in.Topic)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewTopicNotFound(in.Topic)
	}

	query := `
		INSERT INTO articles (author, title, body, topic)
		VALUES ($1, $2, $3, $4)
		RETURNING article_id`

	var id int
	if err := r.db.QueryRow(ctx, query, in.Author, in.Title, in.Body, in.Topic).Scan(&id); err != nil {
		return nil, classifyArticleWriteError(err, in)
	}

	return r.GetByID(ctx, id)
}

// UpdateVotes applies the delta in a single relative update so concurrent
// deltas against the same row serialize at the store; the current value is
// never read into application code.
func (r *PgArticleRepository) UpdateVotes(ctx context.Context, id, delta int) (*domain.Article, error) {
	if id < 1 {
		return nil, domain.NewValidationError("article_id", "must be at least 1")
	}

	query := `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING author, title, article_id, body, topic, created_at, votes`

	var a domain.Article
	err := r.db.QueryRow(ctx, query, delta, id).Scan(
		&a.Author, &a.Title, &a.ArticleID, &a.Body, &a.Topic, &a.CreatedAt, &a.Votes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewArticleNotFound(id)
		}
		return nil, fmt.Errorf("failed to update article votes: %w", err)
	}

	return &a, nil
}

// Delete removes an article and cascades to its comments inside one
// transaction, so a failure part-way leaves both tables untouched.
func (r *PgArticleRepository) Delete(ctx context.Context, id int) error {
	if id < 1 {
		return domain.NewValidationError("article_id", "must be at least 1")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check article existence: %w", err)
	}
	if !exists {
		return domain.NewArticleNotFound(id)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE article_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete article comments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM articles WHERE article_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit article delete: %w", err)
	}

	return nil
}

// ListComments returns an article's comments ordered most recent first.
// Zero rows is ambiguous: the article may not exist, or it may simply have
// no comments yet. An extra existence check disambiguates; only the former
// is an error.
func (r *PgArticleRepository) ListComments(ctx context.Context, articleID int) ([]*domain.Comment, error) {
	if articleID < 1 {
		return nil, domain.NewValidationError("article_id", "must be at least 1")
	}

	query := `
		SELECT comment_id, article_id, author, body, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	if len(comments) == 0 {
		exists, err := r.articleExists(ctx, articleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.NewArticleNotFound(articleID)
		}
	}

	return comments, nil
}

// InsertComment posts a comment after verifying the article and the author.
// Up to three round trips; the check-then-insert sequence is deliberately not
// transactional, so an article deleted in between surfaces as a foreign key
// violation, which is classified below.
func (r *PgArticleRepository) InsertComment(ctx context.Context, articleID int, in domain.NewComment) (*domain.Comment, error) {
	if articleID < 1 {
		return nil, domain.NewValidationError("article_id", "must be at least 1")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := r.articleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewArticleNotFound(articleID)
	}

	exists, err = r.userExists(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewUsernameNotFound()
	}

	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, article_id, author, body, votes, created_at`

	var c domain.Comment
	err = r.db.QueryRow(ctx, query, articleID, in.Username, in.Body).Scan(
		&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "author") {
				return nil, domain.NewUsernameNotFound()
			}
			return nil, domain.NewArticleNotFound(articleID)
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &c, nil
}

// articleExists reports whether an article row exists.
func (r *PgArticleRepository) articleExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return exists, nil
}

// topicExists reports whether a topic with the slug exists.
func (r *PgArticleRepository) topicExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check topic existence: %w", err)
	}
	return exists, nil
}

// userExists reports whether a user with the username exists.
func (r *PgArticleRepository) userExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// classifyArticleWriteError maps foreign key violations raised by the insert
// itself (the pre-checks race with concurrent deletes) to the same not-found
// outcomes the pre-checks produce.
func classifyArticleWriteError(err error, in domain.NewArticle) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		if strings.Contains(pgErr.ConstraintName, "topic") {
			return domain.NewTopicNotFound(in.Topic)
		}
		return domain.NewUsernameNotFound()
	}
	return fmt.Errorf("failed to insert article: %w", err)
}

// scanArticleSummary scans a listing row (no body, with comment_count).
func scanArticleSummary(rows pgx.Rows) (*domain.Article, error) {
	var a domain.Article
	if err := rows.Scan(&a.Author, &a.Title, &a.ArticleID, &a.Topic, &a.CreatedAt, &a.Votes, &a.CommentCount); err != nil {
		return nil, err
	}
	return &a, nil
}

// scanComment scans the current row from pgx.Rows into a Comment.
func scanComment(rows pgx.Rows) (*domain.Comment, error) {
	var c domain.Comment
	if err := rows.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
