// Package repository provides data access interfaces and PostgreSQL
// implementations for the news service.
//
// # Overview
//
// The package follows the repository pattern to keep SQL out of the HTTP
// layer. It exposes four repositories:
//
//   - ArticleRepository: article listing/retrieval (the query-builder core),
//     article mutations, and the comment flows scoped to an article
//   - CommentRepository: comment vote updates and deletion
//   - TopicRepository: topic listing and creation
//   - UserRepository: read-only user lookups
//
// # Thread Safety
//
// All implementations are safe for concurrent use; the underlying pgxpool
// handles connection pooling and synchronization. No repository holds
// per-request mutable state.
//
// # Error Handling
//
// Methods return domain errors (domain.ErrNotFound, domain.ErrInvalidInput
// wrappers carrying their client-facing wording) for rejected outcomes, and
// wrap infrastructure errors with fmt.Errorf and %w. Validation always runs
// before the first store access.
//
// # Identifier Interpolation
//
// Sort column and direction for article listing cannot be bound parameters,
// so they are interpolated into the query text. ArticleFilter.orderClause is
// the only code path allowed to do this, and it only ever emits identifiers
// from a fixed whitelist validated beforehand.
package repository

import (
	"github.com/newsfold/news-service/internal/database"
)

// DBTX is the database interface supporting pool, transaction and mock
// contexts. Repositories accept it in their constructors:
//
//	repo := repository.NewPgArticleRepository(db)
type DBTX = database.DBTX

// PostgreSQL error codes classified by the error-mapping stage.
const (
	// pgForeignKeyViolation signals a reference to a missing row (SQLSTATE 23503).
	pgForeignKeyViolation = "23503"
	// pgUniqueViolation signals a duplicate key (SQLSTATE 23505).
	pgUniqueViolation = "23505"
)

// Article listing pagination defaults.
const (
	// DefaultArticleLimit is the page size applied when the client omits limit.
	DefaultArticleLimit = 10
	// DefaultArticlePage is the page applied when the client omits p.
	DefaultArticlePage = 1
)
