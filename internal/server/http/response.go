package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/newsfold/news-service/internal/domain"
)

// Error wording fixed by the public API contract.
const (
	msgBadRequest    = "Bad Request"
	msgPathNotFound  = "Path Not Found"
	msgInternalError = "Internal Server Error"
)

// PostgreSQL error classes treated as malformed client input: invalid text
// representation and numeric overflow. These reach the store only when a
// client value slips past handler validation (e.g. a huge id that fits an
// int but overflows the column), so they map to 400, never 500.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNumericOutOfRange         = "22003"
)

// Response types for JSON serialization. The article has three shapes: the
// listing summary omits the body, the detail view carries body and
// comment_count, and the vote-update view carries the body but no count
// (vote updates are a single round trip and never touch the comments table).

type topicResponse struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type userResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type commentResponse struct {
	CommentID int       `json:"comment_id"`
	ArticleID int       `json:"article_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

type articleSummaryResponse struct {
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	ArticleID    int       `json:"article_id"`
	Topic        string    `json:"topic"`
	CreatedAt    time.Time `json:"created_at"`
	Votes        int       `json:"votes"`
	CommentCount int       `json:"comment_count"`
}

type articleDetailResponse struct {
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	ArticleID    int       `json:"article_id"`
	Body         string    `json:"body"`
	Topic        string    `json:"topic"`
	CreatedAt    time.Time `json:"created_at"`
	Votes        int       `json:"votes"`
	CommentCount int       `json:"comment_count"`
}

type articleVotedResponse struct {
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	ArticleID int       `json:"article_id"`
	Body      string    `json:"body"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int       `json:"votes"`
}

type listArticlesResponse struct {
	Articles   []articleSummaryResponse `json:"articles"`
	TotalCount int64                    `json:"total_count"`
}

// Converter functions

func domainTopicToResponse(t *domain.Topic) topicResponse {
	return topicResponse{Slug: t.Slug, Description: t.Description}
}

func domainUserToResponse(u *domain.User) userResponse {
	return userResponse{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}

func domainCommentToResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		CommentID: c.CommentID,
		ArticleID: c.ArticleID,
		Author:    c.Author,
		Body:      c.Body,
		Votes:     c.Votes,
		CreatedAt: c.CreatedAt,
	}
}

func domainArticleToSummary(a *domain.Article) articleSummaryResponse {
	return articleSummaryResponse{
		Author:       a.Author,
		Title:        a.Title,
		ArticleID:    a.ArticleID,
		Topic:        a.Topic,
		CreatedAt:    a.CreatedAt,
		Votes:        a.Votes,
		CommentCount: a.CommentCount,
	}
}

func domainArticleToDetail(a *domain.Article) articleDetailResponse {
	return articleDetailResponse{
		Author:       a.Author,
		Title:        a.Title,
		ArticleID:    a.ArticleID,
		Body:         a.Body,
		Topic:        a.Topic,
		CreatedAt:    a.CreatedAt,
		Votes:        a.Votes,
		CommentCount: a.CommentCount,
	}
}

func domainArticleToVoted(a *domain.Article) articleVotedResponse {
	return articleVotedResponse{
		Author:    a.Author,
		Title:     a.Title,
		ArticleID: a.ArticleID,
		Body:      a.Body,
		Topic:     a.Topic,
		CreatedAt: a.CreatedAt,
		Votes:     a.Votes,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response in the {msg} envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"msg": message})
}

// writeDomainError is the single error-mapping stage applied uniformly to
// every handler. Not-found errors carry their own client-facing wording;
// every invalid-input condition collapses to the one generic 400 wording;
// anything unclassified is logged and surfaces as a generic 500.
func writeDomainError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if err == nil {
		return
	}

	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		writeError(w, http.StatusNotFound, nfe.Message)
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation, pgNumericOutOfRange:
			writeError(w, http.StatusBadRequest, msgBadRequest)
			return
		}
	}

	logger.Error().Err(err).Msg("unhandled error in request")
	writeError(w, http.StatusInternalServerError, msgInternalError)
}
