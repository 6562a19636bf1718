package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsfold/news-service/internal/domain"
	"github.com/newsfold/news-service/internal/repository"
)

// Listing defaults applied when the client omits a parameter. Supplied
// values are validated strictly; only absence falls back.
const (
	defaultSortBy = "created_at"
	defaultOrder  = "desc"
)

// createArticleRequest is the JSON request body for creating an article.
type createArticleRequest struct {
	Author string `json:"author" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Topic  string `json:"topic" validate:"required"`
}

// createCommentRequest is the JSON request body for posting a comment.
type createCommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// updateVotesRequest is the JSON request body for vote-delta updates. The
// delta is a pointer so a missing inc_votes is distinguishable from zero.
type updateVotesRequest struct {
	IncVotes *int `json:"inc_votes" validate:"required"`
}

// listArticles handles GET /api/articles.
// It returns one page of article summaries plus the total matching count.
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := repository.ArticleFilter{
		Topic:  q.Get("topic"),
		SortBy: defaultSortBy,
		Order:  defaultOrder,
		Limit:  repository.DefaultArticleLimit,
		Page:   repository.DefaultArticlePage,
	}

	if v := q.Get("sort_by"); v != "" {
		filter.SortBy = v
	}
	if v := q.Get("order"); v != "" {
		filter.Order = v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := domain.ParsePositiveInt("limit", v)
		if err != nil {
			writeDomainError(w, s.logger, err)
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("p"); v != "" {
		page, err := domain.ParsePositiveInt("p", v)
		if err != nil {
			writeDomainError(w, s.logger, err)
			return
		}
		filter.Page = page
	}

	articles, totalCount, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ArticlesListed.Observe(float64(len(articles)))
	}

	summaries := make([]articleSummaryResponse, len(articles))
	for i, a := range articles {
		summaries[i] = domainArticleToSummary(a)
	}

	writeJSON(w, http.StatusOK, listArticlesResponse{
		Articles:   summaries,
		TotalCount: totalCount,
	})
}

// createArticle handles POST /api/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	article, err := s.articleRepo.Insert(r.Context(), domain.NewArticle{
		Author: req.Author,
		Title:  req.Title,
		Body:   req.Body,
		Topic:  req.Topic,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ArticlesCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]articleDetailResponse{
		"article": domainArticleToDetail(article),
	})
}

// getArticle handles GET /api/articles/{articleID}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	article, err := s.articleRepo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]articleDetailResponse{
		"article": domainArticleToDetail(article),
	})
}

// updateArticleVotes handles PATCH /api/articles/{articleID}.
func (s *Server) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	var req updateVotesRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	article, err := s.articleRepo.UpdateVotes(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.VoteUpdates.WithLabelValues("article").Inc()
	}

	writeJSON(w, http.StatusOK, map[string]articleVotedResponse{
		"article": domainArticleToVoted(article),
	})
}

// deleteArticle handles DELETE /api/articles/{articleID}.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if err := s.articleRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ArticlesDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// listArticleComments handles GET /api/articles/{articleID}/comments.
func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	comments, err := s.articleRepo.ListComments(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	responses := make([]commentResponse, len(comments))
	for i, c := range comments {
		responses[i] = domainCommentToResponse(c)
	}

	writeJSON(w, http.StatusOK, map[string][]commentResponse{
		"comments": responses,
	})
}

// createArticleComment handles POST /api/articles/{articleID}/comments.
func (s *Server) createArticleComment(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	var req createCommentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	comment, err := s.articleRepo.InsertComment(r.Context(), id, domain.NewComment{
		Username: req.Username,
		Body:     req.Body,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.CommentsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]commentResponse{
		"comment": domainCommentToResponse(comment),
	})
}
