package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsfold/news-service/internal/domain"
)

// updateCommentVotes handles PATCH /api/comments/{commentID}.
func (s *Server) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("comment_id", chi.URLParam(r, "commentID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	var req updateVotesRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	comment, err := s.commentRepo.UpdateVotes(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.VoteUpdates.WithLabelValues("comment").Inc()
	}

	writeJSON(w, http.StatusOK, map[string]commentResponse{
		"comment": domainCommentToResponse(comment),
	})
}

// deleteComment handles DELETE /api/comments/{commentID}.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePositiveInt("comment_id", chi.URLParam(r, "commentID"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if err := s.commentRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.CommentsDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}
