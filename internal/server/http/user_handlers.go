package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// listUsers handles GET /api/users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	responses := make([]userResponse, len(users))
	for i, u := range users {
		responses[i] = domainUserToResponse(u)
	}

	writeJSON(w, http.StatusOK, map[string][]userResponse{
		"users": responses,
	})
}

// getUser handles GET /api/users/{username}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userRepo.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]userResponse{
		"user": domainUserToResponse(user),
	})
}
