package httpserver

import (
	"net/http"

	"github.com/newsfold/news-service/internal/domain"
)

// createTopicRequest is the JSON request body for creating a topic.
type createTopicRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// listTopics handles GET /api/topics.
func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topicRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	responses := make([]topicResponse, len(topics))
	for i, t := range topics {
		responses[i] = domainTopicToResponse(t)
	}

	writeJSON(w, http.StatusOK, map[string][]topicResponse{
		"topics": responses,
	})
}

// createTopic handles POST /api/topics.
func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	topic, err := s.topicRepo.Insert(r.Context(), domain.NewTopic{
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.TopicsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]topicResponse{
		"topic": domainTopicToResponse(topic),
	})
}
