package repository

import (
	"context"

	"github.com/newsfold/news-service/internal/domain"
)

// TopicRepository manages the topic taxonomy.
type TopicRepository interface {
	// List returns every topic.
	List(ctx context.Context) ([]*domain.Topic, error)

	// Insert creates a topic. A duplicate slug is an input error, not a
	// server fault.
	Insert(ctx context.Context, in domain.NewTopic) (*domain.Topic, error)
}
