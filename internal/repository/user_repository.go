package repository

import (
	"context"

	"github.com/newsfold/news-service/internal/domain"
)

// UserRepository provides read access to the user roster. The service never
// creates or mutates users.
type UserRepository interface {
	// List returns every user.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByUsername returns one user by their username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
