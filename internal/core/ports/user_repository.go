package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts the user and returns it with its store ID set. It does
	// not check for an existing username unless the store enforces it.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// SearchFreelancers returns freelancer-labelled users whose username or
	// skills contain query, case-insensitively.
	SearchFreelancers(ctx context.Context, query string) ([]domain.User, error)
}
