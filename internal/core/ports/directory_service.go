package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// DirectoryService looks users up and searches freelancers.
type DirectoryService interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, query string) ([]domain.User, error)
}
