package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// CreateProjectInput carries the project form after binding.
type CreateProjectInput struct {
	Title       string
	Description string
}

// ProjectService defines the project board use cases.
type ProjectService interface {
	ListAll(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, session *domain.Session, in CreateProjectInput) (*domain.Project, error)
}
