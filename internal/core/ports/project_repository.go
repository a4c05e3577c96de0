package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	// List returns every project in the store's natural order.
	List(ctx context.Context) ([]domain.Project, error)
}
