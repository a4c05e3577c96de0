package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// ReviewRepository defines persistence for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	// ListByTarget returns the reviews left on target, newest first.
	ListByTarget(ctx context.Context, target string) ([]domain.Review, error)
}
