package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// ReviewService defines the review ledger use cases.
type ReviewService interface {
	ListForUser(ctx context.Context, target string) ([]domain.Review, error)
	Add(ctx context.Context, session *domain.Session, target, text string) (*domain.Review, error)
}
