package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
	"github.com/freelancehub/marketplace/internal/pkg/metrics"
)

// ReviewService implements the append-only review ledger.
type ReviewService struct {
	reviews ports.ReviewRepository
	users   ports.UserRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewReviewService(reviews ports.ReviewRepository, users ports.UserRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		users:   users,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListForUser returns the reviews on target, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, target string) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", target, err)
	}
	return reviews, nil
}

// Add appends a review authored by the session's user. Checks run in order:
// session present, client role, non-blank text, existing target.
func (s *ReviewService) Add(ctx context.Context, session *domain.Session, target, text string) (*domain.Review, error) {
	if session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !session.HasRole(domain.RoleClient) {
		return nil, domain.ErrForbiddenRole
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyReview
	}

	if _, err := s.users.FindByUsername(ctx, target); err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}

	review := &domain.Review{
		TargetUsername: target,
		AuthorUsername: session.Username,
		Text:           text,
		CreatedAt:      s.now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("target", target).Msg("failed to add review")
		return nil, fmt.Errorf("add review: %w", err)
	}

	metrics.ReviewsCreatedTotal.Inc()
	s.logger.Info().
		Str("target", target).
		Str("author", session.Username).
		Msg("review added")
	return review, nil
}
