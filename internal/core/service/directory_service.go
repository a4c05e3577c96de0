package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
	"github.com/freelancehub/marketplace/internal/pkg/metrics"
)

// DirectoryService implements user lookup and freelancer search.
type DirectoryService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewDirectoryService(users ports.UserRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, log: log}
}

func (s *DirectoryService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByUsername(ctx, username)
}

// Search returns freelancers whose username or skills contain query. An
// empty query matches nothing rather than everyone.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.User{}, nil
	}

	found, err := s.users.SearchFreelancers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	// Guard against stores that ignore the role filter.
	out := make([]domain.User, 0, len(found))
	for _, u := range found {
		if u.IsFreelancer() {
			out = append(out, u)
		}
	}

	metrics.SearchResults.Observe(float64(len(out)))
	s.log.Debug().Str("query", query).Int("results", len(out)).Msg("freelancer search")
	return out, nil
}
