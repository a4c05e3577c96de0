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

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListAll returns every project. No session is required.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create publishes a project owned by the session's user. Only
// domain.ProjectPublisherRole may publish.
func (s *ProjectService) Create(ctx context.Context, session *domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	if session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !session.HasRole(domain.ProjectPublisherRole) {
		return nil, domain.ErrForbiddenRole
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	project := &domain.Project{
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		OwnerUsername: session.Username,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("owner", session.Username).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	metrics.ProjectsCreatedTotal.Inc()
	s.logger.Info().Str("project_id", project.ID).Str("owner", session.Username).Msg("project published")
	return project, nil
}
