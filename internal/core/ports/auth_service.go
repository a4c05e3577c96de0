package ports

import (
	"context"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// RegisterInput carries the registration form after binding.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Skills   string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns the signed session token and the session it encodes.
	Login(ctx context.Context, username, password string) (string, *domain.Session, error)
	ParseSession(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session)
}
