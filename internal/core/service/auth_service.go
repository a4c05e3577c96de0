package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
	"github.com/freelancehub/marketplace/internal/pkg/metrics"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// AuthService implements registration, login and session handling.
type AuthService struct {
	users      ports.UserRepository
	revoker    ports.SessionRevoker
	secret     []byte
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(users ports.UserRepository, revoker ports.SessionRevoker, secret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		revoker:    revoker,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account. The existence check and the insert are two
// separate store calls; concurrent registrations of one username can both
// pass the check unless the store has a unique index.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	// bcrypt only accepts up to 72 bytes, not characters.
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	_, err = s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	}
	if role == domain.RoleFreelancer {
		user.Skills = strings.TrimSpace(in.Skills)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues(role.String()).Inc()
	s.log.Info().Str("username", username).Str("role", role.String()).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a signed session token. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	token, err := s.signSession(session)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return token, session, nil
}

// ParseSession verifies a session token and checks it was not logged out.
func (s *AuthService) ParseSession(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionInvalid
	}

	id, _ := claims["jti"].(string)
	username, _ := claims["username"].(string)
	rawRole, _ := claims["role"].(string)
	role, err := domain.ParseRole(rawRole)
	if id == "" || username == "" || err != nil {
		return nil, domain.ErrSessionInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrSessionInvalid
	}

	revoked, err := s.revoker.IsRevoked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionInvalid
	}

	return &domain.Session{
		ID:        id,
		Username:  username,
		Role:      role,
		ExpiresAt: exp.Time.UTC(),
	}, nil
}

// Logout revokes the session for the rest of its lifetime. It never fails:
// the caller clears the cookie regardless.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) {
	if session == nil {
		return
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.revoker.Revoke(ctx, session.ID, ttl); err != nil {
		s.log.Warn().Err(err).Str("username", session.Username).Msg("failed to revoke session")
		return
	}
	s.log.Info().Str("username", session.Username).Msg("session revoked")
}

func (s *AuthService) signSession(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"jti":      session.ID,
		"username": session.Username,
		"role":     session.Role.String(),
		"iat":      s.now().Unix(),
		"exp":      session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
