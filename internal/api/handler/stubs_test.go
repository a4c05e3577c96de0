package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/view"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Session, error)
	loggedOut  []*domain.Session
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ParseSession(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionInvalid
}

func (s *stubAuthService) Logout(_ context.Context, session *domain.Session) {
	s.loggedOut = append(s.loggedOut, session)
}

type stubDirectory struct {
	users map[string]*domain.User
	found []domain.User
	query string
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (d *stubDirectory) Search(_ context.Context, query string) ([]domain.User, error) {
	d.query = query
	return d.found, nil
}

type stubReviews struct {
	listed []domain.Review
	addErr error
	added  []string
}

func (r *stubReviews) ListForUser(context.Context, string) ([]domain.Review, error) {
	return r.listed, nil
}

func (r *stubReviews) Add(_ context.Context, _ *domain.Session, target, text string) (*domain.Review, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.added = append(r.added, target+":"+text)
	return &domain.Review{TargetUsername: target, Text: text}, nil
}

type stubProjects struct {
	projects  []domain.Project
	createErr error
	created   []ports.CreateProjectInput
}

func (p *stubProjects) ListAll(context.Context) ([]domain.Project, error) {
	return p.projects, nil
}

func (p *stubProjects) Create(_ context.Context, _ *domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created = append(p.created, in)
	return &domain.Project{Title: in.Title}, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func hasFlash(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			return true
		}
	}
	return false
}
