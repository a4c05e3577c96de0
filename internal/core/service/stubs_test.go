package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// stubUserRepo keeps users in insertion order and, like the Mongo collection
// without a unique index, accepts duplicate usernames.
type stubUserRepo struct {
	mu      sync.Mutex
	users   []*domain.User
	findErr error
	// afterFind, when set, runs after every lookup has been resolved.
	afterFind func()
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	return &stubUserRepo{users: users}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	var found *domain.User
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			found = &clone
			break
		}
	}
	findErr := r.findErr
	r.mu.Unlock()

	if r.afterFind != nil {
		r.afterFind()
	}
	if findErr != nil {
		return nil, findErr
	}
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	clone.ID = user.Username + "-" + string(rune('a'+len(r.users)))
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) SearchFreelancers(_ context.Context, query string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleFreelancer {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Skills), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) countByUsername(username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Username == username {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	projects  []domain.Project
	createErr error
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = "p" + string(rune('0'+len(r.projects)))
	r.projects = append(r.projects, *p)
	return nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

type stubReviewRepo struct {
	reviews []domain.Review
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	rv.ID = "r" + string(rune('0'+len(r.reviews)))
	r.reviews = append(r.reviews, *rv)
	return nil
}

// ListByTarget mirrors the Mongo sort on created_at descending.
func (r *stubReviewRepo) ListByTarget(_ context.Context, target string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.TargetUsername == target {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Session revocation
// ---------------------------------------------------------------------------

type stubRevoker struct {
	revoked   map[string]time.Duration
	revokeErr error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if r.revokeErr != nil {
		return r.revokeErr
	}
	r.revoked[id] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(step)
		return t
	}
}
