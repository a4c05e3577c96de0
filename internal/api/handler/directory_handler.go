package handler

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

// DirectoryHandler serves search and profile pages, including reviews.
type DirectoryHandler struct {
	directory ports.DirectoryService
	reviews   ports.ReviewService
}

func NewDirectoryHandler(directory ports.DirectoryService, reviews ports.ReviewService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, reviews: reviews}
}

type searchPage struct {
	Query   string
	Results []domain.User
}

type profilePage struct {
	User      *domain.User
	Reviews   []domain.Review
	CanReview bool
}

// Search handles GET and POST /search. The query comes from the query string
// or the form body.
func (h *DirectoryHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.FormValue("query"))

	results, err := h.directory.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return render(c, "search", "Find freelancers", searchPage{Query: query, Results: results})
}

// Profile handles GET /user/:username.
func (h *DirectoryHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.directory.FindByUsername(ctx, usernameParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return redirectWithFlash(c, "/", "User not found.")
		}
		return err
	}

	reviews, err := h.reviews.ListForUser(ctx, user.Username)
	if err != nil {
		return err
	}

	session := middleware.CurrentSession(c)
	return render(c, "profile", user.Username, profilePage{
		User:      user,
		Reviews:   reviews,
		CanReview: session.HasRole(domain.RoleClient),
	})
}

// AddReview handles POST /user/:username.
func (h *DirectoryHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.directory.FindByUsername(ctx, usernameParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return redirectWithFlash(c, "/", "User not found.")
		}
		return err
	}
	back := profilePath(user.Username)

	var form reviewForm
	if err := c.Bind(&form); err != nil {
		return redirectWithFlash(c, back, "Invalid review form.")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithFlash(c, back, err.Error())
	}

	_, err = h.reviews.Add(ctx, middleware.CurrentSession(c), user.Username, form.Review)
	switch {
	case err == nil:
		return redirectWithFlash(c, back, "Review added.")
	case errors.Is(err, domain.ErrNotAuthenticated):
		return redirectWithFlash(c, middleware.LoginPath, "Log in to leave reviews.")
	case errors.Is(err, domain.ErrForbiddenRole):
		return redirectWithFlash(c, back, "Only clients can leave reviews.")
	case errors.Is(err, domain.ErrEmptyReview):
		return redirectWithFlash(c, back, "")
	case errors.Is(err, domain.ErrUserNotFound):
		return redirectWithFlash(c, "/", "User not found.")
	default:
		return err
	}
}
