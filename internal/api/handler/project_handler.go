package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

// ProjectHandler serves the project board.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectsPage struct {
	Projects []domain.Project
}

// Index handles GET /.
func (h *ProjectHandler) Index(c echo.Context) error {
	projects, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, "index", "Home", projectsPage{Projects: projects})
}

// List handles GET /projects.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, "projects", "Projects", projectsPage{Projects: projects})
}

// NewForm handles GET /add_project.
func (h *ProjectHandler) NewForm(c echo.Context) error {
	return render(c, "add_project", "Publish a project", nil)
}

// Create handles POST /add_project.
func (h *ProjectHandler) Create(c echo.Context) error {
	var form projectForm
	if err := c.Bind(&form); err != nil {
		return redirectWithFlash(c, "/add_project", "Invalid project form.")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithFlash(c, "/add_project", err.Error())
	}

	_, err := h.service.Create(c.Request().Context(), middleware.CurrentSession(c), ports.CreateProjectInput{
		Title:       form.Title,
		Description: form.Description,
	})
	switch {
	case err == nil:
		return redirectWithFlash(c, "/", "Project published!")
	case errors.Is(err, domain.ErrNotAuthenticated):
		return redirectWithFlash(c, middleware.LoginPath, "Please log in first!")
	case errors.Is(err, domain.ErrForbiddenRole):
		return redirectWithFlash(c, "/", "Only freelancers can publish projects.")
	case errors.Is(err, domain.ErrInvalidInput):
		return redirectWithFlash(c, "/add_project", "title is required")
	default:
		return err
	}
}
