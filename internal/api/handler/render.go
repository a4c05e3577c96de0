package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/flash"
	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/api/view"
)

// render draws a page with the pending flash messages and the current session.
func render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, view.Page{
		Title:   title,
		Flashes: flash.Pop(c),
		Session: middleware.CurrentSession(c),
		Data:    data,
	})
}

// redirectWithFlash queues msg (when non-empty) and redirects with 302.
func redirectWithFlash(c echo.Context, to, msg string) error {
	if msg != "" {
		flash.Add(c, msg)
	}
	return c.Redirect(http.StatusFound, to)
}

// usernameParam returns the :username segment decoded. Echo matches on the
// raw path, so an escaped "/" arrives as %2F.
func usernameParam(c echo.Context) string {
	raw := c.Param("username")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func profilePath(username string) string {
	return "/user/" + url.PathEscape(username)
}
