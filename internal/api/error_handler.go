package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/api/flash"
	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/api/view"
	"github.com/freelancehub/marketplace/internal/core/domain"
)

type errorPage struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - turns domain errors that escaped a handler into a flash and a redirect,
//   - renders echo's own errors (404, 405, bind failures) as an error page,
//   - logs anything else and renders a generic 500 page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if to, msg, ok := redirectFor(err); ok {
			flash.Add(c, msg)
			_ = c.Redirect(http.StatusFound, to)
			return
		}

		code, msg := resolveError(err, log, c)
		renderError(c, code, msg)
	}
}

// redirectFor maps the domain errors users can recover from.
func redirectFor(err error) (string, string, bool) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return middleware.LoginPath, "Please log in first!", true
	case errors.Is(err, domain.ErrForbiddenRole):
		return "/", "You are not allowed to do that.", true
	case errors.Is(err, domain.ErrUserNotFound):
		return "/", "User not found.", true
	}
	return "", "", false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again later."
}

func renderError(c echo.Context, code int, msg string) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	err := c.Render(code, "error", view.Page{
		Title:   http.StatusText(code),
		Session: middleware.CurrentSession(c),
		Data:    errorPage{Code: code, Message: msg},
	})
	if err != nil {
		_ = c.String(code, msg)
	}
}
