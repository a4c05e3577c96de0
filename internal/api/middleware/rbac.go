package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/flash"
	"github.com/freelancehub/marketplace/internal/core/domain"
)

// LoginPath is where anonymous users are sent by RequireSession.
const LoginPath = "/login"

// RequireSession redirects anonymous requests to the login page with message.
func RequireSession(message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) == nil {
				flash.Add(c, message)
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}

// RequireRole redirects to redirectTo with message unless the session holds
// one of the allowed roles. Gates redirect instead of answering 403.
func RequireRole(redirectTo, message string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if s == nil {
				flash.Add(c, message)
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if _, ok := allowed[s.Role]; !ok {
				flash.Add(c, message)
				return c.Redirect(http.StatusFound, redirectTo)
			}
			return next(c)
		}
	}
}
