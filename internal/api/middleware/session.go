package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

const sessionKey = "session"

// SessionParser verifies a session token.
type SessionParser interface {
	ParseSession(ctx context.Context, token string) (*domain.Session, error)
}

// SessionCookie describes the cookie carrying the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) name() string {
	if sc.Name == "" {
		return "session"
	}
	return sc.Name
}

// Write stores token in the cookie until expires.
func (sc SessionCookie) Write(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the cookie.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the session cookie into a *domain.Session on the context.
// Requests without a valid session continue anonymously; an invalid cookie
// is cleared.
func Session(parser SessionParser, cookie SessionCookie, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookie.name())
			if err != nil || ck.Value == "" {
				return next(c)
			}

			session, err := parser.ParseSession(c.Request().Context(), ck.Value)
			switch {
			case err == nil:
				c.Set(sessionKey, session)
			case errors.Is(err, domain.ErrSessionInvalid):
				cookie.Clear(c)
			default:
				log.Warn().Err(err).Str("path", c.Path()).Msg("session check failed, continuing anonymously")
			}
			return next(c)
		}
	}
}

// CurrentSession returns the request's session, or nil when anonymous.
func CurrentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionKey).(*domain.Session)
	return s
}
