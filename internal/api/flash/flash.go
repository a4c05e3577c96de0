// Package flash carries one-shot notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	cookieName = "flash"
	pendingKey = "flash.pending"
	separator  = "\n"
)

// Add queues msg for the next rendered page.
func Add(c echo.Context, msg string) {
	pending, _ := c.Get(pendingKey).([]string)
	pending = append(pending, msg)
	c.Set(pendingKey, pending)

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    encode(pending),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the notices carried by the request and clears the cookie.
func Pop(c echo.Context) []string {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return decode(cookie.Value)
}

func encode(msgs []string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(msgs, separator)))
}

func decode(v string) []string {
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil || len(raw) == 0 {
		return nil
	}
	return strings.Split(string(raw), separator)
}
