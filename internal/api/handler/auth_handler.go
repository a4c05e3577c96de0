package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      middleware.SessionCookie
}

func NewAuthHandler(authService ports.AuthService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, "register", "Register", nil)
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return redirectWithFlash(c, "/register", "Invalid registration form.")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithFlash(c, "/register", err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
		Skills:   form.Skills,
	})
	switch {
	case err == nil:
		return redirectWithFlash(c, "/login", "Registration successful! Please log in.")
	case errors.Is(err, domain.ErrUserExists):
		return redirectWithFlash(c, "/register", "User already exists!")
	case errors.Is(err, domain.ErrInvalidRole):
		return redirectWithFlash(c, "/register", "Choose either client or freelancer.")
	case errors.Is(err, domain.ErrPasswordTooLong):
		return redirectWithFlash(c, "/register", "Password is too long.")
	case errors.Is(err, domain.ErrInvalidInput):
		return redirectWithFlash(c, "/register", "Username and password are required.")
	default:
		return err
	}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, "login", "Log in", nil)
}

// Login handles POST /login and sets the session cookie on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return redirectWithFlash(c, "/login", "Invalid login form.")
	}

	token, session, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return redirectWithFlash(c, "/login", "Invalid username or password!")
		}
		return err
	}

	h.cookie.Write(c, token, session.ExpiresAt)
	return redirectWithFlash(c, "/", "")
}

// Logout handles GET /logout. It clears the session whether or not one exists.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context(), middleware.CurrentSession(c))
	h.cookie.Clear(c)
	return redirectWithFlash(c, "/", "You have been logged out.")
}
