package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbiddenRole      = errors.New("role not allowed")
	ErrEmptyReview        = errors.New("review text is empty")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrMalformedDocument  = errors.New("malformed document")
)
