package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing access token")
	ErrForbidden          = errors.New("insufficient permissions")
)
