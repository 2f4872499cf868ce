package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	ErrUnknownRole     = errors.New("auth: unknown role")
)
