package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUpstream           = errors.New("upstream failure")
)
