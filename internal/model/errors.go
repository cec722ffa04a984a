package model

import "errors"

var (
	// ErrNoChannel is returned when no tracked channel is configured.
	ErrNoChannel = errors.New("no tracked channel configured")

	// ErrNotAuthorized is returned when an operation needs the delegated
	// user session and it is not signed in.
	ErrNotAuthorized = errors.New("delegated session is not authorized")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
