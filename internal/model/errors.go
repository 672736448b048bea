package model

import "errors"

// Common errors used across the application
var (
	// Catalog errors
	ErrGameNotFound = errors.New("game not found")

	// Session errors
	ErrNoActiveUser = errors.New("no user is logged in")

	// Play errors
	ErrNoActiveGame      = errors.New("no game in progress")
	ErrUnsupportedAction = errors.New("action not supported by this game")
	ErrInvalidScore      = errors.New("score and duration must be non-negative")
)
