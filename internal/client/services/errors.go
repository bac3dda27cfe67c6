package services

import "errors"

var (
	// ErrEmptyContent is returned when slice content has no visible text.
	ErrEmptyContent = errors.New("content is empty")
	// ErrNotAuthenticated is returned by data operations when no session
	// token is held. Nothing is sent and no state changes.
	ErrNotAuthenticated = errors.New("not authenticated")
)
