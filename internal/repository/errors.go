package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when saving a board document that does not exist
	ErrBoardNotFound = errors.New("board not found")

	// ErrEmailTaken is returned when creating a user whose email is already registered
	ErrEmailTaken = errors.New("email already registered")
)
