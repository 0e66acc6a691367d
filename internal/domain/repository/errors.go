package repository

import "errors"

// Store-level sentinel errors. The application layer translates these into
// caller-facing conditions; handlers never see them directly.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
