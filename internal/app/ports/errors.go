package ports

import "errors"

// Repositories return these sentinels. ErrConflict covers both a stale
// expected version and a duplicate key.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidToken = errors.New("invalid token")
)
