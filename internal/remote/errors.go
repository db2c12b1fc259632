package remote

import "errors"

var (
	// ErrNotAuthenticated means no session could be resolved at write time.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized means the caller asked for rows outside any owner scope.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means an id did not resolve to a row the caller owns.
	ErrNotFound = errors.New("not found")
	// ErrRemoteUnavailable wraps any storage failure; callers surface it and
	// abandon the operation, there is no automatic retry.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)
