package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when no valid session is presented.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRateLimited is returned when the login limiter rejects an attempt.
	ErrRateLimited = errors.New("too many attempts, try again later")
)
