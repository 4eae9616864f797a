package models

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrDuplicateUser = errors.New("duplicate user")
	ErrLimitExceeded = errors.New("trusted contact limit exceeded")
	ErrInvalidInput  = errors.New("invalid input")
	ErrRateLimited   = errors.New("rate limited")
	ErrStoreCorrupt  = errors.New("store corrupt")
)
