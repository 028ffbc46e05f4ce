package repository

import "errors"

// Sentinel kinds for rating store errors.
var (
	ErrNotFound      = errors.New("participant not found")
	ErrInvalidLimit  = errors.New("invalid history limit")
	ErrInvalidResult = errors.New("invalid rating result")
)
