package model

import "errors"

// Sentinel error kinds for the engine boundary. These allow errors.Is/As
// from callers.
var (
	// ErrInvalidSnapshot marks a participant snapshot with out-of-range or
	// malformed fields. Fatal to the match run; never silently clamped.
	ErrInvalidSnapshot = errors.New("invalid participant snapshot")

	// ErrEmptyContext marks a zero-duration or malformed match context.
	ErrEmptyContext = errors.New("empty match context")

	// ErrInvariant marks an internal invariant violation (negative minute,
	// non-monotonic event ordering). Indicates an implementation bug.
	ErrInvariant = errors.New("internal invariant violated")
)
