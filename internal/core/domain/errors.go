package domain

import "errors"

var (
	// ErrUnknownEmotion signals a label outside the closed emotion set.
	ErrUnknownEmotion = errors.New("domain: unknown emotion")

	// ErrInvalidArgument signals a malformed request such as a
	// non-positive result count.
	ErrInvalidArgument = errors.New("domain: invalid argument")

	// ErrInsufficientData signals that the catalog cannot support the
	// request, e.g. fewer distinct tracks than requested clusters.
	ErrInsufficientData = errors.New("domain: insufficient data")

	// ErrTrackNotFound signals a similarity query for an id that is not
	// in the catalog.
	ErrTrackNotFound = errors.New("domain: track not found")

	// ErrNotFound signals a missing record in a repository.
	ErrNotFound = errors.New("domain: not found")
)
