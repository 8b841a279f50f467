package photography

import "errors"

var (
	// ErrPhotographyNotFound covers both "never existed" and
	// "soft-deleted"; callers cannot tell them apart.
	ErrPhotographyNotFound = errors.New("photography not found")

	ErrNotAuthorized = errors.New("not authorized to perform this action")

	ErrImageRequired = errors.New("at least one image is required")
)
