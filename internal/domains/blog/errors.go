package blog

import "errors"

// Domain errors. Handlers map these to HTTP status codes; everything else
// is treated as a storage failure.
var (
	// ErrBlogNotFound covers both "never existed" and "soft-deleted". The
	// two must be indistinguishable to non-admin callers.
	ErrBlogNotFound = errors.New("blog not found")

	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthorized means an authorization predicate said no.
	ErrNotAuthorized = errors.New("not authorized to perform this action")

	// Like state-machine preconditions. Rejected, not fatal.
	ErrAlreadyLiked = errors.New("blog already liked")
	ErrNotLiked     = errors.New("blog not liked")

	ErrInvalidSection = errors.New("invalid section")
)
