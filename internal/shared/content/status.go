// Package content holds the pieces of the entity lifecycle shared by every
// content domain: the status enum and the soft-delete semantics attached to
// it. Deleted rows are never removed; they simply stop being visible to
// non-admin reads.
package content

// Status is the lifecycle state of a content entity.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

// IsValid reports whether the status is one of the known states.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived || s == StatusDeleted
}

func (s Status) String() string {
	return string(s)
}

// AnonymousName is the display literal substituted for a redacted author.
const AnonymousName = "Anonymous"
