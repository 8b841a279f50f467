// Package authz holds the authorization predicates shared by the content
// domains. Editing, moderation and comment removal are deliberately three
// separate rules; do not unify them.
package authz

import "github.com/google/uuid"

// Role enum
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated identity a request acts as. It is resolved at
// the transport boundary; the predicates below only ever read it.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanEdit allows content edits. Owner only — admins get no override here,
// unlike CanModerate. Edits change what an author said; moderation only
// changes whether it is shown.
func CanEdit(actor Actor, ownerID uuid.UUID) bool {
	return actor.ID == ownerID
}

// CanModerate allows archive and soft delete: the owner or an admin.
func CanModerate(actor Actor, ownerID uuid.UUID) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}

// CanDeleteComment allows removing a comment: its author, the owner of the
// parent entity, or an admin.
func CanDeleteComment(actor Actor, commentAuthorID, entityOwnerID uuid.UUID) bool {
	return actor.ID == commentAuthorID || actor.ID == entityOwnerID || actor.IsAdmin()
}

// CanCreate gates content creation. Both blogs and photography collections
// are created through admin-only mounts.
func CanCreate(role Role) bool {
	return role == RoleAdmin
}
