package user

import (
	"time"

	"github.com/google/uuid"

	"cms-backend/internal/shared/authz"
)

// User is the identity record. Users are never hard-deleted; content they
// own keeps referencing them for authorization even when a projection hides
// the identity.
type User struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`

	// Avatar is a URL, derived from the email at registration.
	Avatar string `db:"avatar" json:"avatar"`

	// Never expose in JSON
	PasswordHash string `db:"password_hash" json:"-"`

	Role authz.Role `db:"role" json:"role"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BasicInfo is the display subset other domains join against at read time
// (likes and comments show the referenced user's current name/avatar).
type BasicInfo struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// Basic returns the display subset of the user.
func (u *User) Basic() BasicInfo {
	return BasicInfo{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// ToDTO strips credentials before the record leaves the service layer.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
