package user

import (
	"context"

	"github.com/google/uuid"

	"cms-backend/internal/shared/authz"
)

// Repository is the identity store contract.
type Repository interface {
	// Create inserts a new user.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail is the login lookup. Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns all users, newest first. Admin listing only.
	List(ctx context.Context) ([]User, error)

	// UpdateRole changes a user's role (admin action, out-of-band from the
	// content core; there is no self-promotion path).
	UpdateRole(ctx context.Context, id uuid.UUID, role authz.Role) error

	// ExistsByEmail reports whether a registration email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// BasicInfoByIDs batch-resolves display profiles for the read-time join
	// on likes and comments. Unknown ids are simply absent from the map.
	BasicInfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]BasicInfo, error)
}
