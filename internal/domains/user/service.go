package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the identity business-logic contract.
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// Admin
	ListUsers(ctx context.Context) ([]UserDTO, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, req UpdateRoleRequest) error
}
