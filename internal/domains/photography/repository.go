package photography

import (
	"context"

	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// Filter narrows the active listing. Zero values mean "don't filter".
type Filter struct {
	OwnerID  *uuid.UUID
	Category string
	Tag      string
}

// Repository is the photography store contract. Deleted rows look absent to
// everything except FindByIDAnyStatus and ListAll.
type Repository interface {
	Create(ctx context.Context, p *Photography) error

	// FindByID returns ErrPhotographyNotFound when absent or deleted.
	FindByID(ctx context.Context, id uuid.UUID) (*Photography, error)

	// FindByIDAnyStatus ignores the deleted filter; status changes go
	// through here.
	FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*Photography, error)

	// List returns active collections matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Photography, error)

	// ListAll returns every collection regardless of status, newest first.
	ListAll(ctx context.Context) ([]Photography, error)

	// Update persists the editable fields. Returns ErrPhotographyNotFound
	// when absent or deleted. The owner reference is never written.
	Update(ctx context.Context, p *Photography) error

	// UpdateStatus sets the lifecycle status, reaching deleted rows too.
	UpdateStatus(ctx context.Context, id uuid.UUID, status content.Status) error
}
