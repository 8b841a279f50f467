package photography

import (
	"context"

	"github.com/google/uuid"

	"cms-backend/internal/shared/authz"
)

// Service is the photography business-logic contract.
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreatePhotographyRequest) (*PhotographyResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor authz.Actor, req UpdatePhotographyRequest) (*PhotographyResponse, error)
	Archive(ctx context.Context, id uuid.UUID, actor authz.Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor authz.Actor) error

	GetByID(ctx context.Context, id uuid.UUID) (*PhotographyResponse, error)
	List(ctx context.Context, filter Filter) ([]PhotographyResponse, error)

	// AdminListAll returns raw rows for moderation, deleted included.
	AdminListAll(ctx context.Context) ([]Photography, error)
}
