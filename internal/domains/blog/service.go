package blog

import (
	"context"

	"github.com/google/uuid"

	"cms-backend/internal/shared/authz"
)

// Service is the blog business-logic contract: lifecycle, interactions and
// the visibility projection.
type Service interface {
	// Lifecycle
	Create(ctx context.Context, actor authz.Actor, req CreateBlogRequest) (*BlogResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor authz.Actor, req UpdateBlogRequest) (*BlogResponse, error)
	Archive(ctx context.Context, id uuid.UUID, actor authz.Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor authz.Actor) error

	// Reads (projected; deleted blogs render as not found)
	GetByID(ctx context.Context, id uuid.UUID) (*BlogResponse, error)
	List(ctx context.Context, filter Filter) ([]BlogResponse, error)

	// AdminListAll returns raw entities for moderation: deleted rows
	// included, no anonymity redaction.
	AdminListAll(ctx context.Context) ([]Blog, error)

	// Interactions
	Like(ctx context.Context, id uuid.UUID, actor authz.Actor) error
	Unlike(ctx context.Context, id uuid.UUID, actor authz.Actor) error
	AddComment(ctx context.Context, id uuid.UUID, actor authz.Actor, req CommentRequest) (*CommentResponse, error)
	DeleteComment(ctx context.Context, id, commentID uuid.UUID, actor authz.Actor) error
}
