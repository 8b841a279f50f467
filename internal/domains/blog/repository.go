package blog

import (
	"context"

	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// Filter narrows the active listing. Zero values mean "don't filter".
type Filter struct {
	OwnerID *uuid.UUID
	Tag     string
	Section Section
}

// Repository is the blog store contract. Soft-delete visibility is enforced
// here: every non-admin read and every content mutation treats a deleted
// row exactly like an absent one.
type Repository interface {
	// Create inserts a new blog.
	Create(ctx context.Context, b *Blog) error

	// FindByID returns ErrBlogNotFound when the blog is absent or deleted.
	FindByID(ctx context.Context, id uuid.UUID) (*Blog, error)

	// FindByIDAnyStatus ignores the deleted filter. Status changes and
	// admin reads go through here; it still reports ErrBlogNotFound for
	// rows that genuinely do not exist.
	FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*Blog, error)

	// List returns active blogs matching the filter, newest first. Each
	// call re-queries.
	List(ctx context.Context, filter Filter) ([]Blog, error)

	// ListAll returns every blog regardless of status, newest first.
	ListAll(ctx context.Context) ([]Blog, error)

	// Update persists the editable fields (title, content, image,
	// anonymity, snapshots, tags, section). Returns ErrBlogNotFound when
	// the blog is absent or deleted. The owner reference is never written.
	Update(ctx context.Context, b *Blog) error

	// UpdateStatus sets the lifecycle status. Unlike Update it also
	// reaches deleted rows, so repeating a delete is a no-op rather than
	// an error. Returns ErrBlogNotFound only for absent rows.
	UpdateStatus(ctx context.Context, id uuid.UUID, status content.Status) error

	// AddLike prepends {user_id} to the likes sequence in one conditional
	// statement keyed on the user's absence, closing the duplicate-like
	// race. Returns ErrAlreadyLiked when the user is already present and
	// ErrBlogNotFound when the blog is absent or deleted.
	AddLike(ctx context.Context, blogID, userID uuid.UUID) error

	// RemoveLike removes the user's entry, preserving the order of the
	// remainder. Returns ErrNotLiked when absent from the sequence.
	RemoveLike(ctx context.Context, blogID, userID uuid.UUID) error

	// ReplaceComments persists the whole comments sequence in a single row
	// update, keeping the parent save as the atomicity boundary. Returns
	// ErrBlogNotFound when the blog is absent or deleted.
	ReplaceComments(ctx context.Context, blogID uuid.UUID, comments []Comment) error
}
