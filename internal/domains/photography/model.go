package photography

import (
	"time"

	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// DefaultCategory applies when a collection is created without one.
const DefaultCategory = "general"

// Photography is a stored image collection. Images are append-only: updates
// may add URLs but never silently drop existing ones. CreatedBy is set at
// creation and never changes.
type Photography struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`

	Title       string   `db:"title" json:"title"`
	Description string   `db:"description" json:"description"`
	Images      []string `db:"images" json:"images"`
	Category    string   `db:"category" json:"category"`
	Tags        []string `db:"tags" json:"tags"`

	Status content.Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
