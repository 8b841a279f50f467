package photography

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePhotographyRequest arrives as multipart form data; the handler
// resolves uploaded files into ImageURLs before the service runs.
type CreatePhotographyRequest struct {
	Title       string   `form:"title" json:"title"`
	Description string   `form:"description" json:"description"`
	Category    string   `form:"category" json:"category"`
	Tags        string   `form:"tags" json:"tags"` // comma-separated
	ImageURLs   []string `form:"-" json:"-"`
}

func (r CreatePhotographyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
	)
}

// UpdatePhotographyRequest replaces the editable fields. New image URLs are
// appended to the existing sequence, never substituted for it.
type UpdatePhotographyRequest struct {
	Title       *string  `form:"title" json:"title"`
	Description *string  `form:"description" json:"description"`
	Category    *string  `form:"category" json:"category"`
	Tags        *string  `form:"tags" json:"tags"`
	ImageURLs   []string `form:"-" json:"-"`
}

func (r UpdatePhotographyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 300),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// PhotographyResponse is the projected representation. Photography has no
// anonymity flag, so the owner reference is always present.
type PhotographyResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	User        uuid.UUID      `json:"user"`
	Images      []string       `json:"images"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	Status      content.Status `json:"status"`
	Date        time.Time      `json:"date"`
}
