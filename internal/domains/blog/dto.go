package blog

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateBlogRequest arrives as multipart form data; the image file (if any)
// is uploaded by the handler and lands here as a plain URL.
type CreateBlogRequest struct {
	Title       string  `form:"title" json:"title"`
	Content     string  `form:"content" json:"content"`
	Tags        string  `form:"tags" json:"tags"` // comma-separated
	Section     string  `form:"section" json:"section"`
	IsAnonymous bool    `form:"is_anonymous" json:"is_anonymous"`
	ImageURL    *string `form:"-" json:"-"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Section,
			validation.By(validateSection),
		),
	)
}

// UpdateBlogRequest replaces the editable fields. Nil pointers mean "leave
// as is"; tags are replaced wholesale when present.
type UpdateBlogRequest struct {
	Title       *string `form:"title" json:"title"`
	Content     *string `form:"content" json:"content"`
	Tags        *string `form:"tags" json:"tags"`
	Section     *string `form:"section" json:"section"`
	IsAnonymous *bool   `form:"is_anonymous" json:"is_anonymous"`
	ImageURL    *string `form:"-" json:"-"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
		),
		validation.Field(&r.Section,
			validation.By(func(value interface{}) error {
				s, _ := value.(*string)
				if s == nil {
					return nil
				}
				return validateSection(*s)
			}),
		),
	)
}

type CommentRequest struct {
	Text        string `json:"text"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("comment text is required"),
			validation.Length(1, 2000),
		),
	)
}

func validateSection(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // defaults to SectionBlog
	}
	if !Section(s).IsValid() {
		return ErrInvalidSection
	}
	return nil
}

// SplitTags turns the comma-separated form field into a clean slice,
// preserving insertion order and dropping blanks.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ========================================
// RESPONSE DTOs
// ========================================

// LikeResponse carries the current name/avatar of the liking user, joined
// in at read time.
type LikeResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// CommentResponse is a comment after anonymity redaction.
type CommentResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id"`
	Text        string     `json:"text"`
	Name        *string    `json:"name"`
	Avatar      *string    `json:"avatar"`
	IsAnonymous bool       `json:"is_anonymous"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BlogResponse is the projected representation returned to callers. User,
// Name and Avatar are redacted when the blog is anonymous; the stored owner
// reference never leaves the service in that case.
type BlogResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	User        *uuid.UUID        `json:"user"`
	Name        *string           `json:"name"`
	Avatar      *string           `json:"avatar"`
	Image       *string           `json:"image"`
	Tags        []string          `json:"tags"`
	Section     Section           `json:"section"`
	Status      content.Status    `json:"status"`
	IsAnonymous bool              `json:"is_anonymous"`
	Likes       []LikeResponse    `json:"likes"`
	Comments    []CommentResponse `json:"comments"`
	Date        time.Time         `json:"date"`
}
