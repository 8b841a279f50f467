package blog

import (
	"time"

	"github.com/google/uuid"

	"cms-backend/internal/shared/content"
)

// Section enum. Blogs are grouped into editorial sections; listing can
// filter by one.
type Section string

const (
	SectionBlog        Section = "blog"
	SectionResearch    Section = "research"
	SectionPublication Section = "publication"
	SectionEvent       Section = "event"
)

// IsValid reports whether the section is one of the known sections.
func (s Section) IsValid() bool {
	switch s {
	case SectionBlog, SectionResearch, SectionPublication, SectionEvent:
		return true
	}
	return false
}

func (s Section) String() string {
	return string(s)
}

// Like is one entry in a blog's likes sequence. Only the user reference is
// stored; name and avatar are joined in at read time so the display always
// reflects the user's current profile.
type Like struct {
	UserID uuid.UUID `json:"user_id"`
}

// Comment is one entry in a blog's comments sequence. Name and avatar are
// snapshotted from the author at write time and withheld entirely when the
// comment is anonymous. Each comment carries its own anonymity flag,
// independent of the parent blog's.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Text        string    `json:"text"`
	Name        *string   `json:"name"`
	Avatar      *string   `json:"avatar"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// Blog is the stored entity. Likes and comments are embedded on the row and
// persisted with it, so a row save is the atomicity boundary for every
// interaction. UserID is set at creation and never changes; it stays on the
// row for authorization even when anonymity hides it from projections.
type Blog struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`

	Title   string  `db:"title" json:"title"`
	Content string  `db:"content" json:"content"`
	Image   *string `db:"image" json:"image"`

	// Display snapshots of the owner. Cleared while IsAnonymous is true,
	// re-snapshotted from the current owner record when it flips back.
	IsAnonymous bool    `db:"is_anonymous" json:"is_anonymous"`
	Name        *string `db:"name" json:"name"`
	Avatar      *string `db:"avatar" json:"avatar"`

	Tags    []string       `db:"tags" json:"tags"`
	Section Section        `db:"section" json:"section"`
	Status  content.Status `db:"status" json:"status"`

	Likes    []Like    `db:"likes" json:"likes"`
	Comments []Comment `db:"comments" json:"comments"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasLikeFrom reports whether the user already appears in the likes
// sequence.
func (b *Blog) HasLikeFrom(userID uuid.UUID) bool {
	for _, l := range b.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (b *Blog) FindComment(commentID uuid.UUID) *Comment {
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i]
		}
	}
	return nil
}
