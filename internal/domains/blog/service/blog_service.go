package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cms-backend/internal/domains/blog"
	"cms-backend/internal/domains/user"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/content"
)

type blogService struct {
	repo     blog.Repository
	userRepo user.Repository
}

// NewBlogService creates the blog service. The user repository serves two
// jobs: snapshotting the owner's display profile at write time, and the
// read-time join that resolves like entries to current name/avatar.
func NewBlogService(repo blog.Repository, userRepo user.Repository) blog.Service {
	return &blogService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// ========================================
// LIFECYCLE
// ========================================

func (s *blogService) Create(ctx context.Context, actor authz.Actor, req blog.CreateBlogRequest) (*blog.BlogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !authz.CanCreate(actor.Role) {
		return nil, blog.ErrNotAuthorized
	}

	section := blog.Section(req.Section)
	if req.Section == "" {
		section = blog.SectionBlog
	}

	now := time.Now()
	b := &blog.Blog{
		ID:          uuid.New(),
		UserID:      actor.ID,
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.ImageURL,
		IsAnonymous: req.IsAnonymous,
		Tags:        blog.SplitTags(req.Tags),
		Section:     section,
		Status:      content.StatusActive,
		Likes:       []blog.Like{},
		Comments:    []blog.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !req.IsAnonymous {
		if err := s.snapshotOwner(ctx, b); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	resp := s.toResponse(b, nil)
	return &resp, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, actor authz.Actor, req blog.UpdateBlogRequest) (*blog.BlogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// owner only; moderation rights do not extend to content edits
	if !authz.CanEdit(actor, b.UserID) {
		return nil, blog.ErrNotAuthorized
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.ImageURL != nil {
		b.Image = req.ImageURL
	}
	if req.Tags != nil {
		b.Tags = blog.SplitTags(*req.Tags)
	}
	if req.Section != nil && *req.Section != "" {
		b.Section = blog.Section(*req.Section)
	}

	if req.IsAnonymous != nil {
		b.IsAnonymous = *req.IsAnonymous
		if b.IsAnonymous {
			// withhold the display snapshot entirely
			b.Name = nil
			b.Avatar = nil
		} else {
			// re-snapshot from the current owner record, never a
			// stale copy
			if err := s.snapshotOwner(ctx, b); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return s.project(ctx, b)
}

func (s *blogService) Archive(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.setStatus(ctx, id, actor, content.StatusArchived)
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.setStatus(ctx, id, actor, content.StatusDeleted)
}

// setStatus is the one mutation allowed to reach an already-deleted row, so
// repeating a moderation action stays idempotent.
func (s *blogService) setStatus(ctx context.Context, id uuid.UUID, actor authz.Actor, status content.Status) error {
	b, err := s.repo.FindByIDAnyStatus(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModerate(actor, b.UserID) {
		return blog.ErrNotAuthorized
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// ========================================
// READS
// ========================================

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*blog.BlogResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.project(ctx, b)
}

func (s *blogService) List(ctx context.Context, filter blog.Filter) ([]blog.BlogResponse, error) {
	blogs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	basics, err := s.resolveLikers(ctx, blogs)
	if err != nil {
		return nil, err
	}

	responses := make([]blog.BlogResponse, 0, len(blogs))
	for i := range blogs {
		responses = append(responses, s.toResponse(&blogs[i], basics))
	}

	return responses, nil
}

func (s *blogService) AdminListAll(ctx context.Context) ([]blog.Blog, error) {
	// moderation view: raw rows, deleted included, nothing redacted
	return s.repo.ListAll(ctx)
}

// ========================================
// INTERACTIONS
// ========================================

func (s *blogService) Like(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.repo.AddLike(ctx, id, actor.ID)
}

func (s *blogService) Unlike(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.repo.RemoveLike(ctx, id, actor.ID)
}

func (s *blogService) AddComment(ctx context.Context, id uuid.UUID, actor authz.Actor, req blog.CommentRequest) (*blog.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := blog.Comment{
		ID:          uuid.New(),
		UserID:      actor.ID,
		Text:        req.Text,
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   time.Now(),
	}

	if !req.IsAnonymous {
		author, err := s.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve comment author: %w", err)
		}
		c.Name = &author.Name
		c.Avatar = &author.Avatar
	}

	// prepend: newest first
	comments := append([]blog.Comment{c}, b.Comments...)
	if err := s.repo.ReplaceComments(ctx, id, comments); err != nil {
		return nil, err
	}

	resp := projectComment(c)
	return &resp, nil
}

func (s *blogService) DeleteComment(ctx context.Context, id, commentID uuid.UUID, actor authz.Actor) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	target := b.FindComment(commentID)
	if target == nil {
		return blog.ErrCommentNotFound
	}

	// three-way rule: comment author, blog owner, or admin
	if !authz.CanDeleteComment(actor, target.UserID, b.UserID) {
		return blog.ErrNotAuthorized
	}

	comments := make([]blog.Comment, 0, len(b.Comments)-1)
	for _, c := range b.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}

	return s.repo.ReplaceComments(ctx, id, comments)
}

// ========================================
// PROJECTION
// ========================================

// project renders a single blog, resolving its likers first.
func (s *blogService) project(ctx context.Context, b *blog.Blog) (*blog.BlogResponse, error) {
	basics, err := s.resolveLikers(ctx, []blog.Blog{*b})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(b, basics)
	return &resp, nil
}

// resolveLikers batch-fetches the current display profile of every user
// appearing in the given blogs' like sequences.
func (s *blogService) resolveLikers(ctx context.Context, blogs []blog.Blog) (map[uuid.UUID]user.BasicInfo, error) {
	var ids []uuid.UUID
	for i := range blogs {
		for _, l := range blogs[i].Likes {
			ids = append(ids, l.UserID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	basics, err := s.userRepo.BasicInfoByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve likers: %w", err)
	}
	return basics, nil
}

// toResponse applies the anonymity redaction and the like join. The stored
// owner reference never leaves the service while the blog is anonymous.
func (s *blogService) toResponse(b *blog.Blog, basics map[uuid.UUID]user.BasicInfo) blog.BlogResponse {
	resp := blog.BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		Image:       b.Image,
		Tags:        b.Tags,
		Section:     b.Section,
		Status:      b.Status,
		IsAnonymous: b.IsAnonymous,
		Date:        b.CreatedAt,
	}

	if b.IsAnonymous {
		anon := content.AnonymousName
		resp.Name = &anon
	} else {
		owner := b.UserID
		resp.User = &owner
		resp.Name = b.Name
		resp.Avatar = b.Avatar
	}

	resp.Likes = make([]blog.LikeResponse, 0, len(b.Likes))
	for _, l := range b.Likes {
		like := blog.LikeResponse{UserID: l.UserID}
		if info, ok := basics[l.UserID]; ok {
			like.Name = info.Name
			like.Avatar = info.Avatar
		}
		resp.Likes = append(resp.Likes, like)
	}

	resp.Comments = make([]blog.CommentResponse, 0, len(b.Comments))
	for _, c := range b.Comments {
		resp.Comments = append(resp.Comments, projectComment(c))
	}

	return resp
}

// projectComment redacts a single comment per its own anonymity flag,
// independent of the parent blog's.
func projectComment(c blog.Comment) blog.CommentResponse {
	resp := blog.CommentResponse{
		ID:          c.ID,
		Text:        c.Text,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   c.CreatedAt,
	}

	if c.IsAnonymous {
		anon := content.AnonymousName
		resp.Name = &anon
	} else {
		author := c.UserID
		resp.UserID = &author
		resp.Name = c.Name
		resp.Avatar = c.Avatar
	}

	return resp
}

// snapshotOwner copies the owner's current name/avatar onto the blog's
// display fields.
func (s *blogService) snapshotOwner(ctx context.Context, b *blog.Blog) error {
	owner, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("resolve blog owner: %w", err)
	}
	b.Name = &owner.Name
	b.Avatar = &owner.Avatar
	return nil
}
