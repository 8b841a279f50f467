package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cms-backend/internal/domains/photography"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/content"
)

type photographyService struct {
	repo photography.Repository
}

// NewPhotographyService creates the photography service.
func NewPhotographyService(repo photography.Repository) photography.Service {
	return &photographyService{repo: repo}
}

func (s *photographyService) Create(ctx context.Context, actor authz.Actor, req photography.CreatePhotographyRequest) (*photography.PhotographyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.ImageURLs) == 0 {
		return nil, photography.ErrImageRequired
	}
	if !authz.CanCreate(actor.Role) {
		return nil, photography.ErrNotAuthorized
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = photography.DefaultCategory
	}

	now := time.Now()
	p := &photography.Photography{
		ID:          uuid.New(),
		CreatedBy:   actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.ImageURLs,
		Category:    category,
		Tags:        splitTags(req.Tags),
		Status:      content.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *photographyService) Update(ctx context.Context, id uuid.UUID, actor authz.Actor, req photography.UpdatePhotographyRequest) (*photography.PhotographyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// owner only, same asymmetry as blogs
	if !authz.CanEdit(actor, p.CreatedBy) {
		return nil, photography.ErrNotAuthorized
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		p.Tags = splitTags(*req.Tags)
	}

	// images are append-only: new URLs extend the sequence
	p.Images = append(p.Images, req.ImageURLs...)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *photographyService) Archive(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.setStatus(ctx, id, actor, content.StatusArchived)
}

func (s *photographyService) Delete(ctx context.Context, id uuid.UUID, actor authz.Actor) error {
	return s.setStatus(ctx, id, actor, content.StatusDeleted)
}

func (s *photographyService) setStatus(ctx context.Context, id uuid.UUID, actor authz.Actor, status content.Status) error {
	p, err := s.repo.FindByIDAnyStatus(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModerate(actor, p.CreatedBy) {
		return photography.ErrNotAuthorized
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *photographyService) GetByID(ctx context.Context, id uuid.UUID) (*photography.PhotographyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *photographyService) List(ctx context.Context, filter photography.Filter) ([]photography.PhotographyResponse, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]photography.PhotographyResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toResponse(&items[i]))
	}

	return responses, nil
}

func (s *photographyService) AdminListAll(ctx context.Context) ([]photography.Photography, error) {
	return s.repo.ListAll(ctx)
}

func toResponse(p *photography.Photography) photography.PhotographyResponse {
	return photography.PhotographyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		User:        p.CreatedBy,
		Images:      p.Images,
		Category:    p.Category,
		Tags:        p.Tags,
		Status:      p.Status,
		Date:        p.CreatedAt,
	}
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
