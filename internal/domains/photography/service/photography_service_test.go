package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/domains/photography"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/content"
)

type fakeRepo struct {
	items map[uuid.UUID]*photography.Photography
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*photography.Photography)}
}

func (r *fakeRepo) Create(_ context.Context, p *photography.Photography) error {
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*photography.Photography, error) {
	p, ok := r.items[id]
	if !ok || p.Status == content.StatusDeleted {
		return nil, photography.ErrPhotographyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) FindByIDAnyStatus(_ context.Context, id uuid.UUID) (*photography.Photography, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, photography.ErrPhotographyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter photography.Filter) ([]photography.Photography, error) {
	var out []photography.Photography
	for _, p := range r.items {
		if p.Status != content.StatusActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]photography.Photography, error) {
	var out []photography.Photography
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, p *photography.Photography) error {
	stored, ok := r.items[p.ID]
	if !ok || stored.Status == content.StatusDeleted {
		return photography.ErrPhotographyNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.Images = p.Images
	stored.Category = p.Category
	stored.Tags = p.Tags
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status content.Status) error {
	p, ok := r.items[id]
	if !ok {
		return photography.ErrPhotographyNotFound
	}
	p.Status = status
	return nil
}

func setup() (photography.Service, *fakeRepo, authz.Actor, authz.Actor) {
	repo := newFakeRepo()
	svc := NewPhotographyService(repo)
	admin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	member := authz.Actor{ID: uuid.New(), Role: authz.RoleMember}
	return svc, repo, admin, member
}

func create(t *testing.T, svc photography.Service, actor authz.Actor) *photography.PhotographyResponse {
	t.Helper()

	resp, err := svc.Create(context.Background(), actor, photography.CreatePhotographyRequest{
		Title:     "Street",
		ImageURLs: []string{"https://img/1.jpg"},
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRequiresImage(t *testing.T) {
	svc, _, admin, _ := setup()

	_, err := svc.Create(context.Background(), admin, photography.CreatePhotographyRequest{Title: "Street"})
	assert.Error(t, err)
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc, _, _, member := setup()

	_, err := svc.Create(context.Background(), member, photography.CreatePhotographyRequest{
		Title:     "Street",
		ImageURLs: []string{"https://img/1.jpg"},
	})
	assert.ErrorIs(t, err, photography.ErrNotAuthorized)
}

func TestCreateDefaultsCategory(t *testing.T) {
	svc, _, admin, _ := setup()

	resp := create(t, svc, admin)
	assert.Equal(t, "general", resp.Category)
	assert.Equal(t, content.StatusActive, resp.Status)
	assert.Equal(t, admin.ID, resp.User)
}

func TestUpdateAppendsImages(t *testing.T) {
	svc, _, admin, _ := setup()
	created := create(t, svc, admin)

	resp, err := svc.Update(context.Background(), created.ID, admin, photography.UpdatePhotographyRequest{
		ImageURLs: []string{"https://img/2.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, resp.Images,
		"existing images are never dropped by an update")
}

func TestUpdateIsOwnerOnly(t *testing.T) {
	svc, _, admin, member := setup()
	created := create(t, svc, admin)

	title := "edited"
	_, err := svc.Update(context.Background(), created.ID, member, photography.UpdatePhotographyRequest{Title: &title})
	assert.ErrorIs(t, err, photography.ErrNotAuthorized)

	otherAdmin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	_, err = svc.Update(context.Background(), created.ID, otherAdmin, photography.UpdatePhotographyRequest{Title: &title})
	assert.ErrorIs(t, err, photography.ErrNotAuthorized)
}

func TestModerationAdmitsAdmin(t *testing.T) {
	svc, _, admin, member := setup()
	created := create(t, svc, admin)

	err := svc.Archive(context.Background(), created.ID, member)
	assert.ErrorIs(t, err, photography.ErrNotAuthorized)

	otherAdmin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	require.NoError(t, svc.Archive(context.Background(), created.ID, otherAdmin))
	require.NoError(t, svc.Delete(context.Background(), created.ID, otherAdmin))
}

func TestDeletedIsInvisibleExceptToAdminListing(t *testing.T) {
	svc, _, admin, _ := setup()
	created := create(t, svc, admin)

	require.NoError(t, svc.Delete(context.Background(), created.ID, admin))

	_, err := svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, photography.ErrPhotographyNotFound)

	list, err := svc.List(context.Background(), photography.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := svc.AdminListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, content.StatusDeleted, all[0].Status)
}

func TestListByCategory(t *testing.T) {
	svc, _, admin, _ := setup()

	_, err := svc.Create(context.Background(), admin, photography.CreatePhotographyRequest{
		Title:     "Street",
		Category:  "street",
		ImageURLs: []string{"https://img/1.jpg"},
	})
	require.NoError(t, err)
	create(t, svc, admin) // general

	list, err := svc.List(context.Background(), photography.Filter{Category: "street"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "street", list[0].Category)
}
