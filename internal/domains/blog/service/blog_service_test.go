package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/domains/blog"
	"cms-backend/internal/domains/user"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/content"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeBlogRepo struct {
	blogs map[uuid.UUID]*blog.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[uuid.UUID]*blog.Blog)}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *blog.Blog) error {
	clone := *b
	r.blogs[b.ID] = &clone
	return nil
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, ok := r.blogs[id]
	if !ok || b.Status == content.StatusDeleted {
		return nil, blog.ErrBlogNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBlogRepo) FindByIDAnyStatus(_ context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, blog.ErrBlogNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBlogRepo) List(_ context.Context, filter blog.Filter) ([]blog.Blog, error) {
	var out []blog.Blog
	for _, b := range r.blogs {
		if b.Status != content.StatusActive {
			continue
		}
		if filter.OwnerID != nil && b.UserID != *filter.OwnerID {
			continue
		}
		if filter.Section != "" && b.Section != filter.Section {
			continue
		}
		if filter.Tag != "" && !contains(b.Tags, filter.Tag) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBlogRepo) ListAll(_ context.Context) ([]blog.Blog, error) {
	var out []blog.Blog
	for _, b := range r.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(_ context.Context, b *blog.Blog) error {
	stored, ok := r.blogs[b.ID]
	if !ok || stored.Status == content.StatusDeleted {
		return blog.ErrBlogNotFound
	}
	stored.Title = b.Title
	stored.Content = b.Content
	stored.Image = b.Image
	stored.IsAnonymous = b.IsAnonymous
	stored.Name = b.Name
	stored.Avatar = b.Avatar
	stored.Tags = b.Tags
	stored.Section = b.Section
	return nil
}

func (r *fakeBlogRepo) UpdateStatus(_ context.Context, id uuid.UUID, status content.Status) error {
	b, ok := r.blogs[id]
	if !ok {
		return blog.ErrBlogNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBlogRepo) AddLike(_ context.Context, blogID, userID uuid.UUID) error {
	b, ok := r.blogs[blogID]
	if !ok || b.Status == content.StatusDeleted {
		return blog.ErrBlogNotFound
	}
	if b.HasLikeFrom(userID) {
		return blog.ErrAlreadyLiked
	}
	b.Likes = append([]blog.Like{{UserID: userID}}, b.Likes...)
	return nil
}

func (r *fakeBlogRepo) RemoveLike(_ context.Context, blogID, userID uuid.UUID) error {
	b, ok := r.blogs[blogID]
	if !ok || b.Status == content.StatusDeleted {
		return blog.ErrBlogNotFound
	}
	if !b.HasLikeFrom(userID) {
		return blog.ErrNotLiked
	}
	likes := make([]blog.Like, 0, len(b.Likes)-1)
	for _, l := range b.Likes {
		if l.UserID != userID {
			likes = append(likes, l)
		}
	}
	b.Likes = likes
	return nil
}

func (r *fakeBlogRepo) ReplaceComments(_ context.Context, blogID uuid.UUID, comments []blog.Comment) error {
	b, ok := r.blogs[blogID]
	if !ok || b.Status == content.StatusDeleted {
		return blog.ErrBlogNotFound
	}
	b.Comments = append([]blog.Comment{}, comments...)
	return nil
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role authz.Role) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) BasicInfoByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]user.BasicInfo, error) {
	out := make(map[uuid.UUID]user.BasicInfo)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Basic()
		}
	}
	return out, nil
}

// ========================================
// FIXTURES
// ========================================

type fixture struct {
	svc      blog.Service
	blogRepo *fakeBlogRepo
	userRepo *fakeUserRepo
	admin    authz.Actor
	member   authz.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	blogRepo := newFakeBlogRepo()

	adminUser := &user.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Avatar: "https://img/ada", Role: authz.RoleAdmin}
	memberUser := &user.User{ID: uuid.New(), Name: "Mel", Email: "mel@example.com", Avatar: "https://img/mel", Role: authz.RoleMember}
	require.NoError(t, userRepo.Create(context.Background(), adminUser))
	require.NoError(t, userRepo.Create(context.Background(), memberUser))

	return &fixture{
		svc:      NewBlogService(blogRepo, userRepo),
		blogRepo: blogRepo,
		userRepo: userRepo,
		admin:    authz.Actor{ID: adminUser.ID, Role: authz.RoleAdmin},
		member:   authz.Actor{ID: memberUser.ID, Role: authz.RoleMember},
	}
}

func (f *fixture) createBlog(t *testing.T, anonymous bool) *blog.BlogResponse {
	t.Helper()

	resp, err := f.svc.Create(context.Background(), f.admin, blog.CreateBlogRequest{
		Title:       "T",
		Content:     "C",
		Tags:        "go, testing",
		IsAnonymous: anonymous,
	})
	require.NoError(t, err)
	return resp
}

// ========================================
// LIFECYCLE
// ========================================

func TestCreateSnapshotsOwnerProfile(t *testing.T) {
	f := newFixture(t)

	resp := f.createBlog(t, false)

	require.NotNil(t, resp.User)
	assert.Equal(t, f.admin.ID, *resp.User)
	require.NotNil(t, resp.Name)
	assert.Equal(t, "Ada", *resp.Name)
	assert.Equal(t, blog.SectionBlog, resp.Section)
	assert.Equal(t, []string{"go", "testing"}, resp.Tags)
	assert.Equal(t, content.StatusActive, resp.Status)
}

func TestCreateAnonymousHidesOwner(t *testing.T) {
	f := newFixture(t)

	resp := f.createBlog(t, true)

	assert.Nil(t, resp.User)
	require.NotNil(t, resp.Name)
	assert.Equal(t, "Anonymous", *resp.Name)
	assert.Nil(t, resp.Avatar)
}

func TestCreateRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.member, blog.CreateBlogRequest{
		Title:   "T",
		Content: "C",
	})
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.admin, blog.CreateBlogRequest{Content: "C"})
	assert.Error(t, err)

	_, err = f.svc.Create(context.Background(), f.admin, blog.CreateBlogRequest{Title: "T"})
	assert.Error(t, err)
}

func TestUpdateIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	title := "edited"
	_, err := f.svc.Update(context.Background(), created.ID, f.member, blog.UpdateBlogRequest{Title: &title})
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)

	// even another admin gets no override on edits
	otherAdmin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	_, err = f.svc.Update(context.Background(), created.ID, otherAdmin, blog.UpdateBlogRequest{Title: &title})
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)

	resp, err := f.svc.Update(context.Background(), created.ID, f.admin, blog.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Title)
}

func TestSetStatusForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	err := f.svc.Archive(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)

	err = f.svc.Delete(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)
}

func TestDeletedBlogIsInvisible(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID, f.admin))

	_, err := f.svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)

	list, err := f.svc.List(context.Background(), blog.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// every content mutation reports not-found once deleted
	err = f.svc.Like(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)

	title := "edited"
	_, err = f.svc.Update(context.Background(), created.ID, f.admin, blog.UpdateBlogRequest{Title: &title})
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)

	_, err = f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestAdminListingIncludesDeleted(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID, f.admin))

	all, err := f.svc.AdminListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, content.StatusDeleted, all[0].Status)
	// raw rows: the owner reference is present even for anonymous content
	assert.Equal(t, f.admin.ID, all[0].UserID)
}

func TestDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID, f.admin))
	assert.NoError(t, f.svc.Delete(context.Background(), created.ID, f.admin))
}

// ========================================
// ANONYMITY
// ========================================

func TestAnonymityToggleResnapshotsCurrentOwner(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	anon := true
	resp, err := f.svc.Update(context.Background(), created.ID, f.admin, blog.UpdateBlogRequest{IsAnonymous: &anon})
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	assert.Equal(t, "Anonymous", *resp.Name)

	// owner renames while the blog is anonymous
	f.userRepo.users[f.admin.ID].Name = "Ada Lovelace"

	anon = false
	resp, err = f.svc.Update(context.Background(), created.ID, f.admin, blog.UpdateBlogRequest{IsAnonymous: &anon})
	require.NoError(t, err)
	require.NotNil(t, resp.Name)
	assert.Equal(t, "Ada Lovelace", *resp.Name, "snapshot must come from the current owner record, not a stale copy")
	require.NotNil(t, resp.User)
	assert.Equal(t, f.admin.ID, *resp.User)
}

// ========================================
// LIKES
// ========================================

func TestLikeUnlikeRoundTrip(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	require.NoError(t, f.svc.Like(context.Background(), created.ID, f.member))

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Likes, 1)
	assert.Equal(t, f.member.ID, resp.Likes[0].UserID)
	assert.Equal(t, "Mel", resp.Likes[0].Name, "like entries resolve the user's current name at read time")

	require.NoError(t, f.svc.Unlike(context.Background(), created.ID, f.member))

	resp, err = f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Likes)
}

func TestDuplicateLikeRejected(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	require.NoError(t, f.svc.Like(context.Background(), created.ID, f.member))
	err := f.svc.Like(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, blog.ErrAlreadyLiked)

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Likes, 1)
}

func TestUnlikeWithoutLike(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	err := f.svc.Unlike(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, blog.ErrNotLiked)
}

func TestLikesAreNewestFirst(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	first := authz.Actor{ID: uuid.New(), Role: authz.RoleMember}
	second := authz.Actor{ID: uuid.New(), Role: authz.RoleMember}

	require.NoError(t, f.svc.Like(context.Background(), created.ID, first))
	require.NoError(t, f.svc.Like(context.Background(), created.ID, second))

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Likes, 2)
	assert.Equal(t, second.ID, resp.Likes[0].UserID)
	assert.Equal(t, first.ID, resp.Likes[1].UserID)
}

// ========================================
// COMMENTS
// ========================================

func TestAddAndDeleteCommentRoundTrip(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	comment, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", comment.Text)
	require.NotNil(t, comment.Name)
	assert.Equal(t, "Mel", *comment.Name)

	require.NoError(t, f.svc.DeleteComment(context.Background(), created.ID, comment.ID, f.member))

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Comments)
}

func TestDeleteUnknownCommentLeavesSequenceUnchanged(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	_, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "keep me"})
	require.NoError(t, err)

	err = f.svc.DeleteComment(context.Background(), created.ID, uuid.New(), f.member)
	assert.ErrorIs(t, err, blog.ErrCommentNotFound)

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Comments, 1)
}

func TestAnonymousCommentIsRedacted(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	comment, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{
		Text:        "hi",
		IsAnonymous: true,
	})
	require.NoError(t, err)

	assert.Nil(t, comment.UserID)
	require.NotNil(t, comment.Name)
	assert.Equal(t, "Anonymous", *comment.Name)
	assert.Nil(t, comment.Avatar)

	// redaction holds on the read path too, per comment, independent of
	// the parent blog's flag
	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	assert.Nil(t, resp.Comments[0].UserID)
	assert.Equal(t, "Anonymous", *resp.Comments[0].Name)
	assert.False(t, resp.IsAnonymous)
}

func TestEmptyCommentRejected(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	_, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: ""})
	assert.Error(t, err)
}

func TestCommentsAreNewestFirst(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	_, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "first"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "second"})
	require.NoError(t, err)

	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Comments, 2)
	assert.Equal(t, "second", resp.Comments[0].Text)
	assert.Equal(t, "first", resp.Comments[1].Text)
}

func TestDeleteCommentThreeWayAuthorization(t *testing.T) {
	f := newFixture(t)
	created := f.createBlog(t, false)

	stranger := authz.Actor{ID: uuid.New(), Role: authz.RoleMember}
	otherAdmin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}

	addComment := func() uuid.UUID {
		c, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{Text: "x"})
		require.NoError(t, err)
		return c.ID
	}

	// a third member may not remove someone else's comment
	id := addComment()
	err := f.svc.DeleteComment(context.Background(), created.ID, id, stranger)
	assert.ErrorIs(t, err, blog.ErrNotAuthorized)

	// the comment's author may
	require.NoError(t, f.svc.DeleteComment(context.Background(), created.ID, id, f.member))

	// the blog's owner may
	id = addComment()
	require.NoError(t, f.svc.DeleteComment(context.Background(), created.ID, id, f.admin))

	// any admin may
	id = addComment()
	require.NoError(t, f.svc.DeleteComment(context.Background(), created.ID, id, otherAdmin))
}

// ========================================
// END-TO-END SCENARIO
// ========================================

func TestInteractionScenario(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.admin, blog.CreateBlogRequest{
		Title:   "T",
		Content: "C",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Like(context.Background(), created.ID, f.member))
	resp, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Likes, 1)
	assert.Equal(t, f.member.ID, resp.Likes[0].UserID)

	require.NoError(t, f.svc.Unlike(context.Background(), created.ID, f.member))
	resp, err = f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Likes)

	comment, err := f.svc.AddComment(context.Background(), created.ID, f.member, blog.CommentRequest{
		Text:        "hi",
		IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.Nil(t, comment.UserID)
	assert.Equal(t, "hi", comment.Text)

	require.NoError(t, f.svc.DeleteComment(context.Background(), created.ID, comment.ID, f.admin))
	resp, err = f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Comments)
}
