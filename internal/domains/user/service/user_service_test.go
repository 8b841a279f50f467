package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/domains/user"
	"cms-backend/internal/shared/authz"
	"cms-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
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

func newService() (user.Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(repo, manager), repo
}

func registerReq() user.RegisterRequest {
	return user.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	}
}

func TestRegisterIssuesTokensAndDefaults(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, authz.RoleMember, resp.User.Role, "registration never grants admin")
	assert.Contains(t, resp.User.Avatar, "gravatar.com/avatar/")
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newService()

	req := registerReq()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)

	req = registerReq()
	req.Email = "not-an-email"
	_, err = svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLoginWrongPasswordAndUnknownEmailLookIdentical(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	_, errUnknownEmail := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, errWrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, user.ErrInvalidCredentials)
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	svc, _ := newService()

	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestUpdateUserRole(t *testing.T) {
	svc, repo := newService()

	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	err = svc.UpdateUserRole(context.Background(), registered.User.ID, user.UpdateRoleRequest{Role: authz.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, repo.users[registered.User.ID].Role)

	err = svc.UpdateUserRole(context.Background(), registered.User.ID, user.UpdateRoleRequest{Role: "superuser"})
	assert.Error(t, err)
}

func TestGravatarURLIsDeterministic(t *testing.T) {
	a := GravatarURL("Ada@Example.com ")
	b := GravatarURL("ada@example.com")

	assert.Equal(t, a, b, "email is trimmed and lowercased before hashing")
	assert.Contains(t, a, "s=200&r=pg&d=mm")
}
