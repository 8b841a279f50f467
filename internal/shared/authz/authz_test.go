package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanEdit_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, CanEdit(Actor{ID: owner, Role: RoleMember}, owner))
	assert.False(t, CanEdit(Actor{ID: other, Role: RoleMember}, owner))

	// no admin override on edits
	assert.False(t, CanEdit(Actor{ID: other, Role: RoleAdmin}, owner))
}

func TestCanModerate_OwnerOrAdmin(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, CanModerate(Actor{ID: owner, Role: RoleMember}, owner))
	assert.True(t, CanModerate(Actor{ID: other, Role: RoleAdmin}, owner))
	assert.False(t, CanModerate(Actor{ID: other, Role: RoleMember}, owner))
}

func TestCanDeleteComment_ThreeWay(t *testing.T) {
	author := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"comment author", Actor{ID: author, Role: RoleMember}, true},
		{"entity owner", Actor{ID: owner, Role: RoleMember}, true},
		{"admin", Actor{ID: stranger, Role: RoleAdmin}, true},
		{"unrelated member", Actor{ID: stranger, Role: RoleMember}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanDeleteComment(tc.actor, author, owner))
		})
	}
}

func TestCanCreate_AdminOnly(t *testing.T) {
	assert.True(t, CanCreate(RoleAdmin))
	assert.False(t, CanCreate(RoleMember))
	assert.False(t, CanCreate(Role("warehouse")))
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleMember.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
}
