package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDTO_Users(t *testing.T) {
	t.Parallel()

	r := &RoleDTO{Name: "admins"}

	added, err := r.AddUser(&UserDTO{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.AddUser(&UserDTO{Username: "alice", ID: "other"})
	require.NoError(t, err)
	assert.False(t, added, "users are keyed by username")

	_, err = r.AddUser(&UserDTO{ID: "no-name"})
	assert.ErrorIs(t, err, ErrIncompleteUser)
	_, err = r.AddUser(nil)
	assert.ErrorIs(t, err, ErrIncompleteUser)

	removed, err := r.RemoveUser("alice")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, r.User("alice"))

	err = r.SetUsers([]*UserDTO{{Username: "a"}, {Username: "b"}, {Username: "a"}})
	require.NoError(t, err)
	assert.Len(t, r.Users, 2)

	err = r.SetUsers([]*UserDTO{{Username: "c"}, nil})
	assert.ErrorIs(t, err, ErrIncompleteUser)
	assert.Len(t, r.Users, 2, "failed set leaves users unchanged")
}

func TestRoleDTO_Permissions(t *testing.T) {
	t.Parallel()

	r := &RoleDTO{}

	added, err := r.AddPermission(&PermissionBlueprintDTO{ID: "p1", Access: "READ_ONLY"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.AddPermission(&PermissionBlueprintDTO{ID: "p1", Access: "ALL"})
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, r.Permissions, 1)
	assert.Equal(t, "ALL", r.Permissions[0].Access)

	added, err = r.AddPermission(&PermissionBlueprintDTO{ID: "p1", Access: "ALL"})
	require.NoError(t, err)
	assert.False(t, added)

	_, err = r.AddPermission(nil)
	assert.ErrorIs(t, err, ErrIncompletePermission)

	removed, err := r.RemovePermission("p1")
	require.NoError(t, err)
	assert.True(t, removed)

	err = r.SetPermissions([]*PermissionBlueprintDTO{{ID: "x"}, nil})
	assert.ErrorIs(t, err, ErrIncompletePermission)
	assert.Empty(t, r.Permissions)
}

func TestRoleDTO_Equal(t *testing.T) {
	t.Parallel()

	a := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "a"}, {Username: "b"}}}
	b := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "b"}, {Username: "a"}}}
	assert.True(t, a.Equal(b))

	c := a.Clone()
	c.Users[0].SuperAdmin = Ptr(true)
	assert.Nil(t, a.Users[0].SuperAdmin)
	assert.False(t, a.Equal(c))

	assert.True(t, (&RoleDTO{}).Equal(&RoleDTO{Users: []*UserDTO{}}), "nil and empty collections are equal")
}

func TestRoleDTO_Equal_DuplicateKeys(t *testing.T) {
	t.Parallel()

	xy := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "x"}, {Username: "y"}}}
	xx := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "x"}, {Username: "x"}}}
	assert.False(t, xy.Equal(xx))
	assert.False(t, xx.Equal(xy))

	// Duplicates match pairwise in any order.
	a := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "x", ID: "1"}, {Username: "x", ID: "2"}}}
	b := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "x", ID: "2"}, {Username: "x", ID: "1"}}}
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	c := &RoleDTO{ID: "r", Users: []*UserDTO{{Username: "x", ID: "1"}, {Username: "x", ID: "1"}}}
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))
}
