package dto

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrIncompleteUser is returned when a user entry is nil or lacks a username.
	ErrIncompleteUser = errors.New("user is null or incomplete")

	// ErrIncompletePermission is returned when a permission entry is nil.
	ErrIncompletePermission = errors.New("permission is null or incomplete")
)

// UserDTO is an API principal. Password is only ever read from requests.
type UserDTO struct {
	Timestamped
	ID         string `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	SuperAdmin *bool  `json:"superAdmin,omitempty"`
}

func (d *UserDTO) username() string {
	if d == nil {
		return ""
	}
	return d.Username
}

func (d *UserDTO) String() string {
	return fmt.Sprintf("UserDTO [id: %s, username: %s, super admin: %t]", d.ID, d.Username, Deref(d.SuperAdmin))
}

// Clone returns a copy independent of d.
func (d *UserDTO) Clone() *UserDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.SuperAdmin = clonePtr(d.SuperAdmin)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *UserDTO) Populate(src *UserDTO) *UserDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *UserDTO) Equal(o *UserDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Username == o.Username &&
		d.Password == o.Password &&
		ptrEqual(d.SuperAdmin, o.SuperAdmin)
}

// PermissionBlueprintDTO grants an access level of some type on an owner.
type PermissionBlueprintDTO struct {
	Timestamped
	ID     string          `json:"id,omitempty"`
	Owner  *NestedOwnerDTO `json:"owner,omitempty"`
	Type   string          `json:"type,omitempty"`
	Access string          `json:"access,omitempty"`
}

func (d *PermissionBlueprintDTO) id() string {
	if d == nil {
		return ""
	}
	return d.ID
}

// Clone returns a copy independent of d.
func (d *PermissionBlueprintDTO) Clone() *PermissionBlueprintDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Owner = d.Owner.Clone()
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *PermissionBlueprintDTO) Populate(src *PermissionBlueprintDTO) *PermissionBlueprintDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Owner is compared by id.
func (d *PermissionBlueprintDTO) Equal(o *PermissionBlueprintDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Owner.id() == o.Owner.id() &&
		d.Type == o.Type &&
		d.Access == o.Access
}

// RoleDTO groups users with a set of permissions.
type RoleDTO struct {
	Timestamped
	ID          string                    `json:"id,omitempty"`
	Name        string                    `json:"name,omitempty"`
	Users       []*UserDTO                `json:"users,omitempty"`
	Permissions []*PermissionBlueprintDTO `json:"permissions,omitempty"`
}

func (d *RoleDTO) String() string {
	return fmt.Sprintf("RoleDTO [id: %s, name: %s]", d.ID, d.Name)
}

// User returns the member with the given username.
func (d *RoleDTO) User(username string) *UserDTO {
	for _, u := range d.Users {
		if u.username() == username {
			return u
		}
	}
	return nil
}

// AddUser adds a member unless one with the same username is present.
func (d *RoleDTO) AddUser(u *UserDTO) (bool, error) {
	if u.username() == "" {
		return false, ErrIncompleteUser
	}
	if d.User(u.Username) != nil {
		return false, nil
	}
	d.Users = append(d.Users, u)
	return true, nil
}

// RemoveUser removes the member with the given username.
func (d *RoleDTO) RemoveUser(username string) (bool, error) {
	if username == "" {
		return false, ErrIncompleteUser
	}
	before := len(d.Users)
	d.Users = slices.DeleteFunc(d.Users, func(u *UserDTO) bool { return u.username() == username })
	return len(d.Users) != before, nil
}

// SetUsers replaces the members. Entries without a username are rejected and
// leave the role unchanged.
func (d *RoleDTO) SetUsers(users []*UserDTO) error {
	if users == nil {
		d.Users = nil
		return nil
	}
	next := make([]*UserDTO, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.username() == "" {
			return ErrIncompleteUser
		}
		if _, dup := seen[u.Username]; dup {
			continue
		}
		seen[u.Username] = struct{}{}
		next = append(next, u)
	}
	d.Users = next
	return nil
}

// AddPermission adds p, replacing any permission with the same id.
func (d *RoleDTO) AddPermission(p *PermissionBlueprintDTO) (bool, error) {
	if p == nil {
		return false, ErrIncompletePermission
	}
	if p.ID != "" {
		for i, existing := range d.Permissions {
			if existing.id() == p.ID {
				if existing.Equal(p) {
					return false, nil
				}
				d.Permissions[i] = p
				return true, nil
			}
		}
	}
	d.Permissions = append(d.Permissions, p)
	return true, nil
}

// RemovePermission removes the permission with the given id.
func (d *RoleDTO) RemovePermission(id string) (bool, error) {
	if id == "" {
		return false, ErrIncompletePermission
	}
	before := len(d.Permissions)
	d.Permissions = slices.DeleteFunc(d.Permissions, func(p *PermissionBlueprintDTO) bool { return p.id() == id })
	return len(d.Permissions) != before, nil
}

// SetPermissions replaces the permissions. A nil entry is rejected and leaves
// the role unchanged.
func (d *RoleDTO) SetPermissions(perms []*PermissionBlueprintDTO) error {
	if perms == nil {
		d.Permissions = nil
		return nil
	}
	if slices.Contains(perms, nil) {
		return ErrIncompletePermission
	}
	d.Permissions = nil
	for _, p := range perms {
		if _, err := d.AddPermission(p); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy independent of d.
func (d *RoleDTO) Clone() *RoleDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Users = cloneAll(d.Users, (*UserDTO).Clone)
	c.Permissions = cloneAll(d.Permissions, (*PermissionBlueprintDTO).Clone)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *RoleDTO) Populate(src *RoleDTO) *RoleDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Users and permissions
// are compared as sets.
func (d *RoleDTO) Equal(o *RoleDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Name == o.Name &&
		setEqualBy(d.Users, o.Users, (*UserDTO).username, (*UserDTO).Equal) &&
		setEqualBy(d.Permissions, o.Permissions, (*PermissionBlueprintDTO).id, (*PermissionBlueprintDTO).Equal)
}
