package domain

import "time"

// PermissionType names what a permission blueprint grants.
type PermissionType string

const (
	PermissionOwner            PermissionType = "OWNER"
	PermissionOwnerHypervisors PermissionType = "OWNER_HYPERVISORS"
	PermissionUsername         PermissionType = "USERNAME_CONSUMERS"
)

// Access is the access level of a permission.
type Access string

const (
	AccessNone           Access = "NONE"
	AccessReadOnly       Access = "READ_ONLY"
	AccessCreate         Access = "CREATE"
	AccessReadOnlyCreate Access = "READ_ONLY_CREATE"
	AccessAll            Access = "ALL"
)

// User is an account that can authenticate against the API.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	SuperAdmin     bool
	Created        time.Time
	Updated        time.Time
}

// PermissionBlueprint grants an access level on an owner.
type PermissionBlueprint struct {
	ID      string
	Owner   *Owner
	Type    PermissionType
	Access  Access
	Created time.Time
	Updated time.Time
}

// Role groups users and the permissions they share.
type Role struct {
	ID          string
	Name        string
	Users       []*User
	Permissions []PermissionBlueprint
	Created     time.Time
	Updated     time.Time
}

// HasUser reports whether username is a member of the role.
func (r *Role) HasUser(username string) bool {
	for _, u := range r.Users {
		if u != nil && u.Username == username {
			return true
		}
	}
	return false
}
