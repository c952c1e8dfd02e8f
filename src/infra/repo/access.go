package repo

import (
	"context"

	"candlepin/src/core/domain"
)

// Activation keys

func (r *Repository) CreateActivationKey(ctx context.Context, k *domain.ActivationKey) error {
	return r.activationKeys.insert(ctx, storedActivationKey(k))
}

func (r *Repository) UpdateActivationKey(ctx context.Context, k *domain.ActivationKey) error {
	return r.activationKeys.update(ctx, storedActivationKey(k))
}

func storedActivationKey(k *domain.ActivationKey) *domain.ActivationKey {
	s := *k
	s.Owner = ownerRef(k.Owner)
	return &s
}

func (r *Repository) GetActivationKey(ctx context.Context, id string) (*domain.ActivationKey, error) {
	k, err := r.activationKeys.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if k.Owner, err = r.resolveOwner(ctx, k.Owner); err != nil {
		return nil, err
	}
	return k, nil
}

func (r *Repository) ListActivationKeys(ctx context.Context, ownerID string) ([]*domain.ActivationKey, error) {
	keys, err := r.activationKeys.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if k.Owner, err = r.resolveOwner(ctx, k.Owner); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// Users

func (r *Repository) CreateUser(ctx context.Context, u *domain.User) error {
	return r.users.insert(ctx, u)
}

func (r *Repository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return r.users.getByKey(ctx, username)
}

// Roles

func (r *Repository) CreateRole(ctx context.Context, role *domain.Role) error {
	return r.roles.insert(ctx, storedRole(role))
}

func (r *Repository) UpdateRole(ctx context.Context, role *domain.Role) error {
	return r.roles.update(ctx, storedRole(role))
}

func storedRole(role *domain.Role) *domain.Role {
	s := *role
	s.Users = nil
	for _, u := range role.Users {
		if u != nil {
			s.Users = append(s.Users, &domain.User{ID: u.ID, Username: u.Username})
		}
	}
	s.Permissions = make([]domain.PermissionBlueprint, len(role.Permissions))
	for i, p := range role.Permissions {
		p.Owner = ownerRef(p.Owner)
		s.Permissions[i] = p
	}
	return &s
}

func (r *Repository) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	role, err := r.roles.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.hydrateRole(ctx, role)
}

func (r *Repository) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	roles, err := r.roles.list(ctx, "")
	if err != nil {
		return nil, err
	}
	for i, role := range roles {
		if roles[i], err = r.hydrateRole(ctx, role); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (r *Repository) hydrateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	for i, ref := range role.Users {
		u, err := r.users.getByKey(ctx, ref.Username)
		switch {
		case err == nil:
			role.Users[i] = u
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	var err error
	for i := range role.Permissions {
		p := &role.Permissions[i]
		if p.Owner, err = r.resolveOwner(ctx, p.Owner); err != nil {
			return nil, err
		}
	}
	return role, nil
}
