package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// UserService manages accounts and authenticates callers.
type UserService struct {
	repo   ports.Repository
	hasher ports.PasswordHasher
	log    *slog.Logger
	emitter
}

func NewUserService(repo ports.Repository, hasher ports.PasswordHasher, events ports.EventPublisher, log *slog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log, emitter: emitter{events, log}}
}

func (s *UserService) Create(ctx context.Context, username, password string, superAdmin bool) (*domain.User, error) {
	if err := validKey("username", username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "must not be empty")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.NewValidationError("password", err.Error())
	}

	u := &domain.User{
		ID:             newID(),
		Username:       username,
		HashedPassword: hash,
		SuperAdmin:     superAdmin,
		Created:        now(),
		Updated:        now(),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", "username", username, "super_admin", superAdmin)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetUser, targetName: username, entityID: u.ID})
	return u, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetUser(ctx, username)
}

// Authenticate checks a username and password and returns the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Verify(u.HashedPassword, password) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}
	return &Principal{Type: "user", Name: u.Username, SuperAdmin: u.SuperAdmin}, nil
}

// EnsureAdmin creates the super-admin account when it does not exist.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.GetUser(ctx, username)
	if err == nil {
		return u, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}
	return s.Create(WithPrincipal(ctx, System), username, password, true)
}

// RoleService manages roles and their members.
type RoleService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewRoleService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *RoleService {
	return &RoleService{repo: repo, log: log, emitter: emitter{events, log}}
}

func (s *RoleService) Create(ctx context.Context, r *domain.Role) (*domain.Role, error) {
	if r.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	users := make([]*domain.User, 0, len(r.Users))
	for _, ref := range r.Users {
		u, err := s.user(ctx, ref.Username)
		if err != nil {
			return nil, err
		}
		if !containsUser(users, u.Username) {
			users = append(users, u)
		}
	}
	r.Users = users

	for i := range r.Permissions {
		p := &r.Permissions[i]
		if p.Owner == nil {
			return nil, domain.NewValidationError("permissions", "permission needs an owner")
		}
		owner, err := s.owner(ctx, p.Owner)
		if err != nil {
			return nil, err
		}
		p.Owner = owner
		if p.ID == "" {
			p.ID = newID()
		}
		if p.Type == "" {
			p.Type = domain.PermissionOwner
		}
		if p.Access == "" {
			p.Access = domain.AccessReadOnly
		}
		p.Created, p.Updated = now(), now()
	}

	r.ID = newID()
	r.Created, r.Updated = now(), now()
	if err := s.repo.CreateRole(ctx, r); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetRole, targetName: r.Name, entityID: r.ID})
	return r, nil
}

func containsUser(users []*domain.User, username string) bool {
	for _, u := range users {
		if u.Username == username {
			return true
		}
	}
	return false
}

func (s *RoleService) user(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.repo.GetUser(ctx, username)
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError("users", "unknown user "+username)
	}
	return u, err
}

func (s *RoleService) owner(ctx context.Context, ref *domain.Owner) (*domain.Owner, error) {
	var (
		o   *domain.Owner
		err error
	)
	if ref.ID != "" {
		o, err = s.repo.GetOwner(ctx, ref.ID)
	} else {
		o, err = s.repo.GetOwnerByKey(ctx, ref.Key)
	}
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError("permissions", "unknown owner")
	}
	return o, err
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.GetRole(ctx, id)
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.repo.ListRoles(ctx)
}

// AddUser grants the role to a user. Adding a member again is a no-op.
func (s *RoleService) AddUser(ctx context.Context, roleID, username string) (*domain.Role, error) {
	r, err := s.repo.GetRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if r.HasUser(username) {
		return r, nil
	}
	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	r.Users = append(r.Users, u)
	return s.save(ctx, r)
}

// RemoveUser revokes the role from a user.
func (s *RoleService) RemoveUser(ctx context.Context, roleID, username string) (*domain.Role, error) {
	r, err := s.repo.GetRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !r.HasUser(username) {
		return nil, domain.NewNotFoundError("role member", username)
	}
	users := r.Users[:0]
	for _, u := range r.Users {
		if u.Username != username {
			users = append(users, u)
		}
	}
	r.Users = users
	return s.save(ctx, r)
}

func (s *RoleService) save(ctx context.Context, r *domain.Role) (*domain.Role, error) {
	r.Updated = now()
	if err := s.repo.UpdateRole(ctx, r); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventModified, target: domain.TargetRole, targetName: r.Name, entityID: r.ID})
	return r, nil
}
