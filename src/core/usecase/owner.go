package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// OwnerService manages organizations.
type OwnerService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewOwnerService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *OwnerService {
	return &OwnerService{repo: repo, log: log, emitter: emitter{events, log}}
}

// OwnerChanges lists the owner fields an update may set. Nil fields are kept.
type OwnerChanges struct {
	DisplayName                *string
	ParentKey                  *string
	ContentPrefix              *string
	DefaultServiceLevel        *string
	LogLevel                   *string
	AutobindDisabled           *bool
	AutobindHypervisorDisabled *bool
	ContentAccessMode          *string
	ContentAccessModeList      *string
}

func (s *OwnerService) Create(ctx context.Context, o *domain.Owner) (*domain.Owner, error) {
	if err := validKey("key", o.Key); err != nil {
		return nil, err
	}
	if o.DisplayName == "" {
		o.DisplayName = o.Key
	}
	if o.ParentOwner != nil {
		parent, err := s.resolveParent(ctx, o.ParentOwner)
		if err != nil {
			return nil, err
		}
		o.ParentOwner = parent
	}
	if o.ContentAccessMode == "" {
		o.ContentAccessMode = domain.ContentAccessEntitlement
	}
	if o.ContentAccessModeList == "" {
		o.ContentAccessModeList = o.ContentAccessMode
	}
	if !o.AllowsContentAccessMode(o.ContentAccessMode) {
		return nil, domain.NewValidationError("contentAccessMode", "mode is not in the owner's mode list")
	}

	o.ID = newID()
	o.Created, o.Updated = now(), now()
	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return nil, err
	}

	s.log.Info("owner created", "owner", o.Key, "id", o.ID)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetOwner, targetName: o.Key, entityID: o.ID, ownerID: o.ID})
	return o, nil
}

func (s *OwnerService) resolveParent(ctx context.Context, ref *domain.Owner) (*domain.Owner, error) {
	var (
		parent *domain.Owner
		err    error
	)
	switch {
	case ref.ID != "":
		parent, err = s.repo.GetOwner(ctx, ref.ID)
	case ref.Key != "":
		parent, err = s.repo.GetOwnerByKey(ctx, ref.Key)
	default:
		return nil, domain.NewValidationError("parentOwner", "parent owner needs an id or key")
	}
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError("parentOwner", "parent owner does not exist")
	}
	return parent, err
}

func (s *OwnerService) Get(ctx context.Context, key string) (*domain.Owner, error) {
	return s.repo.GetOwnerByKey(ctx, key)
}

func (s *OwnerService) List(ctx context.Context) ([]*domain.Owner, error) {
	return s.repo.ListOwners(ctx)
}

func (s *OwnerService) Update(ctx context.Context, key string, ch OwnerChanges) (*domain.Owner, error) {
	o, err := s.repo.GetOwnerByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	setString(&o.DisplayName, ch.DisplayName)
	setString(&o.ContentPrefix, ch.ContentPrefix)
	setString(&o.DefaultServiceLevel, ch.DefaultServiceLevel)
	setString(&o.LogLevel, ch.LogLevel)
	setString(&o.ContentAccessModeList, ch.ContentAccessModeList)
	setString(&o.ContentAccessMode, ch.ContentAccessMode)
	if ch.AutobindDisabled != nil {
		o.AutobindDisabled = *ch.AutobindDisabled
	}
	if ch.AutobindHypervisorDisabled != nil {
		o.AutobindHypervisorDisabled = *ch.AutobindHypervisorDisabled
	}
	if ch.ParentKey != nil {
		if *ch.ParentKey == "" {
			o.ParentOwner = nil
		} else {
			if *ch.ParentKey == o.Key {
				return nil, domain.NewValidationError("parentOwner", "an owner cannot be its own parent")
			}
			parent, err := s.resolveParent(ctx, &domain.Owner{Key: *ch.ParentKey})
			if err != nil {
				return nil, err
			}
			o.ParentOwner = parent
		}
	}
	if !o.AllowsContentAccessMode(o.ContentAccessMode) {
		return nil, domain.NewValidationError("contentAccessMode", "mode is not in the owner's mode list")
	}

	o.Updated = now()
	if err := s.repo.UpdateOwner(ctx, o); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventModified, target: domain.TargetOwner, targetName: o.Key, entityID: o.ID, ownerID: o.ID})
	return o, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ListEnvironments returns the environments of an owner.
func (s *OwnerService) ListEnvironments(ctx context.Context, key string) ([]*domain.Environment, error) {
	o, err := s.repo.GetOwnerByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEnvironments(ctx, o.ID)
}

// CreateEnvironment adds an environment to an owner.
func (s *OwnerService) CreateEnvironment(ctx context.Context, key string, e *domain.Environment) (*domain.Environment, error) {
	o, err := s.repo.GetOwnerByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if e.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	e.Owner = o
	e.Created, e.Updated = now(), now()
	if err := s.repo.CreateEnvironment(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
