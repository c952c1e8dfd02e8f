package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// ActivationKeyService manages registration presets.
type ActivationKeyService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewActivationKeyService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *ActivationKeyService {
	return &ActivationKeyService{repo: repo, log: log, emitter: emitter{events, log}}
}

func (s *ActivationKeyService) Create(ctx context.Context, ownerKey string, k *domain.ActivationKey) (*domain.ActivationKey, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if err := validKey("name", k.Name); err != nil {
		return nil, err
	}
	for _, kp := range k.Pools {
		if err := s.checkPool(ctx, owner.ID, kp); err != nil {
			return nil, err
		}
	}
	for _, pid := range k.ProductIDs {
		if _, err := s.repo.GetProduct(ctx, owner.ID, pid); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("products", "unknown product "+pid)
			}
			return nil, err
		}
	}

	k.ID = newID()
	k.Owner = owner
	k.Created, k.Updated = now(), now()
	if err := s.repo.CreateActivationKey(ctx, k); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetActivationKey, targetName: k.Name, entityID: k.ID, ownerID: owner.ID})
	return k, nil
}

func (s *ActivationKeyService) checkPool(ctx context.Context, ownerID string, kp domain.ActivationKeyPool) error {
	if kp.Quantity != nil && *kp.Quantity < 1 {
		return domain.NewValidationError("quantity", "must be at least 1")
	}
	pool, err := s.repo.GetPool(ctx, kp.PoolID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("pools", "unknown pool "+kp.PoolID)
		}
		return err
	}
	if pool.Owner == nil || pool.Owner.ID != ownerID {
		return domain.NewValidationError("pools", "pool "+kp.PoolID+" belongs to another owner")
	}
	return nil
}

func (s *ActivationKeyService) Get(ctx context.Context, id string) (*domain.ActivationKey, error) {
	return s.repo.GetActivationKey(ctx, id)
}

func (s *ActivationKeyService) List(ctx context.Context, ownerKey string) ([]*domain.ActivationKey, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListActivationKeys(ctx, owner.ID)
}

// AddPool attaches a pool to the key, replacing the quantity if the pool is
// already attached.
func (s *ActivationKeyService) AddPool(ctx context.Context, id, poolID string, quantity *int64) (*domain.ActivationKey, error) {
	k, err := s.repo.GetActivationKey(ctx, id)
	if err != nil {
		return nil, err
	}
	kp := domain.ActivationKeyPool{PoolID: poolID, Quantity: quantity}
	if err := s.checkPool(ctx, ownerIDOf(k.Owner), kp); err != nil {
		return nil, err
	}

	replaced := false
	for i := range k.Pools {
		if k.Pools[i].PoolID == poolID {
			k.Pools[i] = kp
			replaced = true
		}
	}
	if !replaced {
		k.Pools = append(k.Pools, kp)
	}
	return s.save(ctx, k)
}

// RemovePool detaches a pool from the key.
func (s *ActivationKeyService) RemovePool(ctx context.Context, id, poolID string) (*domain.ActivationKey, error) {
	k, err := s.repo.GetActivationKey(ctx, id)
	if err != nil {
		return nil, err
	}
	pools := k.Pools[:0]
	for _, kp := range k.Pools {
		if kp.PoolID != poolID {
			pools = append(pools, kp)
		}
	}
	if len(pools) == len(k.Pools) {
		return nil, domain.NewNotFoundError("activation key pool", poolID)
	}
	k.Pools = pools
	return s.save(ctx, k)
}

// SetContentOverrides adds or replaces overrides keyed by content label and
// name. An override with an empty value removes the existing one.
func (s *ActivationKeyService) SetContentOverrides(ctx context.Context, id string, overrides []domain.ContentOverride) (*domain.ActivationKey, error) {
	k, err := s.repo.GetActivationKey(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		if o.ContentLabel == "" || o.Name == "" {
			return nil, domain.NewValidationError("contentOverrides", "overrides need a content label and a name")
		}
		k.ContentOverrides = upsertOverride(k.ContentOverrides, o)
	}
	return s.save(ctx, k)
}

func upsertOverride(list []domain.ContentOverride, o domain.ContentOverride) []domain.ContentOverride {
	for i, cur := range list {
		if cur.ContentLabel != o.ContentLabel || cur.Name != o.Name {
			continue
		}
		if o.Value == "" {
			return append(list[:i], list[i+1:]...)
		}
		list[i].Value = o.Value
		list[i].Updated = now()
		return list
	}
	if o.Value == "" {
		return list
	}
	o.Created, o.Updated = now(), now()
	return append(list, o)
}

func (s *ActivationKeyService) save(ctx context.Context, k *domain.ActivationKey) (*domain.ActivationKey, error) {
	k.Updated = now()
	if err := s.repo.UpdateActivationKey(ctx, k); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventModified, target: domain.TargetActivationKey, targetName: k.Name, entityID: k.ID, ownerID: ownerIDOf(k.Owner)})
	return k, nil
}
