package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// EntitlementService attaches pool quantity to consumers.
//
// Binds and revokes lock the consumer and then the pool, always in that
// order, and reload both under the locks.
type EntitlementService struct {
	repo  ports.Repository
	log   *slog.Logger
	locks keyedMutex
	emitter
}

func NewEntitlementService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *EntitlementService {
	return &EntitlementService{repo: repo, log: log, emitter: emitter{events, log}}
}

// Bind consumes quantity units of a pool for the consumer.
func (s *EntitlementService) Bind(ctx context.Context, consumerUUID, poolID string, quantity int) (*domain.Entitlement, error) {
	defer s.lock(consumerUUID, poolID)()

	consumer, err := s.repo.GetConsumer(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}
	pool, err := s.repo.GetPool(ctx, poolID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("pool", "unknown pool "+poolID)
		}
		return nil, err
	}
	return s.bind(ctx, consumer, pool, quantity)
}

func (s *EntitlementService) lock(consumerUUID, poolID string) (unlock func()) {
	unlockConsumer := s.locks.Lock("consumer:" + consumerUUID)
	unlockPool := s.locks.Lock("pool:" + poolID)
	return func() {
		unlockPool()
		unlockConsumer()
	}
}

func (s *EntitlementService) bind(ctx context.Context, consumer *domain.Consumer, pool *domain.Pool, quantity int) (*domain.Entitlement, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity", "must be at least 1")
	}
	if pool.Owner == nil || pool.Owner.ID != consumer.OwnerID() {
		return nil, domain.NewForbiddenError("pool " + pool.ID + " belongs to another owner")
	}
	if pool.EndDate.Before(now()) {
		return nil, domain.NewConflictError("pool " + pool.ID + " has expired")
	}
	if pool.Quantity >= 0 && pool.Quantity-pool.Consumed < int64(quantity) {
		return nil, domain.NewConflictError(fmt.Sprintf("pool %s has %d of %d available", pool.ID, pool.Quantity-pool.Consumed, quantity))
	}

	pool.Consumed += int64(quantity)
	if consumer.IsManifest() {
		pool.Exported += int64(quantity)
	}
	pool.Updated = now()
	if err := s.repo.UpdatePool(ctx, pool); err != nil {
		return nil, err
	}

	ent := &domain.Entitlement{
		ID:       newID(),
		Owner:    consumer.Owner,
		Consumer: consumer,
		Pool:     pool,
		Quantity: quantity,
		Created:  now(),
		Updated:  now(),
	}
	if err := s.repo.CreateEntitlement(ctx, ent); err != nil {
		return nil, err
	}

	consumer.EntitlementCount += int64(quantity)
	consumer.Updated = now()
	if err := s.repo.UpdateConsumer(ctx, consumer); err != nil {
		return nil, err
	}

	s.log.Info("entitlement created", "consumer", consumer.UUID, "pool_id", pool.ID, "quantity", quantity)
	s.emit(ctx, eventInfo{
		typ:          domain.EventCreated,
		target:       domain.TargetEntitlement,
		targetName:   consumer.Name,
		entityID:     ent.ID,
		ownerID:      consumer.OwnerID(),
		consumerUUID: consumer.UUID,
	})
	return ent, nil
}

// Revoke removes an entitlement and returns its quantity to the pool.
func (s *EntitlementService) Revoke(ctx context.Context, id string) error {
	ent, err := s.repo.GetEntitlement(ctx, id)
	if err != nil {
		return err
	}
	return s.revoke(ctx, ent)
}

// revoke locks the entitlement's consumer and pool and reloads the
// entitlement, so a concurrent revoke of the same one reports not found.
func (s *EntitlementService) revoke(ctx context.Context, ent *domain.Entitlement) error {
	defer s.lock(consumerUUIDOf(ent.Consumer), poolIDOf(ent.Pool))()

	ent, err := s.repo.GetEntitlement(ctx, ent.ID)
	if err != nil {
		return err
	}
	qty := int64(ent.Quantity)
	manifest := ent.Consumer != nil && ent.Consumer.IsManifest()

	// Pools and consumers that no longer exist come back as id-only stubs.
	if ent.Pool != nil && ent.Pool.Product != nil {
		pool := ent.Pool
		pool.Consumed = max(pool.Consumed-qty, 0)
		if manifest {
			pool.Exported = max(pool.Exported-qty, 0)
		}
		pool.Updated = now()
		if err := s.repo.UpdatePool(ctx, pool); err != nil && !domain.IsNotFound(err) {
			return err
		}
	}
	if err := s.repo.DeleteEntitlement(ctx, ent.ID); err != nil {
		return err
	}
	if c := ent.Consumer; c != nil && c.Owner != nil {
		c.EntitlementCount = max(c.EntitlementCount-qty, 0)
		c.Updated = now()
		if err := s.repo.UpdateConsumer(ctx, c); err != nil && !domain.IsNotFound(err) {
			return err
		}
	}

	s.emit(ctx, eventInfo{
		typ:          domain.EventDeleted,
		target:       domain.TargetEntitlement,
		entityID:     ent.ID,
		ownerID:      ownerIDOf(ent.Owner),
		consumerUUID: consumerUUIDOf(ent.Consumer),
	})
	return nil
}

func ownerIDOf(o *domain.Owner) string {
	if o == nil {
		return ""
	}
	return o.ID
}

func poolIDOf(p *domain.Pool) string {
	if p == nil {
		return ""
	}
	return p.ID
}

func consumerUUIDOf(c *domain.Consumer) string {
	if c == nil {
		return ""
	}
	return c.UUID
}

func (s *EntitlementService) Get(ctx context.Context, id string) (*domain.Entitlement, error) {
	return s.repo.GetEntitlement(ctx, id)
}

func (s *EntitlementService) ListForConsumer(ctx context.Context, consumerUUID string) ([]*domain.Entitlement, error) {
	if _, err := s.repo.GetConsumer(ctx, consumerUUID); err != nil {
		return nil, err
	}
	return s.repo.ListEntitlements(ctx, consumerUUID)
}
