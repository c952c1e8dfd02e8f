package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// PoolService manages an owner's pools.
type PoolService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewPoolService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *PoolService {
	return &PoolService{repo: repo, log: log, emitter: emitter{events, log}}
}

// Create adds a pool of productID to the owner. p.Quantity is read as the
// subscription quantity and multiplied out to the pool quantity; a negative
// quantity makes the pool unlimited.
func (s *PoolService) Create(ctx context.Context, ownerKey, productID string, p *domain.Pool) (*domain.Pool, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.GetProduct(ctx, owner.ID, productID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("productId", "unknown product "+productID)
		}
		return nil, err
	}

	if p.StartDate.IsZero() {
		p.StartDate = now()
	}
	if p.EndDate.IsZero() {
		p.EndDate = p.StartDate.AddDate(1, 0, 0)
	}
	if !p.EndDate.After(p.StartDate) {
		return nil, domain.NewValidationError("endDate", "must be after the start date")
	}
	p.Quantity = product.PoolQuantity(p.Quantity, p.UpstreamPoolID)
	if p.Type == "" {
		p.Type = domain.PoolNormal
	}

	p.ID = newID()
	p.Owner = owner
	p.Product = product
	p.ActiveSubscription = true
	p.Consumed, p.Exported = 0, 0
	p.Created, p.Updated = now(), now()
	if err := s.repo.CreatePool(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("pool created", "owner", owner.Key, "pool_id", p.ID, "product_id", productID, "quantity", p.Quantity)
	s.emit(ctx, eventInfo{
		typ:        domain.EventCreated,
		target:     domain.TargetPool,
		targetName: product.Name,
		entityID:   p.ID,
		ownerID:    owner.ID,
		data:       strconv.FormatInt(p.Quantity, 10),
	})
	return p, nil
}

func (s *PoolService) Get(ctx context.Context, id string) (*domain.Pool, error) {
	return s.repo.GetPool(ctx, id)
}

func (s *PoolService) List(ctx context.Context, ownerKey string) ([]*domain.Pool, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPools(ctx, owner.ID)
}

// ListSubscriptionPools returns the owner's pools that stand for a
// subscription: normal pools, excluding derived and bonus pools.
func (s *PoolService) ListSubscriptionPools(ctx context.Context, ownerKey string) ([]*domain.Pool, error) {
	pools, err := s.List(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	out := pools[:0]
	for _, p := range pools {
		if p.Type == domain.PoolNormal || p.Type == domain.PoolDevelopment {
			out = append(out, p)
		}
	}
	return out, nil
}
