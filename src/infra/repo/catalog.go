package repo

import (
	"context"

	"candlepin/src/core/domain"
)

type productRecord struct {
	OwnerID string
	Product domain.Product
}

type contentRecord struct {
	OwnerID string
	Content domain.Content
}

// Products

func (r *Repository) CreateProduct(ctx context.Context, ownerID string, p *domain.Product) error {
	return r.products.insert(ctx, &productRecord{OwnerID: ownerID, Product: storedProduct(p)})
}

func (r *Repository) UpdateProduct(ctx context.Context, ownerID string, p *domain.Product) error {
	return r.products.update(ctx, &productRecord{OwnerID: ownerID, Product: storedProduct(p)})
}

func productRef(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	return &domain.Product{UUID: p.UUID, ID: p.ID}
}

func storedProduct(p *domain.Product) domain.Product {
	s := *p
	s.DerivedProduct = productRef(p.DerivedProduct)
	s.ProvidedProducts = nil
	for _, pp := range p.ProvidedProducts {
		if pp != nil {
			s.ProvidedProducts = append(s.ProvidedProducts, productRef(pp))
		}
	}
	s.ProductContent = make([]domain.ProductContent, 0, len(p.ProductContent))
	for _, pc := range p.ProductContent {
		if pc.Content == nil {
			continue
		}
		s.ProductContent = append(s.ProductContent, domain.ProductContent{
			Content: &domain.Content{UUID: pc.Content.UUID, ID: pc.Content.ID},
			Enabled: pc.Enabled,
		})
	}
	return s
}

func (r *Repository) GetProduct(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	rec, err := r.products.getByKey(ctx, scopedKey(ownerID, productID))
	if err != nil {
		return nil, err
	}
	return r.hydrateProduct(ctx, &rec.Product)
}

func (r *Repository) ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	recs, err := r.products.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(recs))
	for _, rec := range recs {
		p, err := r.hydrateProduct(ctx, &rec.Product)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// productByUUID loads a hydrated product, returning ref itself when it no
// longer exists.
func (r *Repository) productByUUID(ctx context.Context, ref *domain.Product) (*domain.Product, error) {
	if ref == nil || ref.UUID == "" {
		return ref, nil
	}
	rec, err := r.products.get(ctx, ref.UUID)
	if err != nil {
		if domain.IsNotFound(err) {
			return ref, nil
		}
		return nil, err
	}
	return r.hydrateProduct(ctx, &rec.Product)
}

func (r *Repository) hydrateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var err error
	if p.DerivedProduct, err = r.productByUUID(ctx, p.DerivedProduct); err != nil {
		return nil, err
	}
	for i, pp := range p.ProvidedProducts {
		if p.ProvidedProducts[i], err = r.productByUUID(ctx, pp); err != nil {
			return nil, err
		}
	}
	for i, pc := range p.ProductContent {
		rec, err := r.content.get(ctx, pc.Content.UUID)
		switch {
		case err == nil:
			p.ProductContent[i].Content = &rec.Content
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	return p, nil
}

// Content

func (r *Repository) CreateContent(ctx context.Context, ownerID string, c *domain.Content) error {
	return r.content.insert(ctx, &contentRecord{OwnerID: ownerID, Content: *c})
}

func (r *Repository) GetContent(ctx context.Context, ownerID, contentID string) (*domain.Content, error) {
	rec, err := r.content.getByKey(ctx, scopedKey(ownerID, contentID))
	if err != nil {
		return nil, err
	}
	return &rec.Content, nil
}

func (r *Repository) ListContent(ctx context.Context, ownerID string) ([]*domain.Content, error) {
	recs, err := r.content.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Content, 0, len(recs))
	for _, rec := range recs {
		out = append(out, &rec.Content)
	}
	return out, nil
}

// Pools

func (r *Repository) CreatePool(ctx context.Context, p *domain.Pool) error {
	return r.pools.insert(ctx, storedPool(p))
}

func (r *Repository) UpdatePool(ctx context.Context, p *domain.Pool) error {
	return r.pools.update(ctx, storedPool(p))
}

func storedPool(p *domain.Pool) *domain.Pool {
	s := *p
	s.Owner = ownerRef(p.Owner)
	s.Product = productRef(p.Product)
	return &s
}

func (r *Repository) GetPool(ctx context.Context, id string) (*domain.Pool, error) {
	p, err := r.pools.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.hydratePool(ctx, p)
}

func (r *Repository) ListPools(ctx context.Context, ownerID string) ([]*domain.Pool, error) {
	pools, err := r.pools.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i, p := range pools {
		if pools[i], err = r.hydratePool(ctx, p); err != nil {
			return nil, err
		}
	}
	return pools, nil
}

func (r *Repository) hydratePool(ctx context.Context, p *domain.Pool) (*domain.Pool, error) {
	var err error
	if p.Owner, err = r.resolveOwner(ctx, p.Owner); err != nil {
		return nil, err
	}
	if p.Product, err = r.productByUUID(ctx, p.Product); err != nil {
		return nil, err
	}
	return p, nil
}

// Entitlements

func (r *Repository) CreateEntitlement(ctx context.Context, e *domain.Entitlement) error {
	s := *e
	s.Owner = ownerRef(e.Owner)
	if e.Consumer != nil {
		s.Consumer = &domain.Consumer{ID: e.Consumer.ID, UUID: e.Consumer.UUID}
	}
	if e.Pool != nil {
		s.Pool = &domain.Pool{ID: e.Pool.ID}
	}
	return r.entitlements.insert(ctx, &s)
}

func (r *Repository) GetEntitlement(ctx context.Context, id string) (*domain.Entitlement, error) {
	e, err := r.entitlements.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.hydrateEntitlement(ctx, e)
}

func (r *Repository) DeleteEntitlement(ctx context.Context, id string) error {
	return r.entitlements.delete(ctx, id)
}

func (r *Repository) ListEntitlements(ctx context.Context, consumerUUID string) ([]*domain.Entitlement, error) {
	ents, err := r.entitlements.list(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}
	for i, e := range ents {
		if ents[i], err = r.hydrateEntitlement(ctx, e); err != nil {
			return nil, err
		}
	}
	return ents, nil
}

func (r *Repository) hydrateEntitlement(ctx context.Context, e *domain.Entitlement) (*domain.Entitlement, error) {
	var err error
	if e.Owner, err = r.resolveOwner(ctx, e.Owner); err != nil {
		return nil, err
	}
	if e.Consumer != nil && e.Consumer.UUID != "" {
		c, err := r.GetConsumer(ctx, e.Consumer.UUID)
		switch {
		case err == nil:
			e.Consumer = c
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	if e.Pool != nil && e.Pool.ID != "" {
		p, err := r.GetPool(ctx, e.Pool.ID)
		switch {
		case err == nil:
			e.Pool = p
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	return e, nil
}
