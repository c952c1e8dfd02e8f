package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// ProductService manages an owner's product definitions.
type ProductService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewProductService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log, emitter: emitter{events, log}}
}

func (s *ProductService) Create(ctx context.Context, ownerKey string, p *domain.Product) (*domain.Product, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, owner.ID, p); err != nil {
		return nil, err
	}

	p.UUID = newID()
	p.Created, p.Updated = now(), now()
	if err := s.repo.CreateProduct(ctx, owner.ID, p); err != nil {
		return nil, err
	}

	s.log.Info("product created", "owner", owner.Key, "product_id", p.ID)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetProduct, targetName: p.Name, entityID: p.UUID, ownerID: owner.ID})
	return p, nil
}

// Update replaces the definition of an existing product.
func (s *ProductService) Update(ctx context.Context, ownerKey, productID string, p *domain.Product) (*domain.Product, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetProduct(ctx, owner.ID, productID)
	if err != nil {
		return nil, err
	}
	if existing.Locked {
		return nil, domain.NewForbiddenError("product " + productID + " is locked")
	}
	p.ID = productID
	if p.Name == "" {
		p.Name = existing.Name
	}
	if err := s.prepare(ctx, owner.ID, p); err != nil {
		return nil, err
	}

	p.UUID = existing.UUID
	p.Created, p.Updated = existing.Created, now()
	if err := s.repo.UpdateProduct(ctx, owner.ID, p); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventModified, target: domain.TargetProduct, targetName: p.Name, entityID: p.UUID, ownerID: owner.ID})
	return p, nil
}

// prepare validates p and replaces its product and content references with
// the stored entities of the same owner.
func (s *ProductService) prepare(ctx context.Context, ownerID string, p *domain.Product) error {
	if p.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}
	if p.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}

	if p.DerivedProduct != nil {
		derived, err := s.reference(ctx, ownerID, p.DerivedProduct.ID, "derivedProduct")
		if err != nil {
			return err
		}
		p.DerivedProduct = derived
	}
	for i, pp := range p.ProvidedProducts {
		provided, err := s.reference(ctx, ownerID, pp.ID, "providedProducts")
		if err != nil {
			return err
		}
		p.ProvidedProducts[i] = provided
	}
	for i, pc := range p.ProductContent {
		if pc.Content == nil {
			return domain.NewValidationError("productContent", "product content needs a content reference")
		}
		c, err := s.repo.GetContent(ctx, ownerID, pc.Content.ID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.NewValidationError("productContent", "unknown content "+pc.Content.ID)
			}
			return err
		}
		p.ProductContent[i].Content = c
	}
	return nil
}

func (s *ProductService) reference(ctx context.Context, ownerID, productID, field string) (*domain.Product, error) {
	if productID == "" {
		return nil, domain.NewValidationError(field, "product reference needs an id")
	}
	ref, err := s.repo.GetProduct(ctx, ownerID, productID)
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError(field, "unknown product "+productID)
	}
	return ref, err
}

func (s *ProductService) Get(ctx context.Context, ownerKey, productID string) (*domain.Product, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, owner.ID, productID)
}

func (s *ProductService) List(ctx context.Context, ownerKey string) ([]*domain.Product, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProducts(ctx, owner.ID)
}

// ContentService manages an owner's content definitions.
type ContentService struct {
	repo ports.Repository
	log  *slog.Logger
	emitter
}

func NewContentService(repo ports.Repository, events ports.EventPublisher, log *slog.Logger) *ContentService {
	return &ContentService{repo: repo, log: log, emitter: emitter{events, log}}
}

func (s *ContentService) Create(ctx context.Context, ownerKey string, c *domain.Content) (*domain.Content, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	switch {
	case c.ID == "":
		return nil, domain.NewValidationError("id", "must not be empty")
	case c.Label == "":
		return nil, domain.NewValidationError("label", "must not be empty")
	case c.Name == "":
		return nil, domain.NewValidationError("name", "must not be empty")
	case c.Type == "":
		return nil, domain.NewValidationError("type", "must not be empty")
	}

	c.UUID = newID()
	c.Created, c.Updated = now(), now()
	if err := s.repo.CreateContent(ctx, owner.ID, c); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetContent, targetName: c.Label, entityID: c.UUID, ownerID: owner.ID})
	return c, nil
}

func (s *ContentService) Get(ctx context.Context, ownerKey, contentID string) (*domain.Content, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.GetContent(ctx, owner.ID, contentID)
}

func (s *ContentService) List(ctx context.Context, ownerKey string) ([]*domain.Content, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListContent(ctx, owner.ID)
}
