package usecase

import (
	"context"
	"io"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// ImportJobKey identifies manifest import jobs.
const ImportJobKey = "ImportJob"

// ImportOptions are the caller-supplied import settings.
type ImportOptions struct {
	// Force accepts a manifest from a distributor other than the owner's
	// current upstream consumer.
	Force bool
}

// ImportResult summarizes what an import changed.
type ImportResult struct {
	Upstream    string `json:"upstreamConsumer"`
	Products    int    `json:"products"`
	Created     int    `json:"poolsCreated"`
	Updated     int    `json:"poolsUpdated"`
	Deactivated int    `json:"poolsDeactivated"`
}

// ImportService loads manifests into an owner: products and content are
// stored locked, and every upstream entitlement becomes a pool.
type ImportService struct {
	repo   ports.Repository
	reader ports.ManifestReader
	ents   *EntitlementService
	jobs   jobRecorder
	log    *slog.Logger
	emitter
}

func NewImportService(repo ports.Repository, reader ports.ManifestReader, ents *EntitlementService, events ports.EventPublisher, log *slog.Logger) *ImportService {
	return &ImportService{repo: repo, reader: reader, ents: ents, jobs: jobRecorder{repo}, log: log, emitter: emitter{events, log}}
}

// Import reads the manifest in r into the owner. The returned job is in a
// terminal state whether or not the import succeeded.
func (s *ImportService) Import(ctx context.Context, ownerKey string, r io.ReaderAt, size int64, opts ImportOptions) (*domain.AsyncJobStatus, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	job := newJob(ImportJobKey, "Import Manifest", PrincipalFrom(ctx))
	job.OwnerID = owner.ID

	var res *ImportResult
	runErr, err := s.jobs.run(ctx, job, func() (any, error) {
		var err error
		res, err = s.run(ctx, owner, r, size, opts)
		return res, err
	})
	if err != nil {
		return nil, err
	}

	log := s.log.With("job_id", job.ID, "owner", owner.Key)
	if runErr != nil {
		log.Warn("manifest import failed", "error", runErr)
		return job, runErr
	}
	log.Info("manifest imported",
		"upstream", res.Upstream,
		"products", res.Products,
		"pools_created", res.Created,
		"pools_updated", res.Updated,
		"pools_deactivated", res.Deactivated,
	)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetImport, targetName: owner.Key, entityID: job.ID, ownerID: owner.ID})
	return job, nil
}

func (s *ImportService) run(ctx context.Context, owner *domain.Owner, r io.ReaderAt, size int64, opts ImportOptions) (*ImportResult, error) {
	contents, err := s.reader.Read(ctx, r, size)
	if err != nil {
		return nil, err
	}
	upstream := contents.Upstream
	if prev := owner.Upstream; prev != nil && prev.UUID != upstream.UUID && !opts.Force {
		return nil, domain.NewConflictError("owner " + owner.Key + " imports manifests from distributor " + prev.UUID + ", not " + upstream.UUID)
	}

	products, err := s.importProducts(ctx, owner.ID, contents.Products)
	if err != nil {
		return nil, err
	}
	res := &ImportResult{Upstream: upstream.UUID, Products: len(contents.Products)}
	if err := s.importPools(ctx, owner, contents, products, res); err != nil {
		return nil, err
	}

	if prev := owner.Upstream; prev != nil && prev.UUID == upstream.UUID {
		upstream.ID, upstream.Created = prev.ID, prev.Created
	} else {
		upstream.ID, upstream.Created = newID(), now()
	}
	upstream.Updated = now()
	refreshed := now()
	owner.Upstream = upstream
	owner.LastRefreshed = &refreshed
	owner.Updated = refreshed
	if err := s.repo.UpdateOwner(ctx, owner); err != nil {
		return nil, err
	}
	return res, nil
}

// importProducts stores the manifest products as locked products of the
// owner, replacing earlier versions, and returns them by product id.
func (s *ImportService) importProducts(ctx context.Context, ownerID string, in []*domain.Product) (map[string]*domain.Product, error) {
	existing := make(map[string]*domain.Product, len(in))
	uuids := make(map[string]string, len(in))
	for _, p := range in {
		prev, err := s.repo.GetProduct(ctx, ownerID, p.ID)
		switch {
		case err == nil:
			existing[p.ID] = prev
			uuids[p.ID] = prev.UUID
		case domain.IsNotFound(err):
			uuids[p.ID] = newID()
		default:
			return nil, err
		}
	}

	ref := func(p *domain.Product) (*domain.Product, error) {
		if uuid, ok := uuids[p.ID]; ok {
			return &domain.Product{UUID: uuid, ID: p.ID}, nil
		}
		stored, err := s.repo.GetProduct(ctx, ownerID, p.ID)
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("manifest", "unknown product "+p.ID)
		}
		return stored, err
	}

	out := make(map[string]*domain.Product, len(in))
	for _, p := range in {
		if p.DerivedProduct != nil {
			derived, err := ref(p.DerivedProduct)
			if err != nil {
				return nil, err
			}
			p.DerivedProduct = derived
		}
		for i, pp := range p.ProvidedProducts {
			provided, err := ref(pp)
			if err != nil {
				return nil, err
			}
			p.ProvidedProducts[i] = provided
		}
		content := p.ProductContent[:0]
		for _, pc := range p.ProductContent {
			if pc.Content == nil {
				continue
			}
			c, err := s.importContent(ctx, ownerID, pc.Content)
			if err != nil {
				return nil, err
			}
			content = append(content, domain.ProductContent{Content: c, Enabled: pc.Enabled})
		}
		p.ProductContent = content

		if p.Multiplier < 1 {
			p.Multiplier = 1
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		p.Locked = true
		p.UUID = uuids[p.ID]
		p.Updated = now()
		if prev, ok := existing[p.ID]; ok {
			p.Created = prev.Created
			if err := s.repo.UpdateProduct(ctx, ownerID, p); err != nil {
				return nil, err
			}
		} else {
			p.Created = now()
			if err := s.repo.CreateProduct(ctx, ownerID, p); err != nil {
				return nil, err
			}
		}
		out[p.ID] = p
	}
	return out, nil
}

// importContent returns the owner's content with c's id, creating it when
// missing. Existing content is kept as is.
func (s *ImportService) importContent(ctx context.Context, ownerID string, c *domain.Content) (*domain.Content, error) {
	stored, err := s.repo.GetContent(ctx, ownerID, c.ID)
	if err == nil || !domain.IsNotFound(err) {
		return stored, err
	}
	if c.ID == "" {
		return nil, domain.NewValidationError("manifest", "content without an id")
	}
	c.UUID = newID()
	c.Locked = true
	c.Created, c.Updated = now(), now()
	if err := s.repo.CreateContent(ctx, ownerID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// importPools creates or refreshes one pool per upstream entitlement. Pools
// from earlier imports whose entitlement is gone are emptied and deactivated;
// entitlements already drawn from them stay until revoked.
func (s *ImportService) importPools(ctx context.Context, owner *domain.Owner, contents *ports.ManifestContents, products map[string]*domain.Product, res *ImportResult) error {
	pools, err := s.repo.ListPools(ctx, owner.ID)
	if err != nil {
		return err
	}
	imported := make(map[string]string)
	for _, p := range pools {
		if p.UpstreamEntitlementID != "" {
			imported[p.UpstreamEntitlementID] = p.ID
		}
	}

	for _, sub := range contents.Subscriptions {
		product, ok := products[sub.Product.ID]
		if !ok {
			product, err = s.repo.GetProduct(ctx, owner.ID, sub.Product.ID)
			if domain.IsNotFound(err) {
				return domain.NewValidationError("manifest", "entitlement "+sub.UpstreamEntitlementID+" references unknown product "+sub.Product.ID)
			}
			if err != nil {
				return err
			}
		}

		sub.Product = product
		sub.Quantity = product.PoolQuantity(sub.Quantity, sub.UpstreamPoolID)
		if sub.StartDate.IsZero() {
			sub.StartDate = now()
		}
		if sub.EndDate.IsZero() {
			sub.EndDate = sub.StartDate.AddDate(1, 0, 0)
		}
		if contents.CdnLabel != "" {
			sub.Cdn = &domain.Cdn{Label: contents.CdnLabel}
		}

		if id, ok := imported[sub.UpstreamEntitlementID]; ok {
			delete(imported, sub.UpstreamEntitlementID)
			if err := s.refreshPool(ctx, id, func(p *domain.Pool) { applySubscription(p, sub) }); err != nil {
				return err
			}
			res.Updated++
			continue
		}

		sub.ID = newID()
		sub.Type = domain.PoolNormal
		sub.Owner = owner
		sub.SubscriptionID = newID()
		sub.SubscriptionSubKey = "master"
		sub.ActiveSubscription = true
		sub.Created, sub.Updated = now(), now()
		if err := s.repo.CreatePool(ctx, sub); err != nil {
			return err
		}
		res.Created++
	}

	for _, id := range imported {
		err := s.refreshPool(ctx, id, func(p *domain.Pool) {
			p.Quantity = 0
			p.ActiveSubscription = false
		})
		if err != nil {
			return err
		}
		res.Deactivated++
	}
	return nil
}

// refreshPool reloads and updates a pool while holding its bind lock.
func (s *ImportService) refreshPool(ctx context.Context, id string, change func(*domain.Pool)) error {
	defer s.ents.locks.Lock("pool:" + id)()

	p, err := s.repo.GetPool(ctx, id)
	if err != nil {
		return err
	}
	change(p)
	p.Updated = now()
	return s.repo.UpdatePool(ctx, p)
}

func applySubscription(p *domain.Pool, sub *domain.Pool) {
	p.Product = sub.Product
	p.Quantity = sub.Quantity
	p.StartDate = sub.StartDate
	p.EndDate = sub.EndDate
	p.ContractNumber = sub.ContractNumber
	p.AccountNumber = sub.AccountNumber
	p.OrderNumber = sub.OrderNumber
	p.UpstreamPoolID = sub.UpstreamPoolID
	p.UpstreamConsumerID = sub.UpstreamConsumerID
	p.Cert = sub.Cert
	p.Cdn = sub.Cdn
	p.ActiveSubscription = true
}
