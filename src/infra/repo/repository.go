package repo

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// Document kinds.
const (
	kindOwner         = "owner"
	kindConsumer      = "consumer"
	kindConsumerType  = "consumer_type"
	kindEnvironment   = "environment"
	kindProduct       = "product"
	kindContent       = "content"
	kindPool          = "pool"
	kindEntitlement   = "entitlement"
	kindActivationKey = "activation_key"
	kindUser          = "user"
	kindRole          = "role"
	kindJob           = "job"
	kindEvent         = "event"
)

var _ ports.Repository = (*Repository)(nil)

// Repository implements ports.Repository over a Store.
type Repository struct {
	store Store
	log   *slog.Logger

	owners         collection[domain.Owner]
	consumers      collection[domain.Consumer]
	consumerTypes  collection[domain.ConsumerType]
	environments   collection[domain.Environment]
	products       collection[productRecord]
	content        collection[contentRecord]
	pools          collection[domain.Pool]
	entitlements   collection[domain.Entitlement]
	activationKeys collection[domain.ActivationKey]
	users          collection[domain.User]
	roles          collection[domain.Role]
	jobs           collection[domain.AsyncJobStatus]
	events         collection[domain.Event]
}

// New constructs a repository on top of store.
func New(store Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log,
		owners: collection[domain.Owner]{store, kindOwner, func(o *domain.Owner) Document {
			return Document{ID: o.ID, Key: o.Key, Created: o.Created, Updated: o.Updated}
		}},
		consumers: collection[domain.Consumer]{store, kindConsumer, func(c *domain.Consumer) Document {
			return Document{ID: c.ID, Key: c.UUID, Scope: c.OwnerID(), Created: c.Created, Updated: c.Updated}
		}},
		consumerTypes: collection[domain.ConsumerType]{store, kindConsumerType, func(t *domain.ConsumerType) Document {
			return Document{ID: t.ID, Key: t.Label, Created: t.Created, Updated: t.Updated}
		}},
		environments: collection[domain.Environment]{store, kindEnvironment, func(e *domain.Environment) Document {
			return Document{ID: e.ID, Scope: ownerID(e.Owner), Created: e.Created, Updated: e.Updated}
		}},
		products: collection[productRecord]{store, kindProduct, func(p *productRecord) Document {
			return Document{
				ID: p.Product.UUID, Key: scopedKey(p.OwnerID, p.Product.ID), Scope: p.OwnerID,
				Created: p.Product.Created, Updated: p.Product.Updated,
			}
		}},
		content: collection[contentRecord]{store, kindContent, func(c *contentRecord) Document {
			return Document{
				ID: c.Content.UUID, Key: scopedKey(c.OwnerID, c.Content.ID), Scope: c.OwnerID,
				Created: c.Content.Created, Updated: c.Content.Updated,
			}
		}},
		pools: collection[domain.Pool]{store, kindPool, func(p *domain.Pool) Document {
			return Document{ID: p.ID, Scope: ownerID(p.Owner), Created: p.Created, Updated: p.Updated}
		}},
		entitlements: collection[domain.Entitlement]{store, kindEntitlement, func(e *domain.Entitlement) Document {
			var scope string
			if e.Consumer != nil {
				scope = e.Consumer.UUID
			}
			return Document{ID: e.ID, Scope: scope, Created: e.Created, Updated: e.Updated}
		}},
		activationKeys: collection[domain.ActivationKey]{store, kindActivationKey, func(k *domain.ActivationKey) Document {
			owner := ownerID(k.Owner)
			return Document{ID: k.ID, Key: scopedKey(owner, k.Name), Scope: owner, Created: k.Created, Updated: k.Updated}
		}},
		users: collection[domain.User]{store, kindUser, func(u *domain.User) Document {
			return Document{ID: u.ID, Key: u.Username, Created: u.Created, Updated: u.Updated}
		}},
		roles: collection[domain.Role]{store, kindRole, func(r *domain.Role) Document {
			return Document{ID: r.ID, Key: r.Name, Created: r.Created, Updated: r.Updated}
		}},
		jobs: collection[domain.AsyncJobStatus]{store, kindJob, func(j *domain.AsyncJobStatus) Document {
			return Document{ID: j.ID, Scope: j.OwnerID, Created: j.Created, Updated: j.Updated}
		}},
		events: collection[domain.Event]{store, kindEvent, func(e *domain.Event) Document {
			return Document{ID: e.ID, Scope: e.OwnerID, Created: e.Timestamp, Updated: e.Timestamp}
		}},
	}
}

func (r *Repository) Health(ctx context.Context) error {
	return r.store.Health(ctx)
}

func ownerID(o *domain.Owner) string {
	if o == nil {
		return ""
	}
	return o.ID
}

func ownerRef(o *domain.Owner) *domain.Owner {
	if o == nil {
		return nil
	}
	return &domain.Owner{ID: o.ID}
}

// resolveOwner replaces an owner stub with the stored owner. Dangling
// references are returned as stored.
func (r *Repository) resolveOwner(ctx context.Context, o *domain.Owner) (*domain.Owner, error) {
	if o == nil || o.ID == "" {
		return o, nil
	}
	full, err := r.owners.get(ctx, o.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return o, nil
		}
		return nil, err
	}
	return full, nil
}
