package repo

import (
	"context"

	"candlepin/src/core/domain"
)

// Owners

func (r *Repository) CreateOwner(ctx context.Context, o *domain.Owner) error {
	return r.owners.insert(ctx, storedOwner(o))
}

func (r *Repository) UpdateOwner(ctx context.Context, o *domain.Owner) error {
	return r.owners.update(ctx, storedOwner(o))
}

func storedOwner(o *domain.Owner) *domain.Owner {
	s := *o
	s.ParentOwner = ownerRef(o.ParentOwner)
	return &s
}

func (r *Repository) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	o, err := r.owners.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.hydrateOwner(ctx, o)
}

func (r *Repository) GetOwnerByKey(ctx context.Context, key string) (*domain.Owner, error) {
	o, err := r.owners.getByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return r.hydrateOwner(ctx, o)
}

func (r *Repository) ListOwners(ctx context.Context) ([]*domain.Owner, error) {
	owners, err := r.owners.list(ctx, "")
	if err != nil {
		return nil, err
	}
	for i, o := range owners {
		if owners[i], err = r.hydrateOwner(ctx, o); err != nil {
			return nil, err
		}
	}
	return owners, nil
}

// hydrateOwner loads the parent owner one level deep.
func (r *Repository) hydrateOwner(ctx context.Context, o *domain.Owner) (*domain.Owner, error) {
	parent, err := r.resolveOwner(ctx, o.ParentOwner)
	if err != nil {
		return nil, err
	}
	o.ParentOwner = parent
	return o, nil
}

// Consumer types

func (r *Repository) CreateConsumerType(ctx context.Context, t *domain.ConsumerType) error {
	return r.consumerTypes.insert(ctx, t)
}

func (r *Repository) GetConsumerType(ctx context.Context, label string) (*domain.ConsumerType, error) {
	return r.consumerTypes.getByKey(ctx, label)
}

func (r *Repository) ListConsumerTypes(ctx context.Context) ([]*domain.ConsumerType, error) {
	return r.consumerTypes.list(ctx, "")
}

// Environments

func (r *Repository) CreateEnvironment(ctx context.Context, e *domain.Environment) error {
	s := *e
	s.Owner = ownerRef(e.Owner)
	return r.environments.insert(ctx, &s)
}

func (r *Repository) GetEnvironment(ctx context.Context, id string) (*domain.Environment, error) {
	e, err := r.environments.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Owner, err = r.resolveOwner(ctx, e.Owner); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) ListEnvironments(ctx context.Context, ownerID string) ([]*domain.Environment, error) {
	envs, err := r.environments.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, e := range envs {
		if e.Owner, err = r.resolveOwner(ctx, e.Owner); err != nil {
			return nil, err
		}
	}
	return envs, nil
}

// Consumers

func (r *Repository) CreateConsumer(ctx context.Context, c *domain.Consumer) error {
	return r.consumers.insert(ctx, storedConsumer(c))
}

func (r *Repository) UpdateConsumer(ctx context.Context, c *domain.Consumer) error {
	return r.consumers.update(ctx, storedConsumer(c))
}

func storedConsumer(c *domain.Consumer) *domain.Consumer {
	s := *c
	s.Owner = ownerRef(c.Owner)
	if c.Type != nil {
		s.Type = &domain.ConsumerType{Label: c.Type.Label}
	}
	s.Environments = nil
	for _, e := range c.Environments {
		if e != nil {
			s.Environments = append(s.Environments, &domain.Environment{ID: e.ID})
		}
	}
	return &s
}

func (r *Repository) GetConsumer(ctx context.Context, uuid string) (*domain.Consumer, error) {
	c, err := r.consumers.getByKey(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return r.hydrateConsumer(ctx, c)
}

func (r *Repository) DeleteConsumer(ctx context.Context, uuid string) error {
	c, err := r.consumers.getByKey(ctx, uuid)
	if err != nil {
		return err
	}
	return r.consumers.delete(ctx, c.ID)
}

func (r *Repository) ListConsumers(ctx context.Context, ownerID string) ([]*domain.Consumer, error) {
	consumers, err := r.consumers.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i, c := range consumers {
		if consumers[i], err = r.hydrateConsumer(ctx, c); err != nil {
			return nil, err
		}
	}
	return consumers, nil
}

func (r *Repository) hydrateConsumer(ctx context.Context, c *domain.Consumer) (*domain.Consumer, error) {
	var err error
	if c.Owner, err = r.resolveOwner(ctx, c.Owner); err != nil {
		return nil, err
	}
	if c.Type != nil && c.Type.Label != "" {
		t, err := r.consumerTypes.getByKey(ctx, c.Type.Label)
		switch {
		case err == nil:
			c.Type = t
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	for i, ref := range c.Environments {
		e, err := r.GetEnvironment(ctx, ref.ID)
		switch {
		case err == nil:
			c.Environments[i] = e
		case !domain.IsNotFound(err):
			return nil, err
		}
	}
	return c, nil
}
