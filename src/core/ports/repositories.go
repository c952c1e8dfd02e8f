// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"candlepin/src/core/domain"
)

// HealthChecker reports whether the underlying storage is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// OwnerRepository persists organizations.
type OwnerRepository interface {
	CreateOwner(ctx context.Context, o *domain.Owner) error
	UpdateOwner(ctx context.Context, o *domain.Owner) error
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
	GetOwnerByKey(ctx context.Context, key string) (*domain.Owner, error)
	ListOwners(ctx context.Context) ([]*domain.Owner, error)
}

// ConsumerRepository persists consumers, keyed by uuid.
type ConsumerRepository interface {
	CreateConsumer(ctx context.Context, c *domain.Consumer) error
	UpdateConsumer(ctx context.Context, c *domain.Consumer) error
	GetConsumer(ctx context.Context, uuid string) (*domain.Consumer, error)
	DeleteConsumer(ctx context.Context, uuid string) error
	ListConsumers(ctx context.Context, ownerID string) ([]*domain.Consumer, error)
}

// ConsumerTypeRepository persists consumer types, keyed by label.
type ConsumerTypeRepository interface {
	CreateConsumerType(ctx context.Context, t *domain.ConsumerType) error
	GetConsumerType(ctx context.Context, label string) (*domain.ConsumerType, error)
	ListConsumerTypes(ctx context.Context) ([]*domain.ConsumerType, error)
}

// EnvironmentRepository persists owner environments.
type EnvironmentRepository interface {
	CreateEnvironment(ctx context.Context, e *domain.Environment) error
	GetEnvironment(ctx context.Context, id string) (*domain.Environment, error)
	ListEnvironments(ctx context.Context, ownerID string) ([]*domain.Environment, error)
}

// ProductRepository persists products. Product ids are unique per owner.
type ProductRepository interface {
	CreateProduct(ctx context.Context, ownerID string, p *domain.Product) error
	UpdateProduct(ctx context.Context, ownerID string, p *domain.Product) error
	GetProduct(ctx context.Context, ownerID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error)
}

// ContentRepository persists content. Content ids are unique per owner.
type ContentRepository interface {
	CreateContent(ctx context.Context, ownerID string, c *domain.Content) error
	GetContent(ctx context.Context, ownerID, contentID string) (*domain.Content, error)
	ListContent(ctx context.Context, ownerID string) ([]*domain.Content, error)
}

// PoolRepository persists pools.
type PoolRepository interface {
	CreatePool(ctx context.Context, p *domain.Pool) error
	UpdatePool(ctx context.Context, p *domain.Pool) error
	GetPool(ctx context.Context, id string) (*domain.Pool, error)
	ListPools(ctx context.Context, ownerID string) ([]*domain.Pool, error)
}

// EntitlementRepository persists entitlements.
type EntitlementRepository interface {
	CreateEntitlement(ctx context.Context, e *domain.Entitlement) error
	GetEntitlement(ctx context.Context, id string) (*domain.Entitlement, error)
	DeleteEntitlement(ctx context.Context, id string) error
	ListEntitlements(ctx context.Context, consumerUUID string) ([]*domain.Entitlement, error)
}

// ActivationKeyRepository persists activation keys. Names are unique per owner.
type ActivationKeyRepository interface {
	CreateActivationKey(ctx context.Context, k *domain.ActivationKey) error
	UpdateActivationKey(ctx context.Context, k *domain.ActivationKey) error
	GetActivationKey(ctx context.Context, id string) (*domain.ActivationKey, error)
	ListActivationKeys(ctx context.Context, ownerID string) ([]*domain.ActivationKey, error)
}

// UserRepository persists users, keyed by username.
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, username string) (*domain.User, error)
}

// RoleRepository persists roles. Names are unique.
type RoleRepository interface {
	CreateRole(ctx context.Context, r *domain.Role) error
	UpdateRole(ctx context.Context, r *domain.Role) error
	GetRole(ctx context.Context, id string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
}

// JobFilter narrows a job listing. Empty fields match everything.
type JobFilter struct {
	IDs     []string
	Keys    []string
	States  []domain.JobState
	OwnerID string
}

// JobRepository persists async job statuses.
type JobRepository interface {
	SaveJob(ctx context.Context, j *domain.AsyncJobStatus) error
	GetJob(ctx context.Context, id string) (*domain.AsyncJobStatus, error)
	ListJobs(ctx context.Context, f JobFilter) ([]*domain.AsyncJobStatus, error)
}

// EventRepository persists audit events.
type EventRepository interface {
	CreateEvent(ctx context.Context, e *domain.Event) error
	ListEvents(ctx context.Context, limit int) ([]*domain.Event, error)
}

// Repository is the composite repository covering every aggregate.
type Repository interface {
	HealthChecker
	OwnerRepository
	ConsumerRepository
	ConsumerTypeRepository
	EnvironmentRepository
	ProductRepository
	ContentRepository
	PoolRepository
	EntitlementRepository
	ActivationKeyRepository
	UserRepository
	RoleRepository
	JobRepository
	EventRepository
}
