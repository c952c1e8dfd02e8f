package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// DefaultConsumerTypes are seeded on startup. Only candlepin consumers are
// distributors that may export manifests.
var DefaultConsumerTypes = []domain.ConsumerType{
	{Label: "system"},
	{Label: "person"},
	{Label: "domain"},
	{Label: "hypervisor"},
	{Label: "candlepin", Manifest: true},
	{Label: "share"},
}

// Bootstrap seeds the data every deployment needs.
type Bootstrap struct {
	repo  ports.Repository
	users *UserService
	log   *slog.Logger
}

func NewBootstrap(repo ports.Repository, users *UserService, log *slog.Logger) *Bootstrap {
	return &Bootstrap{repo: repo, users: users, log: log}
}

// Run creates missing consumer types and the super-admin. It is safe to run
// on every start.
func (b *Bootstrap) Run(ctx context.Context, adminUser, adminPassword string) error {
	for _, t := range DefaultConsumerTypes {
		t := t
		_, err := b.repo.GetConsumerType(ctx, t.Label)
		if err == nil {
			continue
		}
		if !domain.IsNotFound(err) {
			return err
		}
		t.ID = newID()
		t.Created, t.Updated = now(), now()
		if err := b.repo.CreateConsumerType(ctx, &t); err != nil && !domain.IsAlreadyExists(err) {
			return err
		}
		b.log.Debug("consumer type created", "label", t.Label)
	}

	if adminUser == "" {
		return nil
	}
	if _, err := b.users.EnsureAdmin(ctx, adminUser, adminPassword); err != nil {
		return err
	}
	b.log.Info("bootstrap complete", "admin", adminUser)
	return nil
}
