package usecase

import (
	"context"
	"log/slog"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// DefaultConsumerType is used when a registration names no type.
const DefaultConsumerType = "system"

// ConsumerService registers and maintains consumers.
type ConsumerService struct {
	repo ports.Repository
	ents *EntitlementService
	log  *slog.Logger
	emitter
}

func NewConsumerService(repo ports.Repository, ents *EntitlementService, events ports.EventPublisher, log *slog.Logger) *ConsumerService {
	return &ConsumerService{repo: repo, ents: ents, log: log, emitter: emitter{events, log}}
}

// ConsumerUpdate carries the fields a client may change. Nil fields are kept.
type ConsumerUpdate struct {
	Name              *string
	Facts             map[string]string
	InstalledProducts []domain.ConsumerInstalledProduct
	Capabilities      []domain.ConsumerCapability
	GuestIDs          []domain.GuestID
	ReleaseVer        *domain.Release
	ServiceLevel      *string
	Role              *string
	Usage             *string
	AddOns            []string
	ContentTags       []string
	Autoheal          *bool
	EnvironmentIDs    []string
}

// Register creates a consumer in the owner. Activation keys named in keyNames
// contribute their system purpose values and pools.
func (s *ConsumerService) Register(ctx context.Context, ownerKey string, c *domain.Consumer, keyNames []string) (*domain.Consumer, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("owner", "unknown owner "+ownerKey)
		}
		return nil, err
	}
	if c.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	label := DefaultConsumerType
	if c.Type != nil && c.Type.Label != "" {
		label = c.Type.Label
	}
	ctype, err := s.repo.GetConsumerType(ctx, label)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("type", "unknown consumer type "+label)
		}
		return nil, err
	}

	envs, err := s.environments(ctx, owner.ID, envIDs(c.Environments))
	if err != nil {
		return nil, err
	}
	keys, err := s.activationKeys(ctx, owner.ID, keyNames)
	if err != nil {
		return nil, err
	}

	c.ID = newID()
	c.UUID = newID()
	c.Owner = owner
	c.Type = ctype
	c.Environments = envs
	c.EntitlementCount = 0
	if c.ContentAccessMode == "" {
		c.ContentAccessMode = owner.ContentAccessMode
	}
	if p := PrincipalFrom(ctx); c.Username == "" && p != System {
		c.Username = p.Name
	}
	if c.HypervisorID != nil {
		c.HypervisorID.ID = newID()
		c.HypervisorID.OwnerID = owner.ID
	}
	for i := range c.GuestIDs {
		c.GuestIDs[i].ID = newID()
	}
	for _, k := range keys {
		applyActivationKey(c, k)
	}
	c.Created, c.Updated = now(), now()
	if err := s.repo.CreateConsumer(ctx, c); err != nil {
		return nil, err
	}

	log := s.log.With("owner", owner.Key, "consumer", c.UUID)
	log.Info("consumer registered", "type", label)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetConsumer, targetName: c.Name, entityID: c.ID, ownerID: owner.ID, consumerUUID: c.UUID})

	for _, k := range keys {
		for _, kp := range k.Pools {
			qty := 1
			if kp.Quantity != nil && *kp.Quantity > 0 {
				qty = int(*kp.Quantity)
			}
			if _, err := s.ents.Bind(ctx, c.UUID, kp.PoolID, qty); err != nil {
				log.Warn("activation key pool not attached", "key", k.Name, "pool_id", kp.PoolID, "error", err)
			}
		}
	}
	if len(keys) > 0 {
		return s.repo.GetConsumer(ctx, c.UUID)
	}
	return c, nil
}

// applyActivationKey copies the key's system purpose into fields the
// consumer left unset and records the key.
func applyActivationKey(c *domain.Consumer, k *domain.ActivationKey) {
	if c.ServiceLevel == "" {
		c.ServiceLevel = k.ServiceLevel
	}
	if c.Role == "" {
		c.Role = k.Role
	}
	if c.Usage == "" {
		c.Usage = k.Usage
	}
	if len(c.AddOns) == 0 && len(k.AddOns) > 0 {
		c.AddOns = append([]string(nil), k.AddOns...)
	}
	if c.ReleaseVer == nil && k.ReleaseVer != nil {
		r := *k.ReleaseVer
		c.ReleaseVer = &r
	}
	c.ActivationKeys = append(c.ActivationKeys, domain.ConsumerActivationKey{
		ActivationKeyID:   k.ID,
		ActivationKeyName: k.Name,
	})
}

func envIDs(envs []*domain.Environment) []string {
	ids := make([]string, 0, len(envs))
	for _, e := range envs {
		if e != nil {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// environments loads the environments in the given priority order,
// dropping duplicates.
func (s *ConsumerService) environments(ctx context.Context, ownerID string, ids []string) ([]*domain.Environment, error) {
	var out []*domain.Environment
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		e, err := s.repo.GetEnvironment(ctx, id)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("environments", "unknown environment "+id)
			}
			return nil, err
		}
		if e.Owner == nil || e.Owner.ID != ownerID {
			return nil, domain.NewValidationError("environments", "environment "+id+" belongs to another owner")
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *ConsumerService) activationKeys(ctx context.Context, ownerID string, names []string) ([]*domain.ActivationKey, error) {
	if len(names) == 0 {
		return nil, nil
	}
	all, err := s.repo.ListActivationKeys(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.ActivationKey, len(all))
	for _, k := range all {
		byName[k.Name] = k
	}
	out := make([]*domain.ActivationKey, 0, len(names))
	for _, n := range names {
		k, ok := byName[n]
		if !ok {
			return nil, domain.NewValidationError("activation_keys", "unknown activation key "+n)
		}
		out = append(out, k)
	}
	return out, nil
}

func (s *ConsumerService) Get(ctx context.Context, uuid string) (*domain.Consumer, error) {
	return s.repo.GetConsumer(ctx, uuid)
}

func (s *ConsumerService) List(ctx context.Context, ownerKey string) ([]*domain.Consumer, error) {
	owner, err := s.repo.GetOwnerByKey(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListConsumers(ctx, owner.ID)
}

// GuestIDs returns the guests a hypervisor consumer reported.
func (s *ConsumerService) GuestIDs(ctx context.Context, uuid string) ([]domain.GuestID, error) {
	c, err := s.repo.GetConsumer(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return c.GuestIDs, nil
}

func (s *ConsumerService) Update(ctx context.Context, uuid string, u ConsumerUpdate) (*domain.Consumer, error) {
	defer s.ents.locks.Lock("consumer:" + uuid)()

	c, err := s.repo.GetConsumer(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		if *u.Name == "" {
			return nil, domain.NewValidationError("name", "must not be empty")
		}
		c.Name = *u.Name
	}
	if u.Facts != nil {
		c.Facts = u.Facts
	}
	if u.InstalledProducts != nil {
		c.InstalledProducts = u.InstalledProducts
	}
	if u.Capabilities != nil {
		c.Capabilities = u.Capabilities
	}
	if u.GuestIDs != nil {
		c.GuestIDs = mergeGuestIDs(c.GuestIDs, u.GuestIDs)
	}
	if u.ReleaseVer != nil {
		c.ReleaseVer = u.ReleaseVer
	}
	setString(&c.ServiceLevel, u.ServiceLevel)
	setString(&c.Role, u.Role)
	setString(&c.Usage, u.Usage)
	if u.AddOns != nil {
		c.AddOns = u.AddOns
	}
	if u.ContentTags != nil {
		c.ContentTags = u.ContentTags
	}
	if u.Autoheal != nil {
		c.Autoheal = *u.Autoheal
	}
	if u.EnvironmentIDs != nil {
		if c.Environments, err = s.environments(ctx, c.OwnerID(), u.EnvironmentIDs); err != nil {
			return nil, err
		}
	}

	c.Updated = now()
	if err := s.repo.UpdateConsumer(ctx, c); err != nil {
		return nil, err
	}
	s.emit(ctx, eventInfo{typ: domain.EventModified, target: domain.TargetConsumer, targetName: c.Name, entityID: c.ID, ownerID: c.OwnerID(), consumerUUID: c.UUID})
	return c, nil
}

// mergeGuestIDs replaces the guest list, keeping the ids and creation time of
// guests that were already known.
func mergeGuestIDs(old, next []domain.GuestID) []domain.GuestID {
	known := make(map[string]domain.GuestID, len(old))
	for _, g := range old {
		known[g.GuestID] = g
	}
	out := make([]domain.GuestID, 0, len(next))
	seen := make(map[string]bool, len(next))
	for _, g := range next {
		if g.GuestID == "" || seen[g.GuestID] {
			continue
		}
		seen[g.GuestID] = true
		if prev, ok := known[g.GuestID]; ok {
			g.ID, g.Created = prev.ID, prev.Created
		} else {
			g.ID, g.Created = newID(), now()
		}
		g.Updated = now()
		out = append(out, g)
	}
	return out
}

// Delete unregisters a consumer, revoking its entitlements first.
func (s *ConsumerService) Delete(ctx context.Context, uuid string) error {
	c, err := s.repo.GetConsumer(ctx, uuid)
	if err != nil {
		return err
	}
	ents, err := s.repo.ListEntitlements(ctx, uuid)
	if err != nil {
		return err
	}
	for _, ent := range ents {
		if err := s.ents.revoke(ctx, ent); err != nil {
			return err
		}
	}
	if err := s.repo.DeleteConsumer(ctx, uuid); err != nil {
		return err
	}

	s.log.Info("consumer deleted", "consumer", uuid, "entitlements", len(ents))
	s.emit(ctx, eventInfo{typ: domain.EventDeleted, target: domain.TargetConsumer, targetName: c.Name, entityID: c.ID, ownerID: c.OwnerID(), consumerUUID: c.UUID})
	return nil
}
