package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
	"candlepin/src/infra/crypto"
	"candlepin/src/infra/logger"
	"candlepin/src/infra/repo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e *domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) targets() []domain.EventTarget {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.EventTarget
	for _, e := range p.events {
		out = append(out, e.Target)
	}
	return out
}

type fakeWriter struct {
	bundle *ports.ManifestBundle
	err    error
}

func (w *fakeWriter) Write(_ context.Context, out io.Writer, b *ports.ManifestBundle) error {
	w.bundle = b
	if w.err != nil {
		return w.err
	}
	_, err := out.Write([]byte("zip"))
	return err
}

type fixture struct {
	repo      *repo.Repository
	events    *recordingPublisher
	owners    *OwnerService
	products  *ProductService
	content   *ContentService
	pools     *PoolService
	ents      *EntitlementService
	consumers *ConsumerService
	keys      *ActivationKeyService
	users     *UserService
	roles     *RoleService
	jobs      *JobService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Nop()
	r := repo.New(repo.NewMemoryStore(), log)
	ev := &recordingPublisher{}
	ents := NewEntitlementService(r, ev, log)
	users := NewUserService(r, crypto.BcryptHasher{Cost: bcrypt.MinCost}, ev, log)
	f := &fixture{
		repo:      r,
		events:    ev,
		owners:    NewOwnerService(r, ev, log),
		products:  NewProductService(r, ev, log),
		content:   NewContentService(r, ev, log),
		pools:     NewPoolService(r, ev, log),
		ents:      ents,
		consumers: NewConsumerService(r, ents, ev, log),
		keys:      NewActivationKeyService(r, ev, log),
		users:     users,
		roles:     NewRoleService(r, ev, log),
		jobs:      NewJobService(r, log),
	}
	require.NoError(t, NewBootstrap(r, users, log).Run(context.Background(), "admin", "secret"))
	return f
}

// seed creates owner "acme" with product "sku" and a pool of 10.
func (f *fixture) seed(t *testing.T) (*domain.Owner, *domain.Pool) {
	t.Helper()
	ctx := context.Background()
	owner, err := f.owners.Create(ctx, &domain.Owner{Key: "acme"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, "acme", &domain.Product{ID: "sku", Name: "SKU"})
	require.NoError(t, err)
	pool, err := f.pools.Create(ctx, "acme", "sku", &domain.Pool{Quantity: 10})
	require.NoError(t, err)
	return owner, pool
}

func TestOwnerService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.owners.Create(ctx, &domain.Owner{Key: "bad key"})
	assert.True(t, domain.IsValidationError(err))

	parent, err := f.owners.Create(ctx, &domain.Owner{Key: "parent"})
	require.NoError(t, err)
	child, err := f.owners.Create(ctx, &domain.Owner{Key: "child", ParentOwner: &domain.Owner{Key: "parent"}})
	require.NoError(t, err)
	assert.Equal(t, "child", child.DisplayName)
	assert.Equal(t, parent.ID, child.ParentOwner.ID)
	assert.Equal(t, domain.ContentAccessEntitlement, child.ContentAccessMode)

	_, err = f.owners.Create(ctx, &domain.Owner{Key: "child"})
	assert.True(t, domain.IsAlreadyExists(err))

	name := "Child Org"
	disabled := true
	empty := ""
	updated, err := f.owners.Update(ctx, "child", OwnerChanges{DisplayName: &name, AutobindDisabled: &disabled, ParentKey: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Child Org", updated.DisplayName)
	assert.True(t, updated.AutobindDisabled)
	assert.Nil(t, updated.ParentOwner)

	mode := domain.ContentAccessOrgEnv
	_, err = f.owners.Update(ctx, "child", OwnerChanges{ContentAccessMode: &mode})
	assert.True(t, domain.IsValidationError(err))

	self := "child"
	_, err = f.owners.Update(ctx, "child", OwnerChanges{ParentKey: &self})
	assert.True(t, domain.IsValidationError(err))

	assert.Contains(t, f.events.targets(), domain.TargetOwner)
}

func TestProductService_ResolvesReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.owners.Create(ctx, &domain.Owner{Key: "acme"})
	require.NoError(t, err)

	_, err = f.content.Create(ctx, "acme", &domain.Content{ID: "c1", Label: "base", Name: "Base", Type: "yum"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, "acme", &domain.Product{ID: "eng", Name: "Engineering"})
	require.NoError(t, err)

	p, err := f.products.Create(ctx, "acme", &domain.Product{
		ID:               "sku",
		Name:             "SKU",
		ProvidedProducts: []*domain.Product{{ID: "eng"}},
		ProductContent:   []domain.ProductContent{{Content: &domain.Content{ID: "c1"}, Enabled: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Multiplier)

	got, err := f.products.Get(ctx, "acme", "sku")
	require.NoError(t, err)
	require.Len(t, got.ProvidedProducts, 1)
	assert.Equal(t, "Engineering", got.ProvidedProducts[0].Name)
	assert.Equal(t, "base", got.ProductContent[0].Content.Label)

	_, err = f.products.Create(ctx, "acme", &domain.Product{ID: "x", Name: "X", DerivedProduct: &domain.Product{ID: "missing"}})
	assert.True(t, domain.IsValidationError(err))

	_, err = f.products.Update(ctx, "acme", "sku", &domain.Product{Multiplier: 4})
	require.NoError(t, err)
	got, err = f.products.Get(ctx, "acme", "sku")
	require.NoError(t, err)
	assert.Equal(t, "SKU", got.Name)
	assert.Equal(t, int64(4), got.Multiplier)
	assert.Equal(t, p.UUID, got.UUID)
}

func TestPoolService_MultipliesQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.owners.Create(ctx, &domain.Owner{Key: "acme"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, "acme", &domain.Product{
		ID: "sku", Name: "SKU", Multiplier: 2,
		Attributes: map[string]string{domain.AttrInstanceMultiplier: "3"},
	})
	require.NoError(t, err)

	pool, err := f.pools.Create(ctx, "acme", "sku", &domain.Pool{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(30), pool.Quantity)
	assert.Equal(t, domain.PoolNormal, pool.Type)
	assert.True(t, pool.EndDate.After(pool.StartDate))

	upstream, err := f.pools.Create(ctx, "acme", "sku", &domain.Pool{Quantity: 5, UpstreamPoolID: "up"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), upstream.Quantity)

	_, err = f.pools.Create(ctx, "acme", "nope", &domain.Pool{Quantity: 1})
	assert.True(t, domain.IsValidationError(err))

	subs, err := f.pools.ListSubscriptionPools(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestEntitlementService_BindAndRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)

	c, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "box"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "system", c.Type.Label)

	ent, err := f.ents.Bind(ctx, c.UUID, pool.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, ent.Quantity)

	_, err = f.ents.Bind(ctx, c.UUID, pool.ID, 7)
	assert.True(t, domain.IsConflict(err))
	_, err = f.ents.Bind(ctx, c.UUID, pool.ID, 0)
	assert.True(t, domain.IsValidationError(err))

	got, err := f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Consumed)
	assert.Zero(t, got.Exported)

	consumer, err := f.consumers.Get(ctx, c.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), consumer.EntitlementCount)

	require.NoError(t, f.ents.Revoke(ctx, ent.ID))
	got, err = f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Consumed)

	_, err = f.ents.Get(ctx, ent.ID)
	assert.True(t, domain.IsNotFound(err))
}

// slowStore delays reads the way a database round trip would.
type slowStore struct {
	*repo.MemoryStore
}

func (s slowStore) Get(ctx context.Context, kind, id string) (*repo.Document, error) {
	time.Sleep(time.Millisecond)
	return s.MemoryStore.Get(ctx, kind, id)
}

func TestEntitlementService_ConcurrentBindsDoNotOversell(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()
	r := repo.New(slowStore{repo.NewMemoryStore()}, log)
	ev := &recordingPublisher{}
	f := &fixture{
		repo:     r,
		owners:   NewOwnerService(r, ev, log),
		products: NewProductService(r, ev, log),
		pools:    NewPoolService(r, ev, log),
		ents:     NewEntitlementService(r, ev, log),
	}
	f.consumers = NewConsumerService(r, f.ents, ev, log)
	require.NoError(t, NewBootstrap(r, nil, log).Run(ctx, "", ""))
	_, pool := f.seed(t)

	consumers := make([]*domain.Consumer, 5)
	for i := range consumers {
		c, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "box"}, nil)
		require.NoError(t, err)
		consumers[i] = c
	}

	var (
		wg        sync.WaitGroup
		bound     atomic.Int64
		conflicts atomic.Int64
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(c *domain.Consumer) {
			defer wg.Done()
			_, err := f.ents.Bind(ctx, c.UUID, pool.ID, 1)
			switch {
			case err == nil:
				bound.Add(1)
			case domain.IsConflict(err):
				conflicts.Add(1)
			default:
				t.Errorf("bind: %v", err)
			}
		}(consumers[i%len(consumers)])
	}
	wg.Wait()

	assert.Equal(t, int64(10), bound.Load())
	assert.Equal(t, int64(10), conflicts.Load())

	got, err := f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Consumed)

	var total int64
	for _, c := range consumers {
		stored, err := f.consumers.Get(ctx, c.UUID)
		require.NoError(t, err)
		ents, err := f.ents.ListForConsumer(ctx, c.UUID)
		require.NoError(t, err)
		assert.Equal(t, int64(len(ents)), stored.EntitlementCount)
		total += stored.EntitlementCount
	}
	assert.Equal(t, int64(10), total)
	assert.Zero(t, f.ents.locks.held())
}

func TestEntitlementService_ConcurrentRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)
	c, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "box"}, nil)
	require.NoError(t, err)
	ent, err := f.ents.Bind(ctx, c.UUID, pool.ID, 3)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		revoked  atomic.Int64
		notFound atomic.Int64
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := f.ents.Revoke(ctx, ent.ID); {
			case err == nil:
				revoked.Add(1)
			case domain.IsNotFound(err):
				notFound.Add(1)
			default:
				t.Errorf("revoke: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), revoked.Load())
	assert.Equal(t, int64(3), notFound.Load())
	got, err := f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Consumed)
}

func TestKeyedMutex(t *testing.T) {
	var k keyedMutex
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("pool:1")
			defer unlock()
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, k.held())

	// Different keys do not block each other.
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.held())
	unlockB()
	unlockA()
	assert.Zero(t, k.held())
}

func TestEntitlementService_OtherOwnerPool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)
	_, err := f.owners.Create(ctx, &domain.Owner{Key: "other"})
	require.NoError(t, err)

	c, err := f.consumers.Register(ctx, "other", &domain.Consumer{Name: "box"}, nil)
	require.NoError(t, err)
	_, err = f.ents.Bind(ctx, c.UUID, pool.ID, 1)
	assert.True(t, domain.IsForbidden(err))
}

func TestConsumerService_RegisterWithActivationKey(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{Type: "user", Name: "alice"})
	f := newFixture(t)
	owner, pool := f.seed(t)

	env, err := f.owners.CreateEnvironment(ctx, "acme", &domain.Environment{Name: "dev"})
	require.NoError(t, err)

	two := int64(2)
	key, err := f.keys.Create(ctx, "acme", &domain.ActivationKey{
		Name:         "default-key",
		ServiceLevel: "Premium",
		ReleaseVer:   &domain.Release{ReleaseVer: "8.6"},
		Pools:        []domain.ActivationKeyPool{{PoolID: pool.ID, Quantity: &two}},
	})
	require.NoError(t, err)

	c, err := f.consumers.Register(ctx, "acme", &domain.Consumer{
		Name:         "box",
		Environments: []*domain.Environment{{ID: env.ID}},
		GuestIDs:     []domain.GuestID{{GuestID: "g1"}},
	}, []string{"default-key"})
	require.NoError(t, err)

	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, "Premium", c.ServiceLevel)
	assert.Equal(t, "8.6", c.ReleaseVer.ReleaseVer)
	assert.Equal(t, owner.ContentAccessMode, c.ContentAccessMode)
	require.Len(t, c.ActivationKeys, 1)
	assert.Equal(t, key.ID, c.ActivationKeys[0].ActivationKeyID)
	assert.Equal(t, int64(2), c.EntitlementCount)
	require.Len(t, c.Environments, 1)
	assert.Equal(t, "dev", c.Environments[0].Name)

	guests, err := f.consumers.GuestIDs(ctx, c.UUID)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.NotEmpty(t, guests[0].ID)

	_, err = f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "x"}, []string{"nope"})
	assert.True(t, domain.IsValidationError(err))
	_, err = f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "x", Type: &domain.ConsumerType{Label: "toaster"}}, nil)
	assert.True(t, domain.IsValidationError(err))
	_, err = f.consumers.Register(ctx, "missing", &domain.Consumer{Name: "x"}, nil)
	assert.True(t, domain.IsValidationError(err))
}

func TestConsumerService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)

	c, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "box", GuestIDs: []domain.GuestID{{GuestID: "g1"}}}, nil)
	require.NoError(t, err)
	firstGuest := c.GuestIDs[0].ID

	name := "renamed"
	heal := true
	updated, err := f.consumers.Update(ctx, c.UUID, ConsumerUpdate{
		Name:     &name,
		Autoheal: &heal,
		Facts:    map[string]string{domain.FactVirtIsGuest: "TRUE"},
		GuestIDs: []domain.GuestID{{GuestID: "g1"}, {GuestID: "g2"}, {GuestID: "g2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.True(t, updated.Autoheal)
	assert.True(t, updated.IsGuest())
	require.Len(t, updated.GuestIDs, 2)
	assert.Equal(t, firstGuest, updated.GuestIDs[0].ID)

	_, err = f.ents.Bind(ctx, c.UUID, pool.ID, 3)
	require.NoError(t, err)

	require.NoError(t, f.consumers.Delete(ctx, c.UUID))
	_, err = f.consumers.Get(ctx, c.UUID)
	assert.True(t, domain.IsNotFound(err))

	got, err := f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Consumed)
}

func TestActivationKeyService_PoolsAndOverrides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)

	k, err := f.keys.Create(ctx, "acme", &domain.ActivationKey{Name: "k1"})
	require.NoError(t, err)

	_, err = f.keys.AddPool(ctx, k.ID, pool.ID, nil)
	require.NoError(t, err)
	five := int64(5)
	k, err = f.keys.AddPool(ctx, k.ID, pool.ID, &five)
	require.NoError(t, err)
	require.Len(t, k.Pools, 1)
	assert.Equal(t, int64(5), *k.Pools[0].Quantity)

	_, err = f.keys.AddPool(ctx, k.ID, "nope", nil)
	assert.True(t, domain.IsValidationError(err))

	k, err = f.keys.SetContentOverrides(ctx, k.ID, []domain.ContentOverride{
		{ContentLabel: "base", Name: "enabled", Value: "1"},
		{ContentLabel: "base", Name: "gpgcheck", Value: "0"},
	})
	require.NoError(t, err)
	assert.Len(t, k.ContentOverrides, 2)

	k, err = f.keys.SetContentOverrides(ctx, k.ID, []domain.ContentOverride{{ContentLabel: "base", Name: "enabled"}})
	require.NoError(t, err)
	require.Len(t, k.ContentOverrides, 1)
	assert.Equal(t, "gpgcheck", k.ContentOverrides[0].Name)

	k, err = f.keys.RemovePool(ctx, k.ID, pool.ID)
	require.NoError(t, err)
	assert.Empty(t, k.Pools)
	_, err = f.keys.RemovePool(ctx, k.ID, pool.ID)
	assert.True(t, domain.IsNotFound(err))

	_, err = f.keys.Create(ctx, "acme", &domain.ActivationKey{Name: "k1"})
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.users.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.True(t, p.SuperAdmin)

	_, err = f.users.Authenticate(ctx, "admin", "wrong")
	assert.True(t, domain.IsUnauthorized(err))
	_, err = f.users.Authenticate(ctx, "nobody", "secret")
	assert.True(t, domain.IsUnauthorized(err))

	// Bootstrap again keeps the existing account.
	require.NoError(t, NewBootstrap(f.repo, f.users, logger.Nop()).Run(ctx, "admin", "changed"))
	_, err = f.users.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)

	u, err := f.users.Create(ctx, "bob", "hunter22", false)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", u.HashedPassword)
}

func TestRoleService_Members(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.owners.Create(ctx, &domain.Owner{Key: "acme"})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, "bob", "hunter22", false)
	require.NoError(t, err)

	r, err := f.roles.Create(ctx, &domain.Role{
		Name:        "acme-admins",
		Users:       []*domain.User{{Username: "admin"}, {Username: "admin"}},
		Permissions: []domain.PermissionBlueprint{{Owner: &domain.Owner{Key: "acme"}}},
	})
	require.NoError(t, err)
	require.Len(t, r.Users, 1)
	assert.Equal(t, domain.AccessReadOnly, r.Permissions[0].Access)
	assert.NotEmpty(t, r.Permissions[0].Owner.ID)

	r, err = f.roles.AddUser(ctx, r.ID, "bob")
	require.NoError(t, err)
	assert.True(t, r.HasUser("bob"))

	r, err = f.roles.RemoveUser(ctx, r.ID, "admin")
	require.NoError(t, err)
	assert.False(t, r.HasUser("admin"))

	_, err = f.roles.RemoveUser(ctx, r.ID, "admin")
	assert.True(t, domain.IsNotFound(err))
	_, err = f.roles.Create(ctx, &domain.Role{Name: "x", Users: []*domain.User{{Username: "ghost"}}})
	assert.True(t, domain.IsValidationError(err))
}

func TestExportService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, pool := f.seed(t)

	distributor, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "sat", Type: &domain.ConsumerType{Label: "candlepin"}}, nil)
	require.NoError(t, err)
	_, err = f.ents.Bind(ctx, distributor.UUID, pool.ID, 2)
	require.NoError(t, err)

	w := &fakeWriter{}
	exp := NewExportService(f.repo, w, f.events, logger.Nop())

	var buf bytes.Buffer
	job, err := exp.Export(ctx, distributor.UUID, ExportOptions{CdnLabel: "cdn"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, domain.JobFinished, job.State)
	assert.Equal(t, domain.JobRunning, job.PreviousState)
	assert.Equal(t, 1, job.Attempts)
	assert.JSONEq(t, `{"consumer":"`+distributor.UUID+`","entitlements":1}`, job.Result)
	assert.Equal(t, "zip", buf.String())
	require.NotNil(t, w.bundle)
	assert.Equal(t, "cdn", w.bundle.CdnLabel)
	assert.Len(t, w.bundle.Entitlements, 1)

	got, err := f.pools.Get(ctx, pool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Exported)

	jobs, err := f.jobs.List(ctx, JobQuery{OwnerKey: "acme", Keys: []string{ExportJobKey}})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	system, err := f.consumers.Register(ctx, "acme", &domain.Consumer{Name: "box"}, nil)
	require.NoError(t, err)
	job, err = exp.Export(ctx, system.UUID, ExportOptions{}, io.Discard)
	assert.True(t, domain.IsForbidden(err))
	assert.Equal(t, domain.JobFailed, job.State)

	w.err = errors.New("disk full")
	job, err = exp.Export(ctx, distributor.UUID, ExportOptions{}, io.Discard)
	assert.Error(t, err)
	assert.Equal(t, "disk full", job.Result)

	_, err = exp.Export(ctx, "missing", ExportOptions{}, io.Discard)
	assert.True(t, domain.IsNotFound(err))
}

func TestJobService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.repo.SaveJob(ctx, &domain.AsyncJobStatus{ID: "j1", State: domain.JobQueued}))
	j, err := f.jobs.Cancel(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCanceled, j.State)
	assert.NotNil(t, j.EndTime)

	_, err = f.jobs.Cancel(ctx, "j1")
	assert.True(t, domain.IsConflict(err))
}

func TestStatusAndHealth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	health := NewHealthService(f.repo, logger.Nop())

	h := health.Check(ctx)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "healthy", h.Components["storage"].Status)

	st := NewStatusService(health, "4.4.0", "1", true).Status(ctx)
	assert.Equal(t, "NORMAL", st.Mode)
	assert.True(t, st.Result)
	assert.Contains(t, st.ManagerCapabilities, "instance_multiplier")

	sick := NewHealthService(failingStore{}, logger.Nop())
	assert.Equal(t, "degraded", sick.Check(ctx).Status)
	assert.Equal(t, "SUSPEND", NewStatusService(sick, "", "", false).Status(ctx).Mode)
}

type failingStore struct{}

func (failingStore) Health(context.Context) error { return errors.New("down") }

func TestEventService_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	r := repo.New(repo.NewMemoryStore(), logger.Nop())
	for i := 0; i < DefaultEventLimit+5; i++ {
		require.NoError(t, r.CreateEvent(ctx, &domain.Event{ID: newID(), Timestamp: now()}))
	}
	events, err := NewEventService(r).List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, DefaultEventLimit)
}
