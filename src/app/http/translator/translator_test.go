package translator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

var (
	created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated = created.Add(time.Hour)
)

func testOwner() *domain.Owner {
	return &domain.Owner{ID: "owner-1", Key: "acme", DisplayName: "Acme", Created: created, Updated: updated}
}

func testConsumer() *domain.Consumer {
	owner := testOwner()
	return &domain.Consumer{
		ID:               "c-1",
		UUID:             "uuid-1",
		Name:             "host",
		Username:         "admin",
		ServiceLevel:     "Premium",
		AddOns:           []string{"addon"},
		ReleaseVer:       &domain.Release{ReleaseVer: "8.6"},
		Owner:            owner,
		EntitlementCount: 3,
		Facts:            map[string]string{"cpu.cpu_socket(s)": "2"},
		Type:             &domain.ConsumerType{ID: "t", Label: "system"},
		IDCert:           &domain.Certificate{ID: "cert", Serial: &domain.CertificateSerial{ID: 7, Serial: 7}},
		HypervisorID:     &domain.HypervisorID{ID: "h", HypervisorID: "hyp-1"},
		Environments: []*domain.Environment{
			{ID: "env-2", Name: "env-name-2", Owner: owner},
			{ID: "env-1", Name: "env-name-1", Owner: owner},
		},
		InstalledProducts: []domain.ConsumerInstalledProduct{{ProductID: "p1", ProductName: "RHEL"}},
		Capabilities:      []domain.ConsumerCapability{{Name: "cert_v3"}},
		GuestIDs:          []domain.GuestID{{GuestID: "g1"}, {GuestID: "g2"}},
		ActivationKeys:    []domain.ConsumerActivationKey{{ActivationKeyID: "k", ActivationKeyName: "key"}},
		Created:           created,
		Updated:           updated,
	}
}

func TestConsumerTranslator_WithRegistry(t *testing.T) {
	t.Parallel()

	mt := New()
	out, err := translate.Translate[domain.Consumer, dto.ConsumerDTO](mt, testConsumer())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "uuid-1", out.UUID)
	assert.Equal(t, int64(3), *out.EntitlementCount)
	assert.Equal(t, &dto.ReleaseVerDTO{ReleaseVer: "8.6"}, out.ReleaseVer)
	assert.Equal(t, "owner-1", out.Owner.ID)
	assert.Equal(t, "/owners/acme", out.Owner.Href)
	assert.Equal(t, "system", out.Type.Label)
	assert.Equal(t, int64(7), *out.IDCert.Serial.Serial)
	assert.Equal(t, "hyp-1", out.HypervisorID.HypervisorID)

	require.Len(t, out.Environments, 2)
	assert.Equal(t, "env-2", out.Environments[0].ID, "environments keep priority order")
	assert.Equal(t, "env-name-2,env-name-1", out.Environment.Name)
	assert.Equal(t, "env-2", out.Environment.ID)
	assert.Equal(t, "env-name-2", out.Environments[0].Name, "synthetic environment is a copy")

	require.NotNil(t, out.GuestIDs)
	assert.Empty(t, out.GuestIDs)

	want := []*dto.CapabilityDTO{{Name: "cert_v3"}}
	if diff := cmp.Diff(want, out.Capabilities); diff != "" {
		t.Errorf("capabilities mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []*dto.ConsumerActivationKeyDTO{{ActivationKeyID: "k", ActivationKeyName: "key"}}, out.ActivationKeys)
}

func TestConsumerTranslator_WithoutRegistry(t *testing.T) {
	t.Parallel()

	out, err := ConsumerTranslator{}.Translate(nil, testConsumer())
	require.NoError(t, err)

	assert.Equal(t, "host", out.Name)
	assert.Equal(t, map[string]string{"cpu.cpu_socket(s)": "2"}, out.Facts)
	assert.Equal(t, created, *out.Created)

	assert.Nil(t, out.ReleaseVer)
	assert.Nil(t, out.Owner)
	assert.Nil(t, out.Environment)
	assert.Nil(t, out.Environments)
	assert.Nil(t, out.HypervisorID)
	assert.Nil(t, out.Type)
	assert.Nil(t, out.IDCert)
	assert.Nil(t, out.InstalledProducts)
	assert.Nil(t, out.Capabilities)
	assert.Nil(t, out.GuestIDs)
	assert.Nil(t, out.ActivationKeys)
}

func TestTranslators_NilArguments(t *testing.T) {
	t.Parallel()

	out, err := OwnerTranslator{}.Translate(New(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = OwnerTranslator{}.Populate(nil, nil, &dto.OwnerDTO{})
	assert.ErrorIs(t, err, translate.ErrNilSource)

	_, err = PoolTranslator{}.Populate(nil, &domain.Pool{}, nil)
	assert.ErrorIs(t, err, translate.ErrNilDestination)
}

func TestConsumerTranslator_PopulateOverwrites(t *testing.T) {
	t.Parallel()

	dst := &dto.ConsumerDTO{Owner: &dto.NestedOwnerDTO{ID: "stale"}, Annotations: "stale"}
	_, err := ConsumerTranslator{}.Populate(nil, testConsumer(), dst)
	require.NoError(t, err)
	assert.Nil(t, dst.Owner)
	assert.Empty(t, dst.Annotations)
}

func TestUserTranslator_HidesPassword(t *testing.T) {
	t.Parallel()

	out, err := translate.Translate[domain.User, dto.UserDTO](New(), &domain.User{
		Username:       "alice",
		HashedPassword: "$2a$10$hash",
		SuperAdmin:     true,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Password)
	assert.True(t, *out.SuperAdmin)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
}

func TestPoolTranslator_Flattens(t *testing.T) {
	t.Parallel()

	pool := &domain.Pool{
		ID:                  "pool-1",
		Type:                domain.PoolNormal,
		Owner:               testOwner(),
		Quantity:            10,
		SourceEntitlementID: "ent-9",
		Product: &domain.Product{
			ID:         "sku",
			Name:       "Premium",
			Attributes: map[string]string{domain.AttrStackingID: "stack-1"},
			Branding:   []domain.Branding{{ProductID: "eng", Name: "Brand", Type: "OS"}},
			ProvidedProducts: []*domain.Product{
				{ID: "eng", Name: "Engineering"},
			},
			DerivedProduct: &domain.Product{
				ID:               "derived",
				Name:             "Derived",
				ProvidedProducts: []*domain.Product{{ID: "deng", Name: "Derived Eng"}},
			},
		},
	}

	out, err := translate.Translate[domain.Pool, dto.PoolDTO](New(), pool)
	require.NoError(t, err)

	assert.Equal(t, "NORMAL", out.Type)
	assert.Equal(t, "sku", out.ProductID)
	assert.Equal(t, "Premium", out.ProductName)
	assert.Equal(t, "stack-1", out.StackID)
	assert.True(t, *out.Stacked)
	assert.Equal(t, "derived", out.DerivedProductID)
	assert.Equal(t, &dto.EntitlementRefDTO{ID: "ent-9", Href: "/entitlements/ent-9"}, out.SourceEntitlement)
	assert.Equal(t, []*dto.ProvidedProductDTO{{ProductID: "eng", ProductName: "Engineering"}}, out.ProvidedProducts)
	assert.Equal(t, []*dto.ProvidedProductDTO{{ProductID: "deng", ProductName: "Derived Eng"}}, out.DerivedProvidedProducts)
	require.Len(t, out.Branding, 1)
	assert.Equal(t, "Brand", out.Branding[0].Name)
	assert.Equal(t, "owner-1", out.Owner.ID)
}

func TestProductTranslators_RoundTrip(t *testing.T) {
	t.Parallel()

	mt := New()
	src := &dto.ProductDTO{
		ID:                  "p1",
		Name:                "Product",
		Multiplier:          dto.Ptr(int64(4)),
		Attributes:          map[string]string{"arch": "x86_64"},
		DependentProductIDs: []string{"dep"},
		ProductContent: []*dto.ProductContentDTO{
			{Content: &dto.ContentDTO{ID: "c1", Label: "base", Locked: dto.Ptr(false)}, Enabled: dto.Ptr(true)},
		},
		Branding:         []*dto.BrandingDTO{{ProductID: "p1", Name: "Brand", Type: "OS"}},
		ProvidedProducts: []*dto.ProductDTO{{ID: "p2", Name: "Provided", Multiplier: dto.Ptr(int64(0)), Locked: dto.Ptr(false)}},
		Locked:           dto.Ptr(false),
	}

	model, err := translate.Translate[dto.ProductDTO, domain.Product](mt, src)
	require.NoError(t, err)
	assert.Equal(t, int64(4), model.Multiplier)
	require.Len(t, model.ProductContent, 1)
	assert.True(t, model.ProductContent[0].Enabled)

	back, err := translate.Translate[domain.Product, dto.ProductDTO](mt, model)
	require.NoError(t, err)

	opts := cmpopts.IgnoreFields(dto.ProductDTO{}, "Timestamped")
	if diff := cmp.Diff(src, back, opts, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoleTranslator(t *testing.T) {
	t.Parallel()

	role := &domain.Role{
		ID:   "r1",
		Name: "admins",
		Users: []*domain.User{
			{Username: "alice"}, {Username: "bob"},
		},
		Permissions: []domain.PermissionBlueprint{
			{ID: "perm", Owner: testOwner(), Type: domain.PermissionOwner, Access: domain.AccessAll},
		},
	}

	out, err := translate.Translate[domain.Role, dto.RoleDTO](New(), role)
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	require.Len(t, out.Permissions, 1)
	assert.Equal(t, "ALL", out.Permissions[0].Access)
	assert.Equal(t, "acme", out.Permissions[0].Owner.Key)

	model, err := translate.Translate[dto.RoleDTO, domain.Role](New(), out)
	require.NoError(t, err)
	assert.True(t, model.HasUser("bob"))
	assert.Equal(t, "owner-1", model.Permissions[0].Owner.ID)
}

func TestJobStatusTranslator_Result(t *testing.T) {
	t.Parallel()

	mt := New()
	job := &domain.AsyncJobStatus{ID: "j", State: domain.JobFinished, Result: `{"file":"export.zip"}`}
	out, err := translate.Translate[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](mt, job)
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"resultData":{"file":"export.zip"}`)
	assert.Contains(t, string(raw), `"href":"/jobs/j"`)

	job.Result = "plain failure"
	out, err = translate.Translate[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](mt, job)
	require.NoError(t, err)
	assert.Equal(t, "plain failure", out.Result)
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	mt := New()
	assert.Equal(t, 30, mt.Len())

	_, ok := translate.Find[domain.Consumer, dto.ConsumerDTO](mt)
	assert.True(t, ok)
	_, ok = translate.Find[dto.PoolDTO, domain.Pool](mt)
	assert.False(t, ok)
}
