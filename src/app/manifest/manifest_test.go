package manifest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/app/http/translator"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

func registry() *translate.ModelTranslator {
	return RegisterAll(translator.New())
}

func TestSubscriptionQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		quantity   int64
		multiplier int64
		instMult   string
		upstream   string
		want       int64
	}{
		{"plain", 10, 1, "", "", 10},
		{"product multiplier", 20, 4, "", "", 5},
		{"multiplier below one", 7, 0, "", "", 7},
		{"instance multiplier", 40, 2, "2", "", 10},
		{"instance multiplier ignored upstream", 40, 2, "2", "up-1", 20},
		{"invalid instance multiplier", 40, 2, "abc", "", 20},
		{"unlimited", -1, 10, "", "", -1},
		{"unlimited with instance multiplier", -1, 1, "2", "", -1},
		{"unlimited upstream", -1, 3, "2", "up-1", -1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			product := &domain.Product{ID: "p", Multiplier: tc.multiplier}
			if tc.instMult != "" {
				product.Attributes = map[string]string{domain.AttrInstanceMultiplier: tc.instMult}
			}
			pool := &domain.Pool{Quantity: tc.quantity, Product: product, UpstreamPoolID: tc.upstream}
			assert.Equal(t, tc.want, SubscriptionQuantity(pool))
			assert.Equal(t, tc.quantity, PoolQuantity(tc.want, product, tc.upstream), "forward and reverse agree")
		})
	}

	assert.Equal(t, int64(0), SubscriptionQuantity(nil))
	assert.Equal(t, int64(3), SubscriptionQuantity(&domain.Pool{Quantity: 3}))
}

func testPool() *domain.Pool {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Pool{
		ID:                    "pool-1",
		Owner:                 &domain.Owner{ID: "o1", Key: "acme"},
		SubscriptionID:        "sub-1",
		Quantity:              100,
		StartDate:             start,
		EndDate:               start.AddDate(1, 0, 0),
		ContractNumber:        "contract",
		UpstreamEntitlementID: "up-ent",
		Cert:                  &domain.Certificate{ID: "cert-1", Cert: "PEM"},
		Cdn:                   &domain.Cdn{ID: "cdn", Label: "redhat", URL: "https://cdn.example.com"},
		Product: &domain.Product{
			ID:               "sku",
			Name:             "Premium",
			Multiplier:       10,
			Branding:         []domain.Branding{{ProductID: "eng", Name: "Brand", Type: "OS"}},
			ProvidedProducts: []*domain.Product{{ID: "eng", Name: "Engineering"}},
			DerivedProduct: &domain.Product{
				ID:               "derived",
				ProvidedProducts: []*domain.Product{{ID: "deng"}},
			},
		},
	}
}

func TestPoolToSubscriptionTranslator(t *testing.T) {
	t.Parallel()

	sub, err := translate.Translate[domain.Pool, SubscriptionDTO](registry(), testPool())
	require.NoError(t, err)

	assert.Equal(t, "sub-1", sub.ID)
	assert.Equal(t, int64(10), *sub.Quantity)
	assert.Equal(t, "Premium", sub.Name())
	assert.Equal(t, "o1", sub.OwnerID())
	assert.Equal(t, "contract", sub.ContractNumber)
	assert.Equal(t, "up-ent", sub.UpstreamEntitlementID)
	assert.Equal(t, "PEM", sub.Certificate.Cert)
	assert.Equal(t, "redhat", sub.Cdn.Label)
	require.Len(t, sub.ProvidedProducts, 1)
	assert.Equal(t, "eng", sub.ProvidedProducts[0].ID)
	assert.Equal(t, "derived", sub.DerivedProduct.ID)
	require.Len(t, sub.DerivedProvidedProducts, 1)
	require.Len(t, sub.Branding, 1)

	clone := sub.Clone()
	assert.True(t, sub.Equal(clone))
	clone.Product.Name = "other"
	assert.Equal(t, "Premium", sub.Product.Name)
}

func TestPoolToSubscriptionTranslator_WithoutRegistry(t *testing.T) {
	t.Parallel()

	sub, err := PoolToSubscriptionTranslator{}.Translate(nil, testPool())
	require.NoError(t, err)
	assert.Equal(t, int64(10), *sub.Quantity)
	assert.Nil(t, sub.Owner)
	assert.Nil(t, sub.Product)
	assert.Nil(t, sub.Cdn)

	_, err = PoolToSubscriptionTranslator{}.Populate(nil, nil, &SubscriptionDTO{})
	assert.ErrorIs(t, err, translate.ErrNilSource)
}

func TestExporter_Write(t *testing.T) {
	t.Parallel()

	pool := testPool()
	consumer := &domain.Consumer{
		UUID:  "dist-1",
		Name:  "distributor",
		Owner: pool.Owner,
		Type:  &domain.ConsumerType{Label: "candlepin", Manifest: true},
	}
	bundle := &Bundle{
		Consumer: consumer,
		Entitlements: []*domain.Entitlement{
			{ID: "ent-1", Owner: pool.Owner, Consumer: consumer, Pool: pool, Quantity: 2},
		},
		Principal: "admin",
		CdnLabel:  "redhat",
		WebURL:    "https://example.com/subscriptions",
	}

	var buf bytes.Buffer
	exp := NewExporter(registry(), "4.4.0")
	require.NoError(t, exp.Write(context.Background(), &buf, bundle))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	files := make(map[string][]byte)
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = raw
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"consumer.json",
		"entitlements/ent-1.json",
		"meta.json",
		"products/deng.json",
		"products/derived.json",
		"products/eng.json",
		"products/sku.json",
		"subscriptions/sub-1.json",
	}, names)

	var meta MetaDTO
	require.NoError(t, json.Unmarshal(files["meta.json"], &meta))
	assert.Equal(t, "4.4.0", meta.Version)
	assert.Equal(t, "admin", meta.PrincipalName)

	var ent EntitlementDTO
	require.NoError(t, json.Unmarshal(files["entitlements/ent-1.json"], &ent))
	assert.Equal(t, "pool-1", ent.Pool.ID)
	assert.Equal(t, "sku", ent.Pool.ProductID)
	assert.Equal(t, 2, *ent.Quantity)

	var sub SubscriptionDTO
	require.NoError(t, json.Unmarshal(files["subscriptions/sub-1.json"], &sub))
	assert.Equal(t, int64(10), *sub.Quantity)
}

func TestExporter_Write_Errors(t *testing.T) {
	t.Parallel()

	exp := NewExporter(registry(), "test")
	err := exp.Write(context.Background(), io.Discard, &Bundle{})
	assert.True(t, domain.IsValidationError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = exp.Write(ctx, io.Discard, &Bundle{
		Consumer:     &domain.Consumer{UUID: "c"},
		Entitlements: []*domain.Entitlement{{ID: "e"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
