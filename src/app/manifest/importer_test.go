package manifest

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/core/domain"
)

func exportBundle(t *testing.T) []byte {
	t.Helper()

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
	}
	var buf bytes.Buffer
	require.NoError(t, NewExporter(registry(), "4.4.0").Write(context.Background(), &buf, bundle))
	return buf.Bytes()
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestImporter_Read(t *testing.T) {
	t.Parallel()

	raw := exportBundle(t)
	got, err := NewImporter(registry()).Read(context.Background(), bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	assert.Equal(t, "4.4.0", got.Version)
	assert.Equal(t, "admin", got.Principal)
	assert.Equal(t, "redhat", got.CdnLabel)
	assert.False(t, got.Created.IsZero())

	require.NotNil(t, got.Upstream)
	assert.Equal(t, "dist-1", got.Upstream.UUID)
	assert.Equal(t, "distributor", got.Upstream.Name)
	assert.Equal(t, "o1", got.Upstream.OwnerID)
	require.NotNil(t, got.Upstream.Type)
	assert.True(t, got.Upstream.Type.Manifest)

	ids := make([]string, 0, len(got.Products))
	for _, p := range got.Products {
		ids = append(ids, p.ID)
		if p.ID == "sku" {
			assert.Equal(t, int64(10), p.Multiplier)
		}
	}
	assert.Equal(t, []string{"deng", "derived", "eng", "sku"}, ids)

	require.Len(t, got.Subscriptions, 1)
	sub := got.Subscriptions[0]
	assert.Equal(t, int64(2), sub.Quantity, "subscription carries the entitlement quantity")
	assert.Equal(t, "sku", sub.Product.ID)
	require.NotNil(t, sub.Product.DerivedProduct)
	assert.Equal(t, "derived", sub.Product.DerivedProduct.ID)
	assert.Equal(t, "pool-1", sub.UpstreamPoolID)
	assert.Equal(t, "ent-1", sub.UpstreamEntitlementID)
	assert.Equal(t, "dist-1", sub.UpstreamConsumerID)
	assert.Equal(t, "contract", sub.ContractNumber)
	assert.Equal(t, testPool().StartDate, sub.StartDate.UTC())
	assert.Equal(t, testPool().EndDate, sub.EndDate.UTC())
}

func TestImporter_Read_Errors(t *testing.T) {
	t.Parallel()

	const meta = `{"version":"4.4.0"}`
	cases := []struct {
		name string
		raw  []byte
	}{
		{"not a zip", []byte("plain text")},
		{"missing meta", zipOf(t, map[string]string{"consumer.json": `{"uuid":"d"}`})},
		{"missing consumer", zipOf(t, map[string]string{"meta.json": meta})},
		{"empty consumer", zipOf(t, map[string]string{"meta.json": meta, "consumer.json": ""})},
		{"consumer without uuid", zipOf(t, map[string]string{"meta.json": meta, "consumer.json": `{"name":"d"}`})},
		{"type without manifest support", zipOf(t, map[string]string{
			"meta.json":     meta,
			"consumer.json": `{"uuid":"d","type":{"label":"system","manifest":false}}`,
		})},
		{"product without id", zipOf(t, map[string]string{
			"meta.json":       meta,
			"consumer.json":   `{"uuid":"d"}`,
			"products/x.json": `{"name":"nameless"}`,
		})},
		{"entitlement without quantity", zipOf(t, map[string]string{
			"meta.json":           meta,
			"consumer.json":       `{"uuid":"d"}`,
			"entitlements/e.json": `{"id":"e","pool":{"id":"p","productId":"sku"}}`,
		})},
		{"entitlement without pool", zipOf(t, map[string]string{
			"meta.json":           meta,
			"consumer.json":       `{"uuid":"d"}`,
			"entitlements/e.json": `{"id":"e","quantity":1}`,
		})},
		{"bad json", zipOf(t, map[string]string{"meta.json": meta, "consumer.json": `{`})},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewImporter(registry()).Read(context.Background(), bytes.NewReader(tc.raw), int64(len(tc.raw)))
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err), "got %v", err)
		})
	}
}

func TestImporter_Read_Canceled(t *testing.T) {
	t.Parallel()

	raw := exportBundle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewImporter(registry()).Read(ctx, bytes.NewReader(raw), int64(len(raw)))
	assert.ErrorIs(t, err, context.Canceled)
}
