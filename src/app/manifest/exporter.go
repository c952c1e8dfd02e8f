package manifest

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// Bundle is everything a manifest is generated from.
type Bundle = ports.ManifestBundle

var _ ports.ManifestWriter = (*Exporter)(nil)

// Exporter writes manifest archives.
type Exporter struct {
	mt      *translate.ModelTranslator
	version string
}

// NewExporter returns an Exporter translating through mt, which must hold
// both the API and manifest translators.
func NewExporter(mt *translate.ModelTranslator, version string) *Exporter {
	return &Exporter{mt: mt, version: version}
}

// Write encodes b as a zip archive into w.
//
// Layout:
//
//	meta.json
//	consumer.json
//	entitlements/<id>.json
//	products/<id>.json
//	subscriptions/<id>.json
func (e *Exporter) Write(ctx context.Context, w io.Writer, b *Bundle) error {
	if b == nil || b.Consumer == nil {
		return domain.NewValidationError("consumer", "export requires a consumer")
	}

	zw := zip.NewWriter(w)

	created := b.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	meta := &MetaDTO{
		Version:       e.version,
		Created:       &created,
		PrincipalName: b.Principal,
		WebAppPrefix:  b.WebURL,
		CdnLabel:      b.CdnLabel,
	}
	if err := writeJSON(zw, "meta.json", created, meta); err != nil {
		return err
	}

	consumer, err := translate.Translate[domain.Consumer, ConsumerDTO](e.mt, b.Consumer)
	if err != nil {
		return fmt.Errorf("translate consumer: %w", err)
	}
	consumer.URLWeb = b.WebURL
	consumer.URLAPI = b.APIURL
	if err := writeJSON(zw, "consumer.json", created, consumer); err != nil {
		return err
	}

	products := make(map[string]*domain.Product)
	for _, ent := range b.Entitlements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ent == nil {
			continue
		}

		out, err := translate.Translate[domain.Entitlement, EntitlementDTO](e.mt, ent)
		if err != nil {
			return fmt.Errorf("translate entitlement %s: %w", ent.ID, err)
		}
		if err := writeJSON(zw, path.Join("entitlements", ent.ID+".json"), created, out); err != nil {
			return err
		}

		if ent.Pool == nil {
			continue
		}
		sub, err := translate.Translate[domain.Pool, SubscriptionDTO](e.mt, ent.Pool)
		if err != nil {
			return fmt.Errorf("translate subscription for pool %s: %w", ent.Pool.ID, err)
		}
		if err := writeJSON(zw, path.Join("subscriptions", sub.ID+".json"), created, sub); err != nil {
			return err
		}
		collectProducts(products, ent.Pool.Product)
	}

	ids := make([]string, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out, err := translate.Translate[domain.Product, dto.ProductDTO](e.mt, products[id])
		if err != nil {
			return fmt.Errorf("translate product %s: %w", id, err)
		}
		if err := writeJSON(zw, path.Join("products", id+".json"), created, out); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

// collectProducts records p with its derived and provided products.
func collectProducts(into map[string]*domain.Product, p *domain.Product) {
	if p == nil || p.ID == "" {
		return
	}
	if _, seen := into[p.ID]; seen {
		return
	}
	into[p.ID] = p
	collectProducts(into, p.DerivedProduct)
	for _, pp := range p.ProvidedProducts {
		collectProducts(into, pp)
	}
}

func writeJSON(zw *zip.Writer, name string, modified time.Time, v any) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
