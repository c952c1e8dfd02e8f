package manifest

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// maxEntrySize caps the decoded size of a single archive member.
const maxEntrySize = 32 << 20

var _ ports.ManifestReader = (*Importer)(nil)

// Importer reads manifest archives produced by Exporter.
type Importer struct {
	mt *translate.ModelTranslator
}

// NewImporter returns an Importer translating through mt, which must hold
// the API translators.
func NewImporter(mt *translate.ModelTranslator) *Importer {
	return &Importer{mt: mt}
}

// Read decodes the archive in r.
//
// Subscriptions are rebuilt from entitlements/*.json: each exported
// entitlement becomes one subscription of the entitlement's quantity, keyed
// by the upstream pool and entitlement ids. subscriptions/*.json is not read.
func (i *Importer) Read(ctx context.Context, r io.ReaderAt, size int64) (*ports.ManifestContents, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, domain.NewValidationError("manifest", "not a manifest archive: "+err.Error())
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[path.Clean(f.Name)] = f
	}

	var meta MetaDTO
	if err := readMember(files, "meta.json", &meta); err != nil {
		return nil, err
	}
	var consumer ConsumerDTO
	if err := readMember(files, "consumer.json", &consumer); err != nil {
		return nil, err
	}
	if consumer.UUID == "" {
		return nil, domain.NewValidationError("manifest", "consumer.json has no uuid")
	}
	if consumer.Type != nil && consumer.Type.Manifest != nil && !*consumer.Type.Manifest {
		return nil, domain.NewValidationError("manifest", "consumer type "+consumer.Type.Label+" cannot produce manifests")
	}

	out := &ports.ManifestContents{
		Version:   meta.Version,
		Principal: meta.PrincipalName,
		CdnLabel:  meta.CdnLabel,
		Upstream:  upstreamConsumer(&consumer),
	}
	if meta.Created != nil {
		out.Created = *meta.Created
	}

	for _, name := range members(files, "products") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var p dto.ProductDTO
		if err := readMember(files, name, &p); err != nil {
			return nil, err
		}
		product, err := translate.Translate[dto.ProductDTO, domain.Product](i.mt, &p)
		if err != nil {
			return nil, fmt.Errorf("translate %s: %w", name, err)
		}
		if product.ID == "" {
			return nil, domain.NewValidationError("manifest", name+" has no product id")
		}
		out.Products = append(out.Products, product)
	}

	for _, name := range members(files, "entitlements") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var ent EntitlementDTO
		if err := readMember(files, name, &ent); err != nil {
			return nil, err
		}
		sub, err := subscriptionFromEntitlement(&ent, consumer.UUID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out.Subscriptions = append(out.Subscriptions, sub)
	}
	return out, nil
}

// members lists the json files directly under dir in name order.
func members(files map[string]*zip.File, dir string) []string {
	var out []string
	for name := range files {
		if path.Dir(name) == dir && strings.HasSuffix(name, ".json") {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func readMember(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return domain.NewValidationError("manifest", "archive does not contain "+name)
	}
	rc, err := f.Open()
	if err != nil {
		return domain.NewValidationError("manifest", "cannot open "+name+": "+err.Error())
	}
	defer rc.Close()

	dec := json.NewDecoder(io.LimitReader(rc, maxEntrySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("manifest", name+" is empty")
		}
		return domain.NewValidationError("manifest", "cannot decode "+name+": "+err.Error())
	}
	return nil
}

func upstreamConsumer(c *ConsumerDTO) *domain.UpstreamConsumer {
	u := &domain.UpstreamConsumer{
		UUID:              c.UUID,
		Name:              c.Name,
		APIURL:            c.URLAPI,
		WebURL:            c.URLWeb,
		ContentAccessMode: c.ContentAccessMode,
	}
	if c.Owner != nil {
		u.OwnerID = c.Owner.ID
	}
	if c.Type != nil {
		u.Type = &domain.ConsumerType{ID: c.Type.ID, Label: c.Type.Label, Manifest: dto.Deref(c.Type.Manifest)}
	}
	return u
}

func subscriptionFromEntitlement(ent *EntitlementDTO, consumerUUID string) (*domain.Pool, error) {
	if ent.ID == "" {
		return nil, domain.NewValidationError("manifest", "entitlement has no id")
	}
	if ent.Pool == nil || ent.Pool.ID == "" || ent.Pool.ProductID == "" {
		return nil, domain.NewValidationError("manifest", "entitlement "+ent.ID+" has no pool product")
	}
	quantity := dto.Deref(ent.Quantity)
	if quantity < 1 {
		return nil, domain.NewValidationError("manifest", "entitlement "+ent.ID+" has no quantity")
	}

	pool := ent.Pool
	sub := &domain.Pool{
		Quantity:              int64(quantity),
		Product:               &domain.Product{ID: pool.ProductID},
		ContractNumber:        pool.ContractNumber,
		AccountNumber:         pool.AccountNumber,
		OrderNumber:           pool.OrderNumber,
		UpstreamPoolID:        pool.ID,
		UpstreamEntitlementID: ent.ID,
		UpstreamConsumerID:    consumerUUID,
	}
	if pool.DerivedProductID != "" {
		sub.Product.DerivedProduct = &domain.Product{ID: pool.DerivedProductID}
	}
	switch {
	case ent.StartDate != nil:
		sub.StartDate = *ent.StartDate
	case pool.StartDate != nil:
		sub.StartDate = *pool.StartDate
	}
	switch {
	case ent.EndDate != nil:
		sub.EndDate = *ent.EndDate
	case pool.EndDate != nil:
		sub.EndDate = *pool.EndDate
	}
	// Subscriptions carry a single certificate.
	for _, c := range ent.Certificates {
		if c != nil {
			sub.Cert = certificate(c)
			break
		}
	}
	return sub, nil
}

func certificate(c *dto.CertificateDTO) *domain.Certificate {
	out := &domain.Certificate{ID: c.ID, Key: c.Key, Cert: c.Cert}
	if s := c.Serial; s != nil {
		out.Serial = &domain.CertificateSerial{
			ID:        dto.Deref(s.ID),
			Serial:    dto.Deref(s.Serial),
			Collected: dto.Deref(s.Collected),
			Revoked:   dto.Deref(s.Revoked),
		}
		if s.Expiration != nil {
			out.Serial.Expiration = *s.Expiration
		}
	}
	return out
}
