// Package manifest holds the DTOs, translators, writer and reader used to
// move a distributor consumer and its entitlements between servers as a
// manifest archive.
package manifest

import (
	"fmt"
	"slices"
	"time"

	"candlepin/src/app/http/dto"
)

// MetaDTO describes the export itself.
type MetaDTO struct {
	Version       string     `json:"version"`
	Created       *time.Time `json:"created,omitempty"`
	PrincipalName string     `json:"principalName,omitempty"`
	WebAppPrefix  string     `json:"webAppPrefix,omitempty"`
	CdnLabel      string     `json:"cdnLabel,omitempty"`
}

// ConsumerDTO is the distributor a manifest was generated for.
type ConsumerDTO struct {
	UUID              string               `json:"uuid,omitempty"`
	Name              string               `json:"name,omitempty"`
	Owner             *dto.OwnerDTO        `json:"owner,omitempty"`
	Type              *dto.ConsumerTypeDTO `json:"type,omitempty"`
	ContentAccessMode string               `json:"contentAccessMode,omitempty"`
	URLWeb            string               `json:"urlWeb,omitempty"`
	URLAPI            string               `json:"urlApi,omitempty"`
}

// Clone returns a copy independent of d.
func (d *ConsumerDTO) Clone() *ConsumerDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Owner = d.Owner.Clone()
	c.Type = d.Type.Clone()
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ConsumerDTO) Populate(src *ConsumerDTO) *ConsumerDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *ConsumerDTO) Equal(o *ConsumerDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.UUID == o.UUID &&
		d.Name == o.Name &&
		d.Owner.Equal(o.Owner) &&
		d.Type.Equal(o.Type) &&
		d.ContentAccessMode == o.ContentAccessMode &&
		d.URLWeb == o.URLWeb &&
		d.URLAPI == o.URLAPI
}

// ProvidedProductDTO is a product reference listed on an exported pool.
type ProvidedProductDTO struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
}

// PoolDTO is the pool an exported entitlement was drawn from.
type PoolDTO struct {
	ID                      string                `json:"id,omitempty"`
	ContractNumber          string                `json:"contractNumber,omitempty"`
	AccountNumber           string                `json:"accountNumber,omitempty"`
	OrderNumber             string                `json:"orderNumber,omitempty"`
	Branding                []*dto.BrandingDTO    `json:"branding,omitempty"`
	ProductID               string                `json:"productId,omitempty"`
	DerivedProductID        string                `json:"derivedProductId,omitempty"`
	ProvidedProducts        []*ProvidedProductDTO `json:"providedProducts,omitempty"`
	DerivedProvidedProducts []*ProvidedProductDTO `json:"derivedProvidedProducts,omitempty"`
	StartDate               *time.Time            `json:"startDate,omitempty"`
	EndDate                 *time.Time            `json:"endDate,omitempty"`
}

// Clone returns a copy independent of d.
func (d *PoolDTO) Clone() *PoolDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Branding = cloneAll(d.Branding, (*dto.BrandingDTO).Clone)
	c.ProvidedProducts = cloneAll(d.ProvidedProducts, cloneProvided)
	c.DerivedProvidedProducts = cloneAll(d.DerivedProvidedProducts, cloneProvided)
	c.StartDate = cloneTime(d.StartDate)
	c.EndDate = cloneTime(d.EndDate)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *PoolDTO) Populate(src *PoolDTO) *PoolDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *PoolDTO) Equal(o *PoolDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.ID == o.ID &&
		d.ContractNumber == o.ContractNumber &&
		d.AccountNumber == o.AccountNumber &&
		d.OrderNumber == o.OrderNumber &&
		slices.EqualFunc(d.Branding, o.Branding, (*dto.BrandingDTO).Equal) &&
		d.ProductID == o.ProductID &&
		d.DerivedProductID == o.DerivedProductID &&
		slices.EqualFunc(d.ProvidedProducts, o.ProvidedProducts, providedEqual) &&
		slices.EqualFunc(d.DerivedProvidedProducts, o.DerivedProvidedProducts, providedEqual) &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate)
}

// EntitlementDTO is an exported entitlement.
type EntitlementDTO struct {
	ID              string                `json:"id,omitempty"`
	Owner           *dto.OwnerDTO         `json:"owner,omitempty"`
	Consumer        *ConsumerDTO          `json:"consumer,omitempty"`
	Pool            *PoolDTO              `json:"pool,omitempty"`
	Quantity        *int                  `json:"quantity,omitempty"`
	DeletedFromPool *bool                 `json:"deletedFromPool,omitempty"`
	Certificates    []*dto.CertificateDTO `json:"certificates,omitempty"`
	StartDate       *time.Time            `json:"startDate,omitempty"`
	EndDate         *time.Time            `json:"endDate,omitempty"`
}

func (d *EntitlementDTO) String() string {
	return fmt.Sprintf("EntitlementDTO [id: %s]", d.ID)
}

// Clone returns a copy independent of d.
func (d *EntitlementDTO) Clone() *EntitlementDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Owner = d.Owner.Clone()
	c.Consumer = d.Consumer.Clone()
	c.Pool = d.Pool.Clone()
	c.Quantity = clonePtr(d.Quantity)
	c.DeletedFromPool = clonePtr(d.DeletedFromPool)
	c.Certificates = cloneAll(d.Certificates, (*dto.CertificateDTO).Clone)
	c.StartDate = cloneTime(d.StartDate)
	c.EndDate = cloneTime(d.EndDate)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *EntitlementDTO) Populate(src *EntitlementDTO) *EntitlementDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *EntitlementDTO) Equal(o *EntitlementDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.ID == o.ID &&
		d.Owner.Equal(o.Owner) &&
		d.Consumer.Equal(o.Consumer) &&
		d.Pool.Equal(o.Pool) &&
		ptrEqual(d.Quantity, o.Quantity) &&
		ptrEqual(d.DeletedFromPool, o.DeletedFromPool) &&
		slices.EqualFunc(d.Certificates, o.Certificates, (*dto.CertificateDTO).Equal) &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate)
}

// CdnDTO is a content delivery network entry.
type CdnDTO struct {
	ID          string              `json:"id,omitempty"`
	Label       string              `json:"label,omitempty"`
	Name        string              `json:"name,omitempty"`
	URL         string              `json:"url,omitempty"`
	Certificate *dto.CertificateDTO `json:"certificate,omitempty"`
}

// Clone returns a copy independent of d.
func (d *CdnDTO) Clone() *CdnDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Certificate = d.Certificate.Clone()
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *CdnDTO) Equal(o *CdnDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.ID == o.ID &&
		d.Label == o.Label &&
		d.Name == o.Name &&
		d.URL == o.URL &&
		d.Certificate.Equal(o.Certificate)
}

// SubscriptionDTO is an upstream subscription rebuilt from a pool.
type SubscriptionDTO struct {
	ID                      string              `json:"id,omitempty"`
	Owner                   *dto.OwnerDTO       `json:"owner,omitempty"`
	Product                 *dto.ProductDTO     `json:"product,omitempty"`
	ProvidedProducts        []*dto.ProductDTO   `json:"providedProducts,omitempty"`
	DerivedProduct          *dto.ProductDTO     `json:"derivedProduct,omitempty"`
	DerivedProvidedProducts []*dto.ProductDTO   `json:"derivedProvidedProducts,omitempty"`
	Quantity                *int64              `json:"quantity,omitempty"`
	StartDate               *time.Time          `json:"startDate,omitempty"`
	EndDate                 *time.Time          `json:"endDate,omitempty"`
	LastModified            *time.Time          `json:"lastModified,omitempty"`
	ContractNumber          string              `json:"contractNumber,omitempty"`
	AccountNumber           string              `json:"accountNumber,omitempty"`
	OrderNumber             string              `json:"orderNumber,omitempty"`
	UpstreamPoolID          string              `json:"upstreamPoolId,omitempty"`
	UpstreamEntitlementID   string              `json:"upstreamEntitlementId,omitempty"`
	UpstreamConsumerID      string              `json:"upstreamConsumerId,omitempty"`
	Cdn                     *CdnDTO             `json:"cdn,omitempty"`
	Branding                []*dto.BrandingDTO  `json:"branding,omitempty"`
	Certificate             *dto.CertificateDTO `json:"certificate,omitempty"`
}

// Name returns the name of the subscribed product.
func (d *SubscriptionDTO) Name() string {
	if d.Product == nil {
		return ""
	}
	return d.Product.Name
}

// OwnerID returns the id of the owning organization.
func (d *SubscriptionDTO) OwnerID() string {
	if d.Owner == nil {
		return ""
	}
	return d.Owner.ID
}

func (d *SubscriptionDTO) String() string {
	return fmt.Sprintf("SubscriptionDTO [id: %s, name: %s, quantity: %d]", d.ID, d.Name(), dto.Deref(d.Quantity))
}

// Clone returns a copy independent of d.
func (d *SubscriptionDTO) Clone() *SubscriptionDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Owner = d.Owner.Clone()
	c.Product = d.Product.Clone()
	c.ProvidedProducts = cloneAll(d.ProvidedProducts, (*dto.ProductDTO).Clone)
	c.DerivedProduct = d.DerivedProduct.Clone()
	c.DerivedProvidedProducts = cloneAll(d.DerivedProvidedProducts, (*dto.ProductDTO).Clone)
	c.Quantity = clonePtr(d.Quantity)
	c.StartDate = cloneTime(d.StartDate)
	c.EndDate = cloneTime(d.EndDate)
	c.LastModified = cloneTime(d.LastModified)
	c.Cdn = d.Cdn.Clone()
	c.Branding = cloneAll(d.Branding, (*dto.BrandingDTO).Clone)
	c.Certificate = d.Certificate.Clone()
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *SubscriptionDTO) Populate(src *SubscriptionDTO) *SubscriptionDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *SubscriptionDTO) Equal(o *SubscriptionDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.ID == o.ID &&
		d.Owner.Equal(o.Owner) &&
		d.Product.Equal(o.Product) &&
		slices.EqualFunc(d.ProvidedProducts, o.ProvidedProducts, (*dto.ProductDTO).Equal) &&
		d.DerivedProduct.Equal(o.DerivedProduct) &&
		slices.EqualFunc(d.DerivedProvidedProducts, o.DerivedProvidedProducts, (*dto.ProductDTO).Equal) &&
		ptrEqual(d.Quantity, o.Quantity) &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate) &&
		timeEqual(d.LastModified, o.LastModified) &&
		d.ContractNumber == o.ContractNumber &&
		d.AccountNumber == o.AccountNumber &&
		d.OrderNumber == o.OrderNumber &&
		d.UpstreamPoolID == o.UpstreamPoolID &&
		d.UpstreamEntitlementID == o.UpstreamEntitlementID &&
		d.UpstreamConsumerID == o.UpstreamConsumerID &&
		d.Cdn.Equal(o.Cdn) &&
		slices.EqualFunc(d.Branding, o.Branding, (*dto.BrandingDTO).Equal) &&
		d.Certificate.Equal(o.Certificate)
}

func cloneAll[T any](in []*T, clone func(*T) *T) []*T {
	if in == nil {
		return nil
	}
	out := make([]*T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func cloneProvided(p *ProvidedProductDTO) *ProvidedProductDTO {
	return clonePtr(p)
}

func providedEqual(a, b *ProvidedProductDTO) bool {
	return ptrEqual(a, b)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	return clonePtr(t)
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
