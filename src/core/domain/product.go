package domain

import (
	"strconv"
	"time"
)

// Product attributes with server-side meaning.
const (
	AttrInstanceMultiplier = "instance_multiplier"
	AttrVirtLimit          = "virt_limit"
	AttrVirtOnly           = "virt_only"
	AttrStackingID         = "stacking_id"
	AttrSupportLevel       = "support_level"
)

// Branding is an alternate product name shown for a product id.
type Branding struct {
	ID        string
	ProductID string
	Name      string
	Type      string
	Created   time.Time
	Updated   time.Time
}

// Content is a repository of packages that products provide.
type Content struct {
	UUID               string
	ID                 string
	Type               string
	Label              string
	Name               string
	Vendor             string
	ContentURL         string
	RequiredTags       string
	ReleaseVer         string
	GPGURL             string
	MetadataExpiration *int64
	ModifiedProductIDs []string
	Arches             string
	Locked             bool
	Created            time.Time
	Updated            time.Time
}

// ProductContent attaches content to a product.
type ProductContent struct {
	Content *Content
	Enabled bool
}

// Product is a sellable or installable product definition.
type Product struct {
	UUID                string
	ID                  string
	Name                string
	Multiplier          int64
	Attributes          map[string]string
	ProductContent      []ProductContent
	DependentProductIDs []string
	Branding            []Branding
	DerivedProduct      *Product
	ProvidedProducts    []*Product
	Locked              bool
	Created             time.Time
	Updated             time.Time
}

// Attribute returns the attribute value and whether it is set.
func (p *Product) Attribute(key string) (string, bool) {
	if p == nil || p.Attributes == nil {
		return "", false
	}
	v, ok := p.Attributes[key]
	return v, ok
}

// InstanceMultiplier returns the parsed instance_multiplier attribute, or 0
// when absent or not a positive integer.
func (p *Product) InstanceMultiplier() int64 {
	v, ok := p.Attribute(AttrInstanceMultiplier)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// EffectiveMultiplier returns the product multiplier, treating values below 1 as 1.
func (p *Product) EffectiveMultiplier() int64 {
	if p == nil || p.Multiplier < 1 {
		return 1
	}
	return p.Multiplier
}

// PoolQuantity returns the pool quantity created for a subscription of subQty
// units. The instance multiplier is skipped for pools imported from upstream.
// A negative subscription quantity yields an unlimited pool.
func (p *Product) PoolQuantity(subQty int64, upstreamPoolID string) int64 {
	if subQty < 0 {
		return Unlimited
	}
	q := subQty * p.EffectiveMultiplier()
	if m := p.InstanceMultiplier(); m > 0 && upstreamPoolID == "" {
		q *= m
	}
	return q
}
