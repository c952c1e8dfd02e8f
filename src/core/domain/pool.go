package domain

import "time"

// PoolType describes how a pool came to exist.
type PoolType string

const (
	PoolNormal             PoolType = "NORMAL"
	PoolEntitlementDerived PoolType = "ENTITLEMENT_DERIVED"
	PoolStackDerived       PoolType = "STACK_DERIVED"
	PoolBonus              PoolType = "BONUS"
	PoolUnmappedGuest      PoolType = "UNMAPPED_GUEST"
	PoolDevelopment        PoolType = "DEVELOPMENT"
)

// Unlimited is the quantity of a pool that never runs out.
const Unlimited int64 = -1

// Cdn is a content delivery network that serves a pool's content.
type Cdn struct {
	ID      string
	Label   string
	Name    string
	URL     string
	Cert    *Certificate
	Created time.Time
	Updated time.Time
}

// Pool is a quantity of a product an owner can hand out as entitlements.
type Pool struct {
	ID                    string
	Type                  PoolType
	Owner                 *Owner
	ActiveSubscription    bool
	SourceEntitlementID   string
	SourceStackID         string
	SubscriptionID        string
	SubscriptionSubKey    string
	Quantity              int64
	StartDate             time.Time
	EndDate               time.Time
	Product               *Product
	Attributes            map[string]string
	RestrictedToUsername  string
	ContractNumber        string
	AccountNumber         string
	OrderNumber           string
	Consumed              int64
	Exported              int64
	CalculatedAttributes  map[string]string
	UpstreamPoolID        string
	UpstreamEntitlementID string
	UpstreamConsumerID    string
	Cert                  *Certificate
	Cdn                   *Cdn
	Created               time.Time
	Updated               time.Time
}

// DerivedProduct returns the derived product of the pool's product, if any.
func (p *Pool) DerivedProduct() *Product {
	if p.Product == nil {
		return nil
	}
	return p.Product.DerivedProduct
}

// IsStacked reports whether the pool's product declares a stacking id.
func (p *Pool) IsStacked() bool {
	_, ok := p.Product.Attribute(AttrStackingID)
	return ok
}

// StackID returns the stacking id of the pool's product.
func (p *Pool) StackID() string {
	v, _ := p.Product.Attribute(AttrStackingID)
	return v
}
