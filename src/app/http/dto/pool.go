package dto

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// ProvidedProductDTO is the short product reference listed on a pool.
type ProvidedProductDTO struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

func (d *ProvidedProductDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ProductID
}

// EntitlementRefDTO is a link to another entitlement.
type EntitlementRefDTO struct {
	ID   string `json:"id,omitempty"`
	Href string `json:"href,omitempty"`
}

// PoolDTO is a consumable quantity of a product, flattened for clients.
type PoolDTO struct {
	Timestamped
	ID                       string                `json:"id,omitempty"`
	Type                     string                `json:"type,omitempty"`
	Owner                    *NestedOwnerDTO       `json:"owner,omitempty"`
	ActiveSubscription       *bool                 `json:"activeSubscription,omitempty"`
	SourceEntitlement        *EntitlementRefDTO    `json:"sourceEntitlement,omitempty"`
	Quantity                 *int64                `json:"quantity,omitempty"`
	StartDate                *time.Time            `json:"startDate,omitempty"`
	EndDate                  *time.Time            `json:"endDate,omitempty"`
	Attributes               map[string]string     `json:"attributes,omitempty"`
	RestrictedToUsername     string                `json:"restrictedToUsername,omitempty"`
	ContractNumber           string                `json:"contractNumber,omitempty"`
	AccountNumber            string                `json:"accountNumber,omitempty"`
	OrderNumber              string                `json:"orderNumber,omitempty"`
	Consumed                 *int64                `json:"consumed,omitempty"`
	Exported                 *int64                `json:"exported,omitempty"`
	Branding                 []*BrandingDTO        `json:"branding,omitempty"`
	CalculatedAttributes     map[string]string     `json:"calculatedAttributes,omitempty"`
	UpstreamPoolID           string                `json:"upstreamPoolId,omitempty"`
	UpstreamEntitlementID    string                `json:"upstreamEntitlementId,omitempty"`
	UpstreamConsumerID       string                `json:"upstreamConsumerId,omitempty"`
	ProductName              string                `json:"productName,omitempty"`
	ProductID                string                `json:"productId,omitempty"`
	ProductAttributes        map[string]string     `json:"productAttributes,omitempty"`
	StackID                  string                `json:"stackId,omitempty"`
	Stacked                  *bool                 `json:"stacked,omitempty"`
	SourceStackID            string                `json:"sourceStackId,omitempty"`
	DerivedProductAttributes map[string]string     `json:"derivedProductAttributes,omitempty"`
	DerivedProductID         string                `json:"derivedProductId,omitempty"`
	DerivedProductName       string                `json:"derivedProductName,omitempty"`
	ProvidedProducts         []*ProvidedProductDTO `json:"providedProducts,omitempty"`
	DerivedProvidedProducts  []*ProvidedProductDTO `json:"derivedProvidedProducts,omitempty"`
	SubscriptionSubKey       string                `json:"subscriptionSubKey,omitempty"`
	SubscriptionID           string                `json:"subscriptionId,omitempty"`
}

// Href returns the API path of the pool.
func (d *PoolDTO) Href() string {
	if d.ID == "" {
		return ""
	}
	return "/pools/" + d.ID
}

// MarshalJSON adds the href to the encoded pool.
func (d PoolDTO) MarshalJSON() ([]byte, error) {
	type alias PoolDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *PoolDTO) String() string {
	return fmt.Sprintf("PoolDTO [id: %s, type: %s, product id: %s, product name: %s, quantity: %d]",
		d.ID, d.Type, d.ProductID, d.ProductName, Deref(d.Quantity))
}

// Attribute returns the value of a pool attribute.
func (d *PoolDTO) Attribute(key string) (string, bool) {
	v, ok := d.Attributes[key]
	return v, ok
}

// SetAttribute sets a pool attribute, creating the map when needed.
func (d *PoolDTO) SetAttribute(key, value string) *PoolDTO {
	if d.Attributes == nil {
		d.Attributes = make(map[string]string)
	}
	d.Attributes[key] = value
	return d
}

// AddProvidedProduct adds a provided product unless its id is already listed.
func (d *PoolDTO) AddProvidedProduct(p *ProvidedProductDTO) bool {
	if p == nil {
		return false
	}
	for _, existing := range d.ProvidedProducts {
		if existing.key() == p.key() {
			return false
		}
	}
	d.ProvidedProducts = append(d.ProvidedProducts, p)
	return true
}

// Clone returns a copy independent of d.
func (d *PoolDTO) Clone() *PoolDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Owner = d.Owner.Clone()
	c.ActiveSubscription = clonePtr(d.ActiveSubscription)
	c.SourceEntitlement = clonePtr(d.SourceEntitlement)
	c.Quantity = clonePtr(d.Quantity)
	c.StartDate = clonePtr(d.StartDate)
	c.EndDate = clonePtr(d.EndDate)
	c.Attributes = cloneMap(d.Attributes)
	c.Consumed = clonePtr(d.Consumed)
	c.Exported = clonePtr(d.Exported)
	c.Branding = cloneAll(d.Branding, (*BrandingDTO).Clone)
	c.CalculatedAttributes = cloneMap(d.CalculatedAttributes)
	c.ProductAttributes = cloneMap(d.ProductAttributes)
	c.Stacked = clonePtr(d.Stacked)
	c.DerivedProductAttributes = cloneMap(d.DerivedProductAttributes)
	c.ProvidedProducts = cloneAll(d.ProvidedProducts, clonePtr[ProvidedProductDTO])
	c.DerivedProvidedProducts = cloneAll(d.DerivedProvidedProducts, clonePtr[ProvidedProductDTO])
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *PoolDTO) Populate(src *PoolDTO) *PoolDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Owner is compared by id.
func (d *PoolDTO) Equal(o *PoolDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Type == o.Type &&
		d.Owner.id() == o.Owner.id() &&
		ptrEqual(d.ActiveSubscription, o.ActiveSubscription) &&
		ptrEqual(d.SourceEntitlement, o.SourceEntitlement) &&
		ptrEqual(d.Quantity, o.Quantity) &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate) &&
		maps.Equal(d.Attributes, o.Attributes) &&
		d.RestrictedToUsername == o.RestrictedToUsername &&
		d.ContractNumber == o.ContractNumber &&
		d.AccountNumber == o.AccountNumber &&
		d.OrderNumber == o.OrderNumber &&
		ptrEqual(d.Consumed, o.Consumed) &&
		ptrEqual(d.Exported, o.Exported) &&
		setEqualBy(d.Branding, o.Branding, (*BrandingDTO).key, (*BrandingDTO).Equal) &&
		maps.Equal(d.CalculatedAttributes, o.CalculatedAttributes) &&
		d.UpstreamPoolID == o.UpstreamPoolID &&
		d.UpstreamEntitlementID == o.UpstreamEntitlementID &&
		d.UpstreamConsumerID == o.UpstreamConsumerID &&
		d.ProductName == o.ProductName &&
		d.ProductID == o.ProductID &&
		maps.Equal(d.ProductAttributes, o.ProductAttributes) &&
		d.StackID == o.StackID &&
		ptrEqual(d.Stacked, o.Stacked) &&
		d.SourceStackID == o.SourceStackID &&
		maps.Equal(d.DerivedProductAttributes, o.DerivedProductAttributes) &&
		d.DerivedProductID == o.DerivedProductID &&
		d.DerivedProductName == o.DerivedProductName &&
		setEqualBy(d.ProvidedProducts, o.ProvidedProducts, (*ProvidedProductDTO).key, ptrEqual[ProvidedProductDTO]) &&
		setEqualBy(d.DerivedProvidedProducts, o.DerivedProvidedProducts, (*ProvidedProductDTO).key, ptrEqual[ProvidedProductDTO]) &&
		d.SubscriptionSubKey == o.SubscriptionSubKey &&
		d.SubscriptionID == o.SubscriptionID
}
