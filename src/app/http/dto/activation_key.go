package dto

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ActivationKeyPoolDTO binds a pool to an activation key.
type ActivationKeyPoolDTO struct {
	PoolID   string `json:"poolId"`
	Quantity *int64 `json:"quantity,omitempty"`
}

func (d *ActivationKeyPoolDTO) key() string {
	if d == nil {
		return ""
	}
	return d.PoolID
}

// ActivationKeyProductDTO names a product attached to an activation key.
type ActivationKeyProductDTO struct {
	ProductID string `json:"productId"`
}

func (d *ActivationKeyProductDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ProductID
}

// ContentOverrideDTO overrides one property of a content repository.
type ContentOverrideDTO struct {
	Timestamped
	ContentLabel string `json:"contentLabel" binding:"required,max=255"`
	Name         string `json:"name" binding:"required,max=255"`
	Value        string `json:"value,omitempty"`
}

func (d *ContentOverrideDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ContentLabel + "\x00" + d.Name
}

// Clone returns a copy independent of d.
func (d *ContentOverrideDTO) Clone() *ContentOverrideDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *ContentOverrideDTO) Equal(o *ContentOverrideDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ContentLabel == o.ContentLabel &&
		d.Name == o.Name &&
		d.Value == o.Value
}

// ActivationKeyDTO is a registration template applied to consumers.
type ActivationKeyDTO struct {
	Timestamped
	ID               string                     `json:"id,omitempty"`
	Name             string                     `json:"name,omitempty"`
	Description      string                     `json:"description,omitempty"`
	Owner            *NestedOwnerDTO            `json:"owner,omitempty"`
	ReleaseVer       *ReleaseVerDTO             `json:"releaseVer,omitempty"`
	ServiceLevel     string                     `json:"serviceLevel,omitempty"`
	Role             string                     `json:"role,omitempty"`
	Usage            string                     `json:"usage,omitempty"`
	AddOns           []string                   `json:"addOns,omitempty"`
	AutoAttach       *bool                      `json:"autoAttach,omitempty"`
	Pools            []*ActivationKeyPoolDTO    `json:"pools,omitempty"`
	Products         []*ActivationKeyProductDTO `json:"products,omitempty"`
	ContentOverrides []*ContentOverrideDTO      `json:"contentOverrides,omitempty"`
}

// Href returns the API path of the activation key.
func (d *ActivationKeyDTO) Href() string {
	if d.ID == "" {
		return ""
	}
	return "/activation_keys/" + d.ID
}

// MarshalJSON adds the href to the encoded key.
func (d ActivationKeyDTO) MarshalJSON() ([]byte, error) {
	type alias ActivationKeyDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *ActivationKeyDTO) String() string {
	return fmt.Sprintf("ActivationKeyDTO [id: %s, name: %s, owner id: %s]", d.ID, d.Name, d.Owner.id())
}

// AddPool binds a pool unless it is already bound.
func (d *ActivationKeyDTO) AddPool(poolID string, quantity *int64) bool {
	if poolID == "" || d.HasPool(poolID) {
		return false
	}
	d.Pools = append(d.Pools, &ActivationKeyPoolDTO{PoolID: poolID, Quantity: quantity})
	return true
}

// HasPool reports whether the pool is bound.
func (d *ActivationKeyDTO) HasPool(poolID string) bool {
	return slices.ContainsFunc(d.Pools, func(p *ActivationKeyPoolDTO) bool { return p.key() == poolID })
}

// RemovePool unbinds a pool.
func (d *ActivationKeyDTO) RemovePool(poolID string) bool {
	before := len(d.Pools)
	d.Pools = slices.DeleteFunc(d.Pools, func(p *ActivationKeyPoolDTO) bool { return p.key() == poolID })
	return len(d.Pools) != before
}

// AddProductID attaches a product unless it is already attached.
func (d *ActivationKeyDTO) AddProductID(productID string) bool {
	if productID == "" || slices.ContainsFunc(d.Products, func(p *ActivationKeyProductDTO) bool { return p.key() == productID }) {
		return false
	}
	d.Products = append(d.Products, &ActivationKeyProductDTO{ProductID: productID})
	return true
}

// RemoveProductID detaches a product.
func (d *ActivationKeyDTO) RemoveProductID(productID string) bool {
	before := len(d.Products)
	d.Products = slices.DeleteFunc(d.Products, func(p *ActivationKeyProductDTO) bool { return p.key() == productID })
	return len(d.Products) != before
}

// Clone returns a copy independent of d.
func (d *ActivationKeyDTO) Clone() *ActivationKeyDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Owner = d.Owner.Clone()
	c.ReleaseVer = clonePtr(d.ReleaseVer)
	c.AddOns = cloneStrings(d.AddOns)
	c.AutoAttach = clonePtr(d.AutoAttach)
	c.Pools = cloneAll(d.Pools, func(p *ActivationKeyPoolDTO) *ActivationKeyPoolDTO {
		return &ActivationKeyPoolDTO{PoolID: p.PoolID, Quantity: clonePtr(p.Quantity)}
	})
	c.Products = cloneAll(d.Products, clonePtr[ActivationKeyProductDTO])
	c.ContentOverrides = cloneAll(d.ContentOverrides, (*ContentOverrideDTO).Clone)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ActivationKeyDTO) Populate(src *ActivationKeyDTO) *ActivationKeyDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Owner is compared by id.
func (d *ActivationKeyDTO) Equal(o *ActivationKeyDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	poolEq := func(x, y *ActivationKeyPoolDTO) bool {
		return x.PoolID == y.PoolID && ptrEqual(x.Quantity, y.Quantity)
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.Owner.id() == o.Owner.id() &&
		ptrEqual(d.ReleaseVer, o.ReleaseVer) &&
		d.ServiceLevel == o.ServiceLevel &&
		d.Role == o.Role &&
		d.Usage == o.Usage &&
		stringSetEqual(d.AddOns, o.AddOns) &&
		ptrEqual(d.AutoAttach, o.AutoAttach) &&
		setEqualBy(d.Pools, o.Pools, (*ActivationKeyPoolDTO).key, poolEq) &&
		setEqualBy(d.Products, o.Products, (*ActivationKeyProductDTO).key, ptrEqual[ActivationKeyProductDTO]) &&
		setEqualBy(d.ContentOverrides, o.ContentOverrides, (*ContentOverrideDTO).key, (*ContentOverrideDTO).Equal)
}
