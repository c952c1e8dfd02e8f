package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrIncompleteContent is returned when product content lacks a content id.
	ErrIncompleteContent = errors.New("product content is null or incomplete")

	// ErrIncompleteBranding is returned when a branding entry is nil.
	ErrIncompleteBranding = errors.New("branding is null or incomplete")
)

// ProductContentDTO attaches content to a product.
type ProductContentDTO struct {
	Content *ContentDTO `json:"content"`
	Enabled *bool       `json:"enabled,omitempty"`
}

func (d *ProductContentDTO) contentID() string {
	if d == nil || d.Content == nil {
		return ""
	}
	return d.Content.ID
}

// Clone returns a copy independent of d.
func (d *ProductContentDTO) Clone() *ProductContentDTO {
	if d == nil {
		return nil
	}
	return &ProductContentDTO{Content: d.Content.Clone(), Enabled: clonePtr(d.Enabled)}
}

// Equal reports whether d and o hold the same values.
func (d *ProductContentDTO) Equal(o *ProductContentDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Content.Equal(o.Content) && ptrEqual(d.Enabled, o.Enabled)
}

// BrandingDTO is an alternate product name.
type BrandingDTO struct {
	Timestamped
	ID        string `json:"id,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
}

func (d *BrandingDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ProductID + "\x00" + d.Type + "\x00" + d.Name
}

// Clone returns a copy independent of d.
func (d *BrandingDTO) Clone() *BrandingDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *BrandingDTO) Equal(o *BrandingDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.ProductID == o.ProductID &&
		d.Name == o.Name &&
		d.Type == o.Type
}

// ProductDTO is a product definition.
type ProductDTO struct {
	Timestamped
	UUID                string               `json:"uuid,omitempty"`
	ID                  string               `json:"id,omitempty"`
	Name                string               `json:"name,omitempty"`
	Multiplier          *int64               `json:"multiplier,omitempty" binding:"omitempty,min=1"`
	Attributes          map[string]string    `json:"attributes,omitempty"`
	ProductContent      []*ProductContentDTO `json:"productContent,omitempty"`
	DependentProductIDs []string             `json:"dependentProductIds,omitempty"`
	Branding            []*BrandingDTO       `json:"branding,omitempty"`
	DerivedProduct      *ProductDTO          `json:"derivedProduct,omitempty"`
	ProvidedProducts    []*ProductDTO        `json:"providedProducts,omitempty"`
	Locked              *bool                `json:"locked,omitempty"`
}

// Href returns the API path of the product.
func (d *ProductDTO) Href() string {
	if d.UUID == "" {
		return ""
	}
	return "/products/" + d.UUID
}

// MarshalJSON adds the href to the encoded product.
func (d ProductDTO) MarshalJSON() ([]byte, error) {
	type alias ProductDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *ProductDTO) String() string {
	return fmt.Sprintf("ProductDTO [uuid: %s, id: %s, name: %s]", d.UUID, d.ID, d.Name)
}

func (d *ProductDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ID
}

// Attribute returns the value of an attribute and whether it is set.
func (d *ProductDTO) Attribute(key string) (string, bool) {
	v, ok := d.Attributes[key]
	return v, ok
}

// HasAttribute reports whether the attribute is set.
func (d *ProductDTO) HasAttribute(key string) bool {
	_, ok := d.Attributes[key]
	return ok
}

// SetAttribute sets an attribute, creating the map when needed.
func (d *ProductDTO) SetAttribute(key, value string) *ProductDTO {
	if d.Attributes == nil {
		d.Attributes = make(map[string]string)
	}
	d.Attributes[key] = value
	return d
}

// RemoveAttribute deletes an attribute and reports whether it was set.
func (d *ProductDTO) RemoveAttribute(key string) bool {
	if _, ok := d.Attributes[key]; !ok {
		return false
	}
	delete(d.Attributes, key)
	return true
}

// ProductContentByID returns the product content for a content id.
func (d *ProductDTO) ProductContentByID(contentID string) *ProductContentDTO {
	for _, pc := range d.ProductContent {
		if pc.contentID() == contentID {
			return pc
		}
	}
	return nil
}

// HasContent reports whether content with the given id is attached.
func (d *ProductDTO) HasContent(contentID string) bool {
	return d.ProductContentByID(contentID) != nil
}

// AddProductContent attaches pc, replacing any entry for the same content id.
// It reports whether the product changed.
func (d *ProductDTO) AddProductContent(pc *ProductContentDTO) (bool, error) {
	if pc.contentID() == "" {
		return false, ErrIncompleteContent
	}
	for i, existing := range d.ProductContent {
		if existing.contentID() == pc.contentID() {
			if existing.Equal(pc) {
				return false, nil
			}
			d.ProductContent[i] = pc
			return true, nil
		}
	}
	d.ProductContent = append(d.ProductContent, pc)
	return true, nil
}

// AddContent attaches content with the given enabled flag.
func (d *ProductDTO) AddContent(content *ContentDTO, enabled bool) (bool, error) {
	return d.AddProductContent(&ProductContentDTO{Content: content, Enabled: Ptr(enabled)})
}

// RemoveContent detaches the content with the given id.
func (d *ProductDTO) RemoveContent(contentID string) bool {
	before := len(d.ProductContent)
	d.ProductContent = slices.DeleteFunc(d.ProductContent, func(pc *ProductContentDTO) bool {
		return pc.contentID() == contentID
	})
	return len(d.ProductContent) != before
}

// AddDependentProductID adds a dependent product id unless already present.
func (d *ProductDTO) AddDependentProductID(id string) bool {
	if slices.Contains(d.DependentProductIDs, id) {
		return false
	}
	d.DependentProductIDs = append(d.DependentProductIDs, id)
	return true
}

// AddBranding adds a branding entry unless an equal one is present.
func (d *ProductDTO) AddBranding(b *BrandingDTO) (bool, error) {
	if b == nil {
		return false, ErrIncompleteBranding
	}
	for _, existing := range d.Branding {
		if existing.key() == b.key() {
			return false, nil
		}
	}
	d.Branding = append(d.Branding, b)
	return true, nil
}

// AddProvidedProduct adds a provided product unless one with the same id is present.
func (d *ProductDTO) AddProvidedProduct(p *ProductDTO) bool {
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
func (d *ProductDTO) Clone() *ProductDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Multiplier = clonePtr(d.Multiplier)
	c.Attributes = cloneMap(d.Attributes)
	c.ProductContent = cloneAll(d.ProductContent, (*ProductContentDTO).Clone)
	c.DependentProductIDs = cloneStrings(d.DependentProductIDs)
	c.Branding = cloneAll(d.Branding, (*BrandingDTO).Clone)
	c.DerivedProduct = d.DerivedProduct.Clone()
	c.ProvidedProducts = cloneAll(d.ProvidedProducts, (*ProductDTO).Clone)
	c.Locked = clonePtr(d.Locked)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ProductDTO) Populate(src *ProductDTO) *ProductDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Content, branding and
// provided products are compared as sets.
func (d *ProductDTO) Equal(o *ProductDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.UUID == o.UUID &&
		d.ID == o.ID &&
		d.Name == o.Name &&
		ptrEqual(d.Multiplier, o.Multiplier) &&
		maps.Equal(d.Attributes, o.Attributes) &&
		setEqualBy(d.ProductContent, o.ProductContent, (*ProductContentDTO).contentID, (*ProductContentDTO).Equal) &&
		stringSetEqual(d.DependentProductIDs, o.DependentProductIDs) &&
		setEqualBy(d.Branding, o.Branding, (*BrandingDTO).key, (*BrandingDTO).Equal) &&
		d.DerivedProduct.Equal(o.DerivedProduct) &&
		setEqualBy(d.ProvidedProducts, o.ProvidedProducts, (*ProductDTO).key, (*ProductDTO).Equal) &&
		ptrEqual(d.Locked, o.Locked)
}
