package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntitlementDTO is a consumer's claim on some quantity of a pool.
type EntitlementDTO struct {
	Timestamped
	ID           string            `json:"id,omitempty"`
	Owner        *NestedOwnerDTO   `json:"owner,omitempty"`
	Consumer     *ConsumerRefDTO   `json:"consumer,omitempty"`
	Pool         *PoolDTO          `json:"pool,omitempty"`
	Quantity     *int              `json:"quantity,omitempty"`
	Certificates []*CertificateDTO `json:"certificates,omitempty"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	EndDate      *time.Time        `json:"endDate,omitempty"`
}

// ConsumerRefDTO is the short consumer reference embedded in entitlements.
type ConsumerRefDTO struct {
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name,omitempty"`
	Href string `json:"href,omitempty"`
}

func (d *ConsumerRefDTO) uuid() string {
	if d == nil {
		return ""
	}
	return d.UUID
}

// Href returns the API path of the entitlement.
func (d *EntitlementDTO) Href() string {
	if d.ID == "" {
		return ""
	}
	return "/entitlements/" + d.ID
}

// MarshalJSON adds the href to the encoded entitlement.
func (d EntitlementDTO) MarshalJSON() ([]byte, error) {
	type alias EntitlementDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *EntitlementDTO) String() string {
	poolID := ""
	if d.Pool != nil {
		poolID = d.Pool.ID
	}
	return fmt.Sprintf("EntitlementDTO [id: %s, consumer: %s, pool: %s, quantity: %d]",
		d.ID, d.Consumer.uuid(), poolID, Deref(d.Quantity))
}

func (d *EntitlementDTO) certKey(c *CertificateDTO) string {
	if c == nil {
		return ""
	}
	return c.ID
}

// Clone returns a copy independent of d.
func (d *EntitlementDTO) Clone() *EntitlementDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Owner = d.Owner.Clone()
	c.Consumer = clonePtr(d.Consumer)
	c.Pool = d.Pool.Clone()
	c.Quantity = clonePtr(d.Quantity)
	c.Certificates = cloneAll(d.Certificates, (*CertificateDTO).Clone)
	c.StartDate = clonePtr(d.StartDate)
	c.EndDate = clonePtr(d.EndDate)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *EntitlementDTO) Populate(src *EntitlementDTO) *EntitlementDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Owner and consumer are
// compared by identifier.
func (d *EntitlementDTO) Equal(o *EntitlementDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Owner.id() == o.Owner.id() &&
		d.Consumer.uuid() == o.Consumer.uuid() &&
		d.Pool.Equal(o.Pool) &&
		ptrEqual(d.Quantity, o.Quantity) &&
		setEqualBy(d.Certificates, o.Certificates, d.certKey, (*CertificateDTO).Equal) &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate)
}
