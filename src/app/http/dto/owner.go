package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// OwnerDTO represents an organization.
type OwnerDTO struct {
	Timestamped
	ID                         string               `json:"id,omitempty"`
	Key                        string               `json:"key,omitempty" binding:"omitempty,ownerkey"`
	DisplayName                string               `json:"displayName,omitempty"`
	ParentOwner                *NestedOwnerDTO      `json:"parentOwner,omitempty"`
	ContentPrefix              string               `json:"contentPrefix,omitempty"`
	DefaultServiceLevel        string               `json:"defaultServiceLevel,omitempty"`
	Upstream                   *UpstreamConsumerDTO `json:"upstreamConsumer,omitempty"`
	LogLevel                   string               `json:"logLevel,omitempty"`
	AutobindDisabled           *bool                `json:"autobindDisabled,omitempty"`
	AutobindHypervisorDisabled *bool                `json:"autobindHypervisorDisabled,omitempty"`
	ContentAccessMode          string               `json:"contentAccessMode,omitempty"`
	ContentAccessModeList      string               `json:"contentAccessModeList,omitempty"`
	LastRefreshed              *time.Time           `json:"lastRefreshed,omitempty"`
}

// Href returns the API path of the owner.
func (d *OwnerDTO) Href() string {
	if d.Key == "" {
		return ""
	}
	return "/owners/" + d.Key
}

// MarshalJSON adds the href to the encoded owner.
func (d OwnerDTO) MarshalJSON() ([]byte, error) {
	type alias OwnerDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *OwnerDTO) String() string {
	return fmt.Sprintf("OwnerDTO [id: %s, key: %s]", d.ID, d.Key)
}

// Clone returns a copy independent of d.
func (d *OwnerDTO) Clone() *OwnerDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.ParentOwner = d.ParentOwner.Clone()
	c.Upstream = d.Upstream.Clone()
	c.AutobindDisabled = clonePtr(d.AutobindDisabled)
	c.AutobindHypervisorDisabled = clonePtr(d.AutobindHypervisorDisabled)
	c.LastRefreshed = clonePtr(d.LastRefreshed)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *OwnerDTO) Populate(src *OwnerDTO) *OwnerDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
// Parent owners are compared by id.
func (d *OwnerDTO) Equal(o *OwnerDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Key == o.Key &&
		d.DisplayName == o.DisplayName &&
		d.ParentOwner.id() == o.ParentOwner.id() &&
		d.ContentPrefix == o.ContentPrefix &&
		d.DefaultServiceLevel == o.DefaultServiceLevel &&
		d.Upstream.Equal(o.Upstream) &&
		d.LogLevel == o.LogLevel &&
		ptrEqual(d.AutobindDisabled, o.AutobindDisabled) &&
		ptrEqual(d.AutobindHypervisorDisabled, o.AutobindHypervisorDisabled) &&
		d.ContentAccessMode == o.ContentAccessMode &&
		d.ContentAccessModeList == o.ContentAccessModeList &&
		timeEqual(d.LastRefreshed, o.LastRefreshed)
}

// NestedOwnerDTO is the short owner reference embedded in other DTOs.
type NestedOwnerDTO struct {
	ID          string `json:"id,omitempty"`
	Key         string `json:"key,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Href        string `json:"href,omitempty"`
}

func (d *NestedOwnerDTO) id() string {
	if d == nil {
		return ""
	}
	return d.ID
}

// Clone returns a copy of d.
func (d *NestedOwnerDTO) Clone() *NestedOwnerDTO {
	return clonePtr(d)
}

// Equal reports whether d and o hold the same values.
func (d *NestedOwnerDTO) Equal(o *NestedOwnerDTO) bool {
	return ptrEqual(d, o)
}

// UpstreamConsumerDTO describes the upstream distributor an owner imported from.
type UpstreamConsumerDTO struct {
	Timestamped
	ID                string           `json:"id,omitempty"`
	UUID              string           `json:"uuid,omitempty"`
	Name              string           `json:"name,omitempty"`
	APIURL            string           `json:"apiUrl,omitempty"`
	WebURL            string           `json:"webUrl,omitempty"`
	OwnerID           string           `json:"ownerId,omitempty"`
	ContentAccessMode string           `json:"contentAccessMode,omitempty"`
	Type              *ConsumerTypeDTO `json:"type,omitempty"`
	IDCert            *CertificateDTO  `json:"idCert,omitempty"`
}

// Clone returns a copy independent of d.
func (d *UpstreamConsumerDTO) Clone() *UpstreamConsumerDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Type = d.Type.Clone()
	c.IDCert = d.IDCert.Clone()
	return &c
}

// Populate copies every field of src into d.
func (d *UpstreamConsumerDTO) Populate(src *UpstreamConsumerDTO) *UpstreamConsumerDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *UpstreamConsumerDTO) Equal(o *UpstreamConsumerDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.UUID == o.UUID &&
		d.Name == o.Name &&
		d.APIURL == o.APIURL &&
		d.WebURL == o.WebURL &&
		d.OwnerID == o.OwnerID &&
		d.ContentAccessMode == o.ContentAccessMode &&
		d.Type.Equal(o.Type) &&
		d.IDCert.Equal(o.IDCert)
}
