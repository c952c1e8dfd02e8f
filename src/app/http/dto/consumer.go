package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

var (
	// ErrIncompleteGuestID is returned when a guest id entry is nil or blank.
	ErrIncompleteGuestID = errors.New("guest id is null or incomplete")
)

// ReleaseVerDTO wraps a release version the way clients expect it on the wire.
type ReleaseVerDTO struct {
	ReleaseVer string `json:"releaseVer"`
}

// ConsumerDTO represents a registered system, hypervisor or distributor.
type ConsumerDTO struct {
	Timestamped
	ID                  string                      `json:"id,omitempty"`
	UUID                string                      `json:"uuid,omitempty"`
	Name                string                      `json:"name,omitempty"`
	Username            string                      `json:"username,omitempty"`
	EntitlementStatus   string                      `json:"entitlementStatus,omitempty"`
	ServiceLevel        string                      `json:"serviceLevel,omitempty"`
	Role                string                      `json:"role,omitempty"`
	Usage               string                      `json:"usage,omitempty"`
	AddOns              []string                    `json:"addOns,omitempty"`
	SystemPurposeStatus string                      `json:"systemPurposeStatus,omitempty"`
	ServiceType         string                      `json:"serviceType,omitempty"`
	ReleaseVer          *ReleaseVerDTO              `json:"releaseVer,omitempty"`
	Owner               *NestedOwnerDTO             `json:"owner,omitempty"`
	Environment         *EnvironmentDTO             `json:"environment,omitempty"`
	Environments        []*EnvironmentDTO           `json:"environments,omitempty"`
	EntitlementCount    *int64                      `json:"entitlementCount,omitempty"`
	Facts               map[string]string           `json:"facts,omitempty"`
	LastCheckin         *time.Time                  `json:"lastCheckin,omitempty"`
	InstalledProducts   []*InstalledProductDTO      `json:"installedProducts,omitempty"`
	CanActivate         *bool                       `json:"canActivate,omitempty"`
	Capabilities        []*CapabilityDTO            `json:"capabilities,omitempty"`
	HypervisorID        *HypervisorIDDTO            `json:"hypervisorId,omitempty"`
	ContentTags         []string                    `json:"contentTags,omitempty"`
	Autoheal            *bool                       `json:"autoheal,omitempty"`
	RecipientOwnerKey   string                      `json:"recipientOwnerKey,omitempty"`
	Annotations         string                      `json:"annotations,omitempty"`
	ContentAccessMode   string                      `json:"contentAccessMode,omitempty"`
	Type                *ConsumerTypeDTO            `json:"type,omitempty"`
	IDCert              *CertificateDTO             `json:"idCert,omitempty"`
	GuestIDs            []*GuestIDDTO               `json:"guestIds,omitempty"`
	ActivationKeys      []*ConsumerActivationKeyDTO `json:"activationKeys,omitempty"`
}

// Href returns the API path of the consumer.
func (d *ConsumerDTO) Href() string {
	if d.UUID == "" {
		return ""
	}
	return "/consumers/" + d.UUID
}

// MarshalJSON adds the href to the encoded consumer.
func (d ConsumerDTO) MarshalJSON() ([]byte, error) {
	type alias ConsumerDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *ConsumerDTO) String() string {
	return fmt.Sprintf("ConsumerDTO [uuid: %s, name: %s, owner id: %s]", d.UUID, d.Name, d.Owner.id())
}

// Fact returns the value of a fact, or "" when unset.
func (d *ConsumerDTO) Fact(key string) string {
	return d.Facts[key]
}

// IsGuest reports whether the consumer declares itself a virtual guest.
func (d *ConsumerDTO) IsGuest() bool {
	return strings.EqualFold(d.Fact("virt.is_guest"), "true")
}

// SetGuestIDs replaces the guest ids with copies of ids. A nil slice clears them.
func (d *ConsumerDTO) SetGuestIDs(ids []*GuestIDDTO) error {
	if ids == nil {
		d.GuestIDs = nil
		return nil
	}
	out := make([]*GuestIDDTO, 0, len(ids))
	for _, g := range ids {
		if g == nil || g.GuestID == "" {
			return ErrIncompleteGuestID
		}
		out = append(out, g.Clone())
	}
	d.GuestIDs = out
	return nil
}

// AddGuestID appends g unless a guest with the same id is already present.
func (d *ConsumerDTO) AddGuestID(g *GuestIDDTO) (bool, error) {
	if g == nil || g.GuestID == "" {
		return false, ErrIncompleteGuestID
	}
	for _, existing := range d.GuestIDs {
		if existing.GuestID == g.GuestID {
			return false, nil
		}
	}
	d.GuestIDs = append(d.GuestIDs, g)
	return true, nil
}

// RemoveGuestID removes the guest with the given id.
func (d *ConsumerDTO) RemoveGuestID(guestID string) (bool, error) {
	if guestID == "" {
		return false, ErrIncompleteGuestID
	}
	for i, existing := range d.GuestIDs {
		if existing.GuestID == guestID {
			d.GuestIDs = append(d.GuestIDs[:i], d.GuestIDs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clone returns a copy independent of d.
func (d *ConsumerDTO) Clone() *ConsumerDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.AddOns = cloneStrings(d.AddOns)
	c.ReleaseVer = clonePtr(d.ReleaseVer)
	c.Owner = d.Owner.Clone()
	c.Environment = d.Environment.Clone()
	c.Environments = cloneAll(d.Environments, (*EnvironmentDTO).Clone)
	c.EntitlementCount = clonePtr(d.EntitlementCount)
	c.Facts = cloneMap(d.Facts)
	c.LastCheckin = clonePtr(d.LastCheckin)
	c.InstalledProducts = cloneAll(d.InstalledProducts, (*InstalledProductDTO).Clone)
	c.CanActivate = clonePtr(d.CanActivate)
	c.Capabilities = cloneAll(d.Capabilities, clonePtr[CapabilityDTO])
	c.HypervisorID = d.HypervisorID.Clone()
	c.ContentTags = cloneStrings(d.ContentTags)
	c.Autoheal = clonePtr(d.Autoheal)
	c.Type = d.Type.Clone()
	c.IDCert = d.IDCert.Clone()
	c.GuestIDs = cloneAll(d.GuestIDs, (*GuestIDDTO).Clone)
	c.ActivationKeys = cloneAll(d.ActivationKeys, clonePtr[ConsumerActivationKeyDTO])
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ConsumerDTO) Populate(src *ConsumerDTO) *ConsumerDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values. Owner, environment and
// hypervisor references are compared by id; unordered collections as sets.
func (d *ConsumerDTO) Equal(o *ConsumerDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.UUID == o.UUID &&
		d.Name == o.Name &&
		d.Username == o.Username &&
		d.EntitlementStatus == o.EntitlementStatus &&
		d.ServiceLevel == o.ServiceLevel &&
		d.Role == o.Role &&
		d.Usage == o.Usage &&
		stringSetEqual(d.AddOns, o.AddOns) &&
		d.SystemPurposeStatus == o.SystemPurposeStatus &&
		d.ServiceType == o.ServiceType &&
		ptrEqual(d.ReleaseVer, o.ReleaseVer) &&
		d.Owner.id() == o.Owner.id() &&
		d.Environment.envID() == o.Environment.envID() &&
		allEqual(d.Environments, o.Environments, (*EnvironmentDTO).Equal) &&
		ptrEqual(d.EntitlementCount, o.EntitlementCount) &&
		maps.Equal(d.Facts, o.Facts) &&
		timeEqual(d.LastCheckin, o.LastCheckin) &&
		setEqualBy(d.InstalledProducts, o.InstalledProducts, (*InstalledProductDTO).key, (*InstalledProductDTO).Equal) &&
		ptrEqual(d.CanActivate, o.CanActivate) &&
		setEqualBy(d.Capabilities, o.Capabilities, (*CapabilityDTO).key, ptrEqual[CapabilityDTO]) &&
		d.HypervisorID.hid() == o.HypervisorID.hid() &&
		stringSetEqual(d.ContentTags, o.ContentTags) &&
		ptrEqual(d.Autoheal, o.Autoheal) &&
		d.RecipientOwnerKey == o.RecipientOwnerKey &&
		d.Annotations == o.Annotations &&
		d.ContentAccessMode == o.ContentAccessMode &&
		d.Type.Equal(o.Type) &&
		d.IDCert.Equal(o.IDCert) &&
		allEqual(d.GuestIDs, o.GuestIDs, (*GuestIDDTO).Equal) &&
		setEqualBy(d.ActivationKeys, o.ActivationKeys, (*ConsumerActivationKeyDTO).key, ptrEqual[ConsumerActivationKeyDTO])
}

func (d *EnvironmentDTO) envID() string {
	if d == nil {
		return ""
	}
	return d.ID
}
