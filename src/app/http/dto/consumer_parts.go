package dto

import (
	"maps"
	"time"
)

// InstalledProductDTO is a product a consumer reports as installed.
type InstalledProductDTO struct {
	Timestamped
	ID          string     `json:"id,omitempty"`
	ProductID   string     `json:"productId,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Version     string     `json:"version,omitempty"`
	Arch        string     `json:"arch,omitempty"`
	Status      string     `json:"status,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

func (d *InstalledProductDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ProductID
}

// Clone returns a copy independent of d.
func (d *InstalledProductDTO) Clone() *InstalledProductDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.StartDate = clonePtr(d.StartDate)
	c.EndDate = clonePtr(d.EndDate)
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *InstalledProductDTO) Equal(o *InstalledProductDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.ProductID == o.ProductID &&
		d.ProductName == o.ProductName &&
		d.Version == o.Version &&
		d.Arch == o.Arch &&
		d.Status == o.Status &&
		timeEqual(d.StartDate, o.StartDate) &&
		timeEqual(d.EndDate, o.EndDate)
}

// CapabilityDTO is a named client capability.
type CapabilityDTO struct {
	Name string `json:"name"`
}

func (d *CapabilityDTO) key() string {
	if d == nil {
		return ""
	}
	return d.Name
}

// HypervisorIDDTO identifies the hypervisor a consumer represents.
type HypervisorIDDTO struct {
	Timestamped
	ID           string `json:"id,omitempty"`
	HypervisorID string `json:"hypervisorId,omitempty"`
	Reporter     string `json:"reporterId,omitempty"`
}

func (d *HypervisorIDDTO) hid() string {
	if d == nil {
		return ""
	}
	return d.ID
}

// Clone returns a copy independent of d.
func (d *HypervisorIDDTO) Clone() *HypervisorIDDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *HypervisorIDDTO) Equal(o *HypervisorIDDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.HypervisorID == o.HypervisorID &&
		d.Reporter == o.Reporter
}

// GuestIDDTO is a guest reported by a hypervisor.
type GuestIDDTO struct {
	Timestamped
	ID         string            `json:"id,omitempty"`
	GuestID    string            `json:"guestId"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Clone returns a copy independent of d.
func (d *GuestIDDTO) Clone() *GuestIDDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Attributes = cloneMap(d.Attributes)
	return &c
}

// Equal reports whether d and o hold the same values.
func (d *GuestIDDTO) Equal(o *GuestIDDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.GuestID == o.GuestID &&
		maps.Equal(d.Attributes, o.Attributes)
}

// ConsumerActivationKeyDTO records an activation key used at registration.
type ConsumerActivationKeyDTO struct {
	ActivationKeyID   string `json:"activationKeyId"`
	ActivationKeyName string `json:"activationKeyName"`
}

func (d *ConsumerActivationKeyDTO) key() string {
	if d == nil {
		return ""
	}
	return d.ActivationKeyID
}
