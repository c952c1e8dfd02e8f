package domain

import (
	"strings"
	"time"
)

// Well-known consumer facts.
const (
	FactVirtIsGuest = "virt.is_guest"
	FactVirtUUID    = "virt.uuid"
)

// ConsumerType classifies consumers (system, hypervisor, candlepin, ...).
// Manifest types are the ones that may export entitlements.
type ConsumerType struct {
	ID       string
	Label    string
	Manifest bool
	Created  time.Time
	Updated  time.Time
}

// Release is the release version a consumer is pinned to.
type Release struct {
	ReleaseVer string
}

// ConsumerInstalledProduct is a product a consumer reports as installed.
type ConsumerInstalledProduct struct {
	ID          string
	ProductID   string
	ProductName string
	Version     string
	Arch        string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	Created     time.Time
	Updated     time.Time
}

// ConsumerCapability is a named client capability.
type ConsumerCapability struct {
	Name string
}

// HypervisorID identifies the hypervisor a consumer represents.
type HypervisorID struct {
	ID           string
	HypervisorID string
	Reporter     string
	OwnerID      string
	Created      time.Time
	Updated      time.Time
}

// GuestID is a guest reported by a hypervisor consumer.
type GuestID struct {
	ID         string
	GuestID    string
	Attributes map[string]string
	Created    time.Time
	Updated    time.Time
}

// ConsumerActivationKey records an activation key used to register a consumer.
type ConsumerActivationKey struct {
	ActivationKeyID   string
	ActivationKeyName string
}

// Consumer is a registered system, hypervisor or downstream distributor.
type Consumer struct {
	ID                  string
	UUID                string
	Name                string
	Username            string
	EntitlementStatus   string
	ServiceLevel        string
	Role                string
	Usage               string
	AddOns              []string
	SystemPurposeStatus string
	ServiceType         string
	ReleaseVer          *Release
	Owner               *Owner
	// Environments are kept in priority order, highest first.
	Environments      []*Environment
	EntitlementCount  int64
	Facts             map[string]string
	LastCheckin       *time.Time
	InstalledProducts []ConsumerInstalledProduct
	CanActivate       bool
	Capabilities      []ConsumerCapability
	HypervisorID      *HypervisorID
	ContentTags       []string
	Autoheal          bool
	RecipientOwnerKey string
	Annotations       string
	ContentAccessMode string
	Type              *ConsumerType
	IDCert            *Certificate
	GuestIDs          []GuestID
	ActivationKeys    []ConsumerActivationKey
	Created           time.Time
	Updated           time.Time
}

// OwnerID returns the id of the owning organization, or "" when unset.
func (c *Consumer) OwnerID() string {
	if c.Owner == nil {
		return ""
	}
	return c.Owner.ID
}

// IsGuest reports whether the consumer declares itself a virtual guest.
func (c *Consumer) IsGuest() bool {
	return strings.EqualFold(c.Facts[FactVirtIsGuest], "true")
}

// IsManifest reports whether the consumer is a distributor that can export manifests.
func (c *Consumer) IsManifest() bool {
	return c.Type != nil && c.Type.Manifest
}
