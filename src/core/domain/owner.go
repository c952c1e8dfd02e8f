package domain

import (
	"strings"
	"time"
)

// Content access modes an owner can run in.
const (
	ContentAccessEntitlement = "entitlement"
	ContentAccessOrgEnv      = "org_environment"
)

// Owner is an organization; every consumer, pool and product belongs to one.
type Owner struct {
	ID                         string
	Key                        string
	DisplayName                string
	ParentOwner                *Owner
	ContentPrefix              string
	DefaultServiceLevel        string
	Upstream                   *UpstreamConsumer
	LogLevel                   string
	AutobindDisabled           bool
	AutobindHypervisorDisabled bool
	ContentAccessMode          string
	ContentAccessModeList      string
	LastRefreshed              *time.Time
	Created                    time.Time
	Updated                    time.Time
}

// UpstreamConsumer is the consumer in the upstream (hosted) system an owner
// received its manifest from.
type UpstreamConsumer struct {
	ID                string
	UUID              string
	Name              string
	APIURL            string
	WebURL            string
	OwnerID           string
	ContentAccessMode string
	Type              *ConsumerType
	IDCert            *Certificate
	Created           time.Time
	Updated           time.Time
}

// Environment is a named content view within an owner.
type Environment struct {
	ID            string
	Name          string
	Description   string
	ContentPrefix string
	Owner         *Owner
	Content       []EnvironmentContent
	Created       time.Time
	Updated       time.Time
}

// EnvironmentContent promotes a piece of content into an environment.
type EnvironmentContent struct {
	ContentID string
	Enabled   *bool
}

// AllowsContentAccessMode reports whether mode appears in the owner's
// comma-separated mode list.
func (o *Owner) AllowsContentAccessMode(mode string) bool {
	for _, m := range strings.Split(o.ContentAccessModeList, ",") {
		if strings.TrimSpace(m) == mode {
			return true
		}
	}
	return false
}
