package dto

import "time"

// PageRequest carries the paging query parameters shared by list endpoints.
type PageRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=1000"`
}

// Bounds returns the slice bounds of this page within n items.
// An unset page selects everything.
func (p PageRequest) Bounds(n int) (lo, hi int) {
	if p.Page == 0 {
		return 0, n
	}
	per := p.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	if p.Page < 0 || p.Page-1 >= (n+per-1)/per {
		return n, n
	}
	lo = (p.Page - 1) * per
	hi = min(lo+per, n)
	return lo, hi
}

// DefaultPerPage applies when a page is requested without a size.
const DefaultPerPage = 10

// ConsumerCreateQuery is the query of POST /consumers.
type ConsumerCreateQuery struct {
	Owner          string `form:"owner" binding:"required,ownerkey"`
	Username       string `form:"username"`
	ActivationKeys string `form:"activation_keys"`
}

// ExportQuery is the query of GET /consumers/:uuid/export.
type ExportQuery struct {
	CdnLabel string `form:"cdn_label"`
	WebURL   string `form:"webapp_prefix"`
	APIURL   string `form:"api_url"`
}

// ImportQuery is the query of POST /owners/:key/imports.
type ImportQuery struct {
	Force bool `form:"force"`
}

// JobQuery filters GET /jobs.
type JobQuery struct {
	PageRequest
	IDs      []string `form:"id"`
	Keys     []string `form:"key"`
	States   []string `form:"state"`
	OwnerKey string   `form:"owner"`
}

// UserCreateRequest is the payload of POST /users.
type UserCreateRequest struct {
	Username   string `json:"username" binding:"required,min=1,max=255"`
	Password   string `json:"password" binding:"required,min=6"`
	SuperAdmin bool   `json:"superAdmin"`
}

// RoleCreateRequest is the payload of POST /roles.
type RoleCreateRequest struct {
	Name        string                    `json:"name" binding:"required,max=255"`
	Users       []*UserDTO                `json:"users"`
	Permissions []*PermissionBlueprintDTO `json:"permissions"`
}

// PoolCreateRequest is the payload of POST /owners/:key/pools. Quantity is
// the subscription quantity; a negative value creates an unlimited pool.
type PoolCreateRequest struct {
	ProductID          string            `json:"productId" binding:"required"`
	Quantity           int64             `json:"quantity"`
	StartDate          *time.Time        `json:"startDate"`
	EndDate            *time.Time        `json:"endDate"`
	SubscriptionID     string            `json:"subscriptionId"`
	SubscriptionSubKey string            `json:"subscriptionSubKey"`
	ContractNumber     string            `json:"contractNumber"`
	AccountNumber      string            `json:"accountNumber"`
	OrderNumber        string            `json:"orderNumber"`
	UpstreamPoolID     string            `json:"upstreamPoolId"`
	Attributes         map[string]string `json:"attributes"`
}

// BindQuery is the query of POST /consumers/:uuid/entitlements.
type BindQuery struct {
	Pool     string `form:"pool" binding:"required"`
	Quantity int    `form:"quantity" binding:"omitempty,min=1"`
}

// ActivationKeyPoolQuery is the query of POST /activation_keys/:id/pools/:pool_id.
type ActivationKeyPoolQuery struct {
	Quantity *int64 `form:"quantity" binding:"omitempty,min=1"`
}

// EventQuery is the query of GET /events.
type EventQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// ContentOverridesRequest is the payload used to set activation key overrides.
type ContentOverridesRequest struct {
	Overrides []*ContentOverrideDTO `json:"overrides" binding:"required,dive"`
}
