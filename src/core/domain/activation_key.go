package domain

import "time"

// ActivationKeyPool attaches a pool to an activation key, optionally with a quantity.
type ActivationKeyPool struct {
	PoolID   string
	Quantity *int64
}

// ContentOverride overrides a content attribute for consumers registered
// with an activation key.
type ContentOverride struct {
	ContentLabel string
	Name         string
	Value        string
	Created      time.Time
	Updated      time.Time
}

// ActivationKey is a pre-shared registration recipe.
type ActivationKey struct {
	ID               string
	Name             string
	Description      string
	Owner            *Owner
	ReleaseVer       *Release
	ServiceLevel     string
	Role             string
	Usage            string
	AddOns           []string
	AutoAttach       *bool
	Pools            []ActivationKeyPool
	ProductIDs       []string
	ContentOverrides []ContentOverride
	Created          time.Time
	Updated          time.Time
}
