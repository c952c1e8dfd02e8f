package dto

import "fmt"

// ContentDTO is a repository of packages provided by products.
type ContentDTO struct {
	Timestamped
	UUID               string   `json:"uuid,omitempty"`
	ID                 string   `json:"id,omitempty"`
	Type               string   `json:"type,omitempty"`
	Label              string   `json:"label,omitempty"`
	Name               string   `json:"name,omitempty"`
	Vendor             string   `json:"vendor,omitempty"`
	ContentURL         string   `json:"contentUrl,omitempty"`
	RequiredTags       string   `json:"requiredTags,omitempty"`
	ReleaseVer         string   `json:"releaseVer,omitempty"`
	GPGURL             string   `json:"gpgUrl,omitempty"`
	MetadataExpiration *int64   `json:"metadataExpire,omitempty"`
	ModifiedProductIDs []string `json:"modifiedProductIds,omitempty"`
	Arches             string   `json:"arches,omitempty"`
	Locked             *bool    `json:"locked,omitempty"`
}

func (d *ContentDTO) String() string {
	return fmt.Sprintf("ContentDTO [id: %s, type: %s, label: %s, name: %s]", d.ID, d.Type, d.Label, d.Name)
}

// Clone returns a copy independent of d.
func (d *ContentDTO) Clone() *ContentDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.MetadataExpiration = clonePtr(d.MetadataExpiration)
	c.ModifiedProductIDs = cloneStrings(d.ModifiedProductIDs)
	c.Locked = clonePtr(d.Locked)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ContentDTO) Populate(src *ContentDTO) *ContentDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *ContentDTO) Equal(o *ContentDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.UUID == o.UUID &&
		d.ID == o.ID &&
		d.Type == o.Type &&
		d.Label == o.Label &&
		d.Name == o.Name &&
		d.Vendor == o.Vendor &&
		d.ContentURL == o.ContentURL &&
		d.RequiredTags == o.RequiredTags &&
		d.ReleaseVer == o.ReleaseVer &&
		d.GPGURL == o.GPGURL &&
		ptrEqual(d.MetadataExpiration, o.MetadataExpiration) &&
		stringSetEqual(d.ModifiedProductIDs, o.ModifiedProductIDs) &&
		d.Arches == o.Arches &&
		ptrEqual(d.Locked, o.Locked)
}
