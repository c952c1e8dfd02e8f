package dto

import "slices"

// EnvironmentContentDTO is a piece of content promoted into an environment.
type EnvironmentContentDTO struct {
	ContentID string `json:"contentId"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

// EnvironmentDTO is a named content view within an owner.
type EnvironmentDTO struct {
	Timestamped
	ID                 string                  `json:"id,omitempty"`
	Name               string                  `json:"name,omitempty"`
	Description        string                  `json:"description,omitempty"`
	ContentPrefix      string                  `json:"contentPrefix,omitempty"`
	Owner              *NestedOwnerDTO         `json:"owner,omitempty"`
	EnvironmentContent []EnvironmentContentDTO `json:"environmentContent,omitempty"`
}

// Clone returns a copy independent of d.
func (d *EnvironmentDTO) Clone() *EnvironmentDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Owner = d.Owner.Clone()
	if d.EnvironmentContent != nil {
		c.EnvironmentContent = make([]EnvironmentContentDTO, len(d.EnvironmentContent))
		for i, ec := range d.EnvironmentContent {
			c.EnvironmentContent[i] = EnvironmentContentDTO{ContentID: ec.ContentID, Enabled: clonePtr(ec.Enabled)}
		}
	}
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *EnvironmentDTO) Populate(src *EnvironmentDTO) *EnvironmentDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *EnvironmentDTO) Equal(o *EnvironmentDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.ContentPrefix == o.ContentPrefix &&
		d.Owner.id() == o.Owner.id() &&
		slices.EqualFunc(d.EnvironmentContent, o.EnvironmentContent, func(a, b EnvironmentContentDTO) bool {
			return a.ContentID == b.ContentID && ptrEqual(a.Enabled, b.Enabled)
		})
}
