package dto

// ConsumerTypeDTO classifies a consumer.
type ConsumerTypeDTO struct {
	Timestamped
	ID       string `json:"id,omitempty"`
	Label    string `json:"label,omitempty"`
	Manifest *bool  `json:"manifest,omitempty"`
}

// Clone returns a copy independent of d.
func (d *ConsumerTypeDTO) Clone() *ConsumerTypeDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Manifest = clonePtr(d.Manifest)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *ConsumerTypeDTO) Populate(src *ConsumerTypeDTO) *ConsumerTypeDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *ConsumerTypeDTO) Equal(o *ConsumerTypeDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Label == o.Label &&
		ptrEqual(d.Manifest, o.Manifest)
}
