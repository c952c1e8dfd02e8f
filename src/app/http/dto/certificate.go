package dto

import "time"

// CertificateSerialDTO is the serial record of an issued certificate.
type CertificateSerialDTO struct {
	Timestamped
	ID         *int64     `json:"id,omitempty"`
	Serial     *int64     `json:"serial,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty"`
	Collected  *bool      `json:"collected,omitempty"`
	Revoked    *bool      `json:"revoked,omitempty"`
}

// Clone returns a copy independent of d.
func (d *CertificateSerialDTO) Clone() *CertificateSerialDTO {
	if d == nil {
		return nil
	}
	return &CertificateSerialDTO{
		Timestamped: d.cloneTimestamps(),
		ID:          clonePtr(d.ID),
		Serial:      clonePtr(d.Serial),
		Expiration:  clonePtr(d.Expiration),
		Collected:   clonePtr(d.Collected),
		Revoked:     clonePtr(d.Revoked),
	}
}

// Equal reports whether d and o hold the same values.
func (d *CertificateSerialDTO) Equal(o *CertificateSerialDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		ptrEqual(d.ID, o.ID) &&
		ptrEqual(d.Serial, o.Serial) &&
		timeEqual(d.Expiration, o.Expiration) &&
		ptrEqual(d.Collected, o.Collected) &&
		ptrEqual(d.Revoked, o.Revoked)
}

// CertificateDTO is a PEM encoded key and certificate.
type CertificateDTO struct {
	Timestamped
	ID     string                `json:"id,omitempty"`
	Key    string                `json:"key,omitempty"`
	Cert   string                `json:"cert,omitempty"`
	Serial *CertificateSerialDTO `json:"serial,omitempty"`
}

// Clone returns a copy independent of d.
func (d *CertificateDTO) Clone() *CertificateDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.Serial = d.Serial.Clone()
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *CertificateDTO) Populate(src *CertificateDTO) *CertificateDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *CertificateDTO) Equal(o *CertificateDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Key == o.Key &&
		d.Cert == o.Cert &&
		d.Serial.Equal(o.Serial)
}
