package domain

import "time"

// CertificateSerial tracks the serial number and lifecycle of an issued certificate.
type CertificateSerial struct {
	ID         int64
	Serial     int64
	Expiration time.Time
	Collected  bool
	Revoked    bool
	Created    time.Time
	Updated    time.Time
}

// Certificate is a PEM encoded key/certificate pair: identity certificates,
// entitlement certificates and subscription certificates all share this shape.
type Certificate struct {
	ID      string
	Key     string
	Cert    string
	Serial  *CertificateSerial
	Created time.Time
	Updated time.Time
}
