package ports

import (
	"context"
	"io"
	"time"

	"candlepin/src/core/domain"
)

// EventPublisher delivers domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, e *domain.Event) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// ManifestBundle is everything a manifest archive is generated from.
type ManifestBundle struct {
	Consumer     *domain.Consumer
	Entitlements []*domain.Entitlement
	Principal    string
	CdnLabel     string
	WebURL       string
	APIURL       string
	Created      time.Time
}

// ManifestWriter encodes a manifest archive.
type ManifestWriter interface {
	Write(ctx context.Context, w io.Writer, b *ManifestBundle) error
}

// ManifestContents is what a manifest archive holds once decoded.
//
// Subscriptions are pool-shaped: Quantity is the upstream entitlement
// quantity and Product only carries the product id.
type ManifestContents struct {
	Version       string
	Principal     string
	CdnLabel      string
	Created       time.Time
	Upstream      *domain.UpstreamConsumer
	Products      []*domain.Product
	Subscriptions []*domain.Pool
}

// ManifestReader decodes a manifest archive.
type ManifestReader interface {
	Read(ctx context.Context, r io.ReaderAt, size int64) (*ManifestContents, error)
}
