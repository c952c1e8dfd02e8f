// Package repo implements the repository ports on top of a document store.
//
// Every aggregate is stored as a JSON document addressed by (kind, id), with
// an optional secondary key that is unique within the kind and a scope used
// for listing (normally the owning organization). References to other
// aggregates are stored as id-only stubs and hydrated on read.
//
// Two stores are provided: PostgresStore for deployments and MemoryStore for
// tests and single-process use.
package repo

import (
	"context"
	"time"
)

// Document is one stored aggregate.
type Document struct {
	Kind    string
	ID      string
	Key     string
	Scope   string
	Data    []byte
	Created time.Time
	Updated time.Time
}

func (d *Document) clone() *Document {
	c := *d
	c.Data = append([]byte(nil), d.Data...)
	return &c
}

// Store persists documents.
//
// Insert fails with an already-exists error when the id or a non-empty key is
// taken. Update and Delete fail with a not-found error when the id is absent.
// List returns documents in creation order; an empty scope lists the kind.
type Store interface {
	Insert(ctx context.Context, d *Document) error
	Update(ctx context.Context, d *Document) error
	Get(ctx context.Context, kind, id string) (*Document, error)
	GetByKey(ctx context.Context, kind, key string) (*Document, error)
	List(ctx context.Context, kind, scope string) ([]*Document, error)
	Delete(ctx context.Context, kind, id string) error
	Health(ctx context.Context) error
}
