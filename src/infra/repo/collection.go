package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// collection stores one aggregate type as JSON documents of a single kind.
type collection[T any] struct {
	store Store
	kind  string
	// meta fills the addressing and timestamp fields of a document for v.
	meta func(v *T) Document
}

func (c collection[T]) document(v *T) (*Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.kind, err)
	}
	d := c.meta(v)
	d.Kind = c.kind
	d.Data = data
	now := time.Now().UTC()
	if d.Created.IsZero() {
		d.Created = now
	}
	if d.Updated.IsZero() {
		d.Updated = d.Created
	}
	return &d, nil
}

func (c collection[T]) decode(d *Document) (*T, error) {
	var v T
	if err := json.Unmarshal(d.Data, &v); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", c.kind, d.ID, err)
	}
	return &v, nil
}

func (c collection[T]) insert(ctx context.Context, v *T) error {
	d, err := c.document(v)
	if err != nil {
		return err
	}
	return c.store.Insert(ctx, d)
}

func (c collection[T]) update(ctx context.Context, v *T) error {
	d, err := c.document(v)
	if err != nil {
		return err
	}
	return c.store.Update(ctx, d)
}

func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	d, err := c.store.Get(ctx, c.kind, id)
	if err != nil {
		return nil, err
	}
	return c.decode(d)
}

func (c collection[T]) getByKey(ctx context.Context, key string) (*T, error) {
	d, err := c.store.GetByKey(ctx, c.kind, key)
	if err != nil {
		return nil, err
	}
	return c.decode(d)
}

func (c collection[T]) list(ctx context.Context, scope string) ([]*T, error) {
	docs, err := c.store.List(ctx, c.kind, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		v, err := c.decode(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.kind, id)
}

// scopedKey builds a key that is unique within an owner.
func scopedKey(ownerID, id string) string {
	if id == "" {
		return ""
	}
	return ownerID + ":" + id
}
