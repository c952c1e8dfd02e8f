package dto

import (
	"maps"
	"slices"
	"time"
)

// Timestamped carries the creation and last update time of a record.
type Timestamped struct {
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// SetCreated sets the creation time; the zero time clears it.
func (t *Timestamped) SetCreated(v time.Time) {
	t.Created = TimePtr(v)
}

// SetUpdated sets the update time; the zero time clears it.
func (t *Timestamped) SetUpdated(v time.Time) {
	t.Updated = TimePtr(v)
}

func (t Timestamped) timestampsEqual(o Timestamped) bool {
	return timeEqual(t.Created, o.Created) && timeEqual(t.Updated, o.Updated)
}

func (t Timestamped) cloneTimestamps() Timestamped {
	return Timestamped{Created: clonePtr(t.Created), Updated: clonePtr(t.Updated)}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// TimePtr returns a pointer to t, or nil for the zero time.
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func cloneStrings(s []string) []string {
	return slices.Clone(s)
}

func cloneMap(m map[string]string) map[string]string {
	return maps.Clone(m)
}

// stringSetEqual compares two string collections ignoring order and duplicates.
func stringSetEqual(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return len(seen) == len(set)
}

// cloneAll deep copies a slice of DTO pointers through each element's Clone.
func cloneAll[T any](in []*T, clone func(*T) *T) []*T {
	if in == nil {
		return nil
	}
	out := make([]*T, len(in))
	for i, v := range in {
		if v != nil {
			out[i] = clone(v)
		}
	}
	return out
}

// allEqual compares two slices of DTO pointers element-wise.
func allEqual[T any](a, b []*T, eq func(x, y *T) bool) bool {
	return slices.EqualFunc(a, b, eq)
}

// setEqualBy compares two slices as multisets keyed by key, then element-wise
// within matching keys.
func setEqualBy[T any](a, b []*T, key func(*T) string, eq func(x, y *T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	idx := make(map[string][]*T, len(a))
	for _, v := range a {
		k := key(v)
		idx[k] = append(idx[k], v)
	}
	for _, v := range b {
		k := key(v)
		pending := idx[k]
		i := slices.IndexFunc(pending, func(w *T) bool { return eq(w, v) })
		if i < 0 {
			return false
		}
		idx[k] = slices.Delete(pending, i, i+1)
	}
	return true
}
