package repo

import (
	"context"
	"sort"
	"sync"

	"candlepin/src/core/domain"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]*Document
	keys map[string]map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]*Document),
		keys: make(map[string]map[string]string),
	}
}

func (s *MemoryStore) Health(context.Context) error {
	return nil
}

func (s *MemoryStore) Insert(_ context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[d.Kind][d.ID]; ok {
		return domain.NewAlreadyExistsError(d.Kind, d.ID)
	}
	if d.Key != "" {
		if _, ok := s.keys[d.Kind][d.Key]; ok {
			return domain.NewAlreadyExistsError(d.Kind, d.Key)
		}
	}
	s.put(d)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.docs[d.Kind][d.ID]
	if !ok {
		return domain.NewNotFoundError(d.Kind, d.ID)
	}
	if d.Key != "" && d.Key != old.Key {
		if _, taken := s.keys[d.Kind][d.Key]; taken {
			return domain.NewAlreadyExistsError(d.Kind, d.Key)
		}
	}
	if old.Key != "" {
		delete(s.keys[d.Kind], old.Key)
	}
	next := d.clone()
	next.Created = old.Created
	s.put(next)
	return nil
}

// put stores d; the caller holds the write lock.
func (s *MemoryStore) put(d *Document) {
	if s.docs[d.Kind] == nil {
		s.docs[d.Kind] = make(map[string]*Document)
		s.keys[d.Kind] = make(map[string]string)
	}
	s.docs[d.Kind][d.ID] = d.clone()
	if d.Key != "" {
		s.keys[d.Kind][d.Key] = d.ID
	}
}

func (s *MemoryStore) Get(_ context.Context, kind, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[kind][id]
	if !ok {
		return nil, domain.NewNotFoundError(kind, id)
	}
	return d.clone(), nil
}

func (s *MemoryStore) GetByKey(ctx context.Context, kind, key string) (*Document, error) {
	s.mu.RLock()
	id, ok := s.keys[kind][key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.NewNotFoundError(kind, key)
	}
	return s.Get(ctx, kind, id)
}

func (s *MemoryStore) List(_ context.Context, kind, scope string) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Document, 0, len(s.docs[kind]))
	for _, d := range s.docs[kind] {
		if scope == "" || d.Scope == scope {
			out = append(out, d.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[kind][id]
	if !ok {
		return domain.NewNotFoundError(kind, id)
	}
	if d.Key != "" {
		delete(s.keys[kind], d.Key)
	}
	delete(s.docs[kind], id)
	return nil
}
