package translate

import (
	"fmt"
	"reflect"
	"sync"
)

type pairKey struct {
	src reflect.Type
	dst reflect.Type
}

func keyOf[S, D any]() pairKey {
	return pairKey{
		src: reflect.TypeOf((*S)(nil)).Elem(),
		dst: reflect.TypeOf((*D)(nil)).Elem(),
	}
}

// ModelTranslator is a registry of translators keyed by source and
// destination type. It is safe for concurrent use.
type ModelTranslator struct {
	mu          sync.RWMutex
	translators map[pairKey]any
}

// NewModelTranslator returns an empty registry.
func NewModelTranslator() *ModelTranslator {
	return &ModelTranslator{translators: make(map[pairKey]any)}
}

// Len returns the number of registered pairs.
func (mt *ModelTranslator) Len() int {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return len(mt.translators)
}

// Register installs t for the (S, D) pair and returns the translator it
// replaced, if any.
func Register[S, D any](mt *ModelTranslator, t Translator[S, D]) Translator[S, D] {
	if t == nil {
		panic("translate: nil translator")
	}
	k := keyOf[S, D]()

	mt.mu.Lock()
	defer mt.mu.Unlock()

	prev, _ := mt.translators[k].(Translator[S, D])
	mt.translators[k] = t
	return prev
}

// Unregister removes the translator for (S, D) and reports whether one existed.
func Unregister[S, D any](mt *ModelTranslator) bool {
	k := keyOf[S, D]()

	mt.mu.Lock()
	defer mt.mu.Unlock()

	if _, ok := mt.translators[k]; !ok {
		return false
	}
	delete(mt.translators, k)
	return true
}

// Find returns the translator registered for (S, D).
func Find[S, D any](mt *ModelTranslator) (Translator[S, D], bool) {
	if mt == nil {
		return nil, false
	}
	k := keyOf[S, D]()

	mt.mu.RLock()
	defer mt.mu.RUnlock()

	t, ok := mt.translators[k].(Translator[S, D])
	return t, ok
}

// Translate dispatches src to the translator registered for (S, D), passing
// the registry along so nested objects are translated too.
func Translate[S, D any](mt *ModelTranslator, src *S) (*D, error) {
	t, ok := Find[S, D](mt)
	if !ok {
		k := keyOf[S, D]()
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoTranslator, k.src, k.dst)
	}
	return t.Translate(mt, src)
}

// TranslateAll translates every element of src in order. Nil elements are dropped.
func TranslateAll[S, D any](mt *ModelTranslator, src []*S) ([]*D, error) {
	if src == nil {
		return nil, nil
	}
	t, ok := Find[S, D](mt)
	if !ok {
		k := keyOf[S, D]()
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoTranslator, k.src, k.dst)
	}

	out := make([]*D, 0, len(src))
	for _, s := range src {
		if s == nil {
			continue
		}
		d, err := t.Translate(mt, s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// TranslateValues is TranslateAll for slices of values.
func TranslateValues[S, D any](mt *ModelTranslator, src []S) ([]*D, error) {
	if src == nil {
		return nil, nil
	}
	ptrs := make([]*S, len(src))
	for i := range src {
		ptrs[i] = &src[i]
	}
	return TranslateAll[S, D](mt, ptrs)
}
