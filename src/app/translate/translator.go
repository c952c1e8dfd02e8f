// Package translate holds the translator contract and the ModelTranslator
// registry that dispatches on (source type, destination type) pairs.
//
// A translator copies one object graph into another. When it is handed a
// registry it also translates nested objects through it; without one the
// nested references on the destination are left nil.
//
//	mt := translate.NewModelTranslator()
//	translate.Register[domain.Owner, dto.OwnerDTO](mt, translator.OwnerTranslator{})
//	out, err := translate.Translate[domain.Owner, dto.OwnerDTO](mt, owner)
package translate

import "errors"

var (
	// ErrNilSource is returned by Populate when the source is nil.
	ErrNilSource = errors.New("translate: source is nil")

	// ErrNilDestination is returned by Populate when the destination is nil.
	ErrNilDestination = errors.New("translate: destination is nil")

	// ErrNoTranslator is returned when the registry has no translator for a pair.
	ErrNoTranslator = errors.New("translate: no translator registered")
)

// Translator converts values of type S into values of type D.
type Translator[S, D any] interface {
	// Translate builds a new D from src. A nil src yields a nil result.
	Translate(mt *ModelTranslator, src *S) (*D, error)

	// Populate copies src into dst and returns dst.
	Populate(mt *ModelTranslator, src *S, dst *D) (*D, error)
}

// PopulateFunc is the shape of a Translator's Populate method.
type PopulateFunc[S, D any] func(mt *ModelTranslator, src *S, dst *D) (*D, error)

// Fresh implements Translate in terms of populate.
func Fresh[S, D any](mt *ModelTranslator, src *S, populate PopulateFunc[S, D]) (*D, error) {
	if src == nil {
		return nil, nil
	}
	return populate(mt, src, new(D))
}

// CheckArgs returns the error Populate should fail with for nil arguments.
func CheckArgs[S, D any](src *S, dst *D) error {
	if src == nil {
		return ErrNilSource
	}
	if dst == nil {
		return ErrNilDestination
	}
	return nil
}

// Func adapts a populate function into a Translator.
type Func[S, D any] PopulateFunc[S, D]

// Translate implements Translator.
func (f Func[S, D]) Translate(mt *ModelTranslator, src *S) (*D, error) {
	return Fresh(mt, src, f.Populate)
}

// Populate implements Translator.
func (f Func[S, D]) Populate(mt *ModelTranslator, src *S, dst *D) (*D, error) {
	if err := CheckArgs(src, dst); err != nil {
		return nil, err
	}
	return f(mt, src, dst)
}
