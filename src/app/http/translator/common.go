package translator

import (
	"time"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

func stamps(created, updated time.Time) dto.Timestamped {
	return dto.Timestamped{Created: dto.TimePtr(created), Updated: dto.TimePtr(updated)}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// nested translates a child object through the registry. Without a registry,
// or for a nil child, it yields nil.
func nested[S, D any](mt *translate.ModelTranslator, src *S) (*D, error) {
	if mt == nil || src == nil {
		return nil, nil
	}
	return translate.Translate[S, D](mt, src)
}

// nestedAll translates a slice of children through the registry. Without a
// registry it yields nil.
func nestedAll[S, D any](mt *translate.ModelTranslator, src []*S) ([]*D, error) {
	if mt == nil {
		return nil, nil
	}
	return translate.TranslateAll[S, D](mt, src)
}

// nestedValues is nestedAll for slices of values.
func nestedValues[S, D any](mt *translate.ModelTranslator, src []S) ([]*D, error) {
	if mt == nil {
		return nil, nil
	}
	return translate.TranslateValues[S, D](mt, src)
}

func nestedOwner(mt *translate.ModelTranslator, o *domain.Owner) (*dto.NestedOwnerDTO, error) {
	return nested[domain.Owner, dto.NestedOwnerDTO](mt, o)
}

// ownerStub returns an owner holding only the identifiers of ref.
func ownerStub(ref *dto.NestedOwnerDTO) *domain.Owner {
	if ref == nil || (ref.ID == "" && ref.Key == "") {
		return nil
	}
	return &domain.Owner{ID: ref.ID, Key: ref.Key, DisplayName: ref.DisplayName}
}

func releaseDTO(r *domain.Release) *dto.ReleaseVerDTO {
	if r == nil {
		return nil
	}
	return &dto.ReleaseVerDTO{ReleaseVer: r.ReleaseVer}
}

func releaseModel(r *dto.ReleaseVerDTO) *domain.Release {
	if r == nil {
		return nil
	}
	return &domain.Release{ReleaseVer: r.ReleaseVer}
}
