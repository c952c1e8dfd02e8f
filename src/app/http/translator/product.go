package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

var contentTranslator = translate.Func[domain.Content, dto.ContentDTO](
	func(_ *translate.ModelTranslator, src *domain.Content, dst *dto.ContentDTO) (*dto.ContentDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.UUID = src.UUID
		dst.ID = src.ID
		dst.Type = src.Type
		dst.Label = src.Label
		dst.Name = src.Name
		dst.Vendor = src.Vendor
		dst.ContentURL = src.ContentURL
		dst.RequiredTags = src.RequiredTags
		dst.ReleaseVer = src.ReleaseVer
		dst.GPGURL = src.GPGURL
		dst.MetadataExpiration = nil
		if src.MetadataExpiration != nil {
			dst.MetadataExpiration = dto.Ptr(*src.MetadataExpiration)
		}
		dst.ModifiedProductIDs = cloneStrings(src.ModifiedProductIDs)
		dst.Arches = src.Arches
		dst.Locked = dto.Ptr(src.Locked)
		return dst, nil
	})

var contentModelTranslator = translate.Func[dto.ContentDTO, domain.Content](
	func(_ *translate.ModelTranslator, src *dto.ContentDTO, dst *domain.Content) (*domain.Content, error) {
		dst.UUID = src.UUID
		dst.ID = src.ID
		dst.Type = src.Type
		dst.Label = src.Label
		dst.Name = src.Name
		dst.Vendor = src.Vendor
		dst.ContentURL = src.ContentURL
		dst.RequiredTags = src.RequiredTags
		dst.ReleaseVer = src.ReleaseVer
		dst.GPGURL = src.GPGURL
		dst.MetadataExpiration = nil
		if src.MetadataExpiration != nil {
			dst.MetadataExpiration = dto.Ptr(*src.MetadataExpiration)
		}
		dst.ModifiedProductIDs = cloneStrings(src.ModifiedProductIDs)
		dst.Arches = src.Arches
		return dst, nil
	})

var productContentTranslator = translate.Func[domain.ProductContent, dto.ProductContentDTO](
	func(mt *translate.ModelTranslator, src *domain.ProductContent, dst *dto.ProductContentDTO) (*dto.ProductContentDTO, error) {
		dst.Enabled = dto.Ptr(src.Enabled)
		content, err := nested[domain.Content, dto.ContentDTO](mt, src.Content)
		if err != nil {
			return nil, err
		}
		dst.Content = content
		return dst, nil
	})

var brandingTranslator = translate.Func[domain.Branding, dto.BrandingDTO](
	func(_ *translate.ModelTranslator, src *domain.Branding, dst *dto.BrandingDTO) (*dto.BrandingDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.ProductID = src.ProductID
		dst.Name = src.Name
		dst.Type = src.Type
		return dst, nil
	})

// ProductTranslator translates products into their API form.
type ProductTranslator struct{}

// Translate implements translate.Translator.
func (t ProductTranslator) Translate(mt *translate.ModelTranslator, src *domain.Product) (*dto.ProductDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t ProductTranslator) Populate(mt *translate.ModelTranslator, src *domain.Product, dst *dto.ProductDTO) (*dto.ProductDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.UUID = src.UUID
	dst.ID = src.ID
	dst.Name = src.Name
	dst.Multiplier = dto.Ptr(src.Multiplier)
	dst.Attributes = cloneMap(src.Attributes)
	dst.DependentProductIDs = cloneStrings(src.DependentProductIDs)
	dst.Locked = dto.Ptr(src.Locked)

	var err error
	if dst.ProductContent, err = nestedValues[domain.ProductContent, dto.ProductContentDTO](mt, src.ProductContent); err != nil {
		return nil, err
	}
	if dst.Branding, err = nestedValues[domain.Branding, dto.BrandingDTO](mt, src.Branding); err != nil {
		return nil, err
	}
	if dst.DerivedProduct, err = nested[domain.Product, dto.ProductDTO](mt, src.DerivedProduct); err != nil {
		return nil, err
	}
	if dst.ProvidedProducts, err = nestedAll[domain.Product, dto.ProductDTO](mt, src.ProvidedProducts); err != nil {
		return nil, err
	}
	return dst, nil
}

// ProductModelTranslator reads a product payload back into the domain.
type ProductModelTranslator struct{}

// Translate implements translate.Translator.
func (t ProductModelTranslator) Translate(mt *translate.ModelTranslator, src *dto.ProductDTO) (*domain.Product, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator. Content and product children are
// read through the registry; without one they are left empty.
func (t ProductModelTranslator) Populate(mt *translate.ModelTranslator, src *dto.ProductDTO, dst *domain.Product) (*domain.Product, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.UUID = src.UUID
	dst.ID = src.ID
	dst.Name = src.Name
	dst.Multiplier = dto.Deref(src.Multiplier)
	dst.Attributes = cloneMap(src.Attributes)
	dst.DependentProductIDs = cloneStrings(src.DependentProductIDs)

	dst.Branding = nil
	for _, b := range src.Branding {
		if b != nil {
			dst.Branding = append(dst.Branding, domain.Branding{ID: b.ID, ProductID: b.ProductID, Name: b.Name, Type: b.Type})
		}
	}

	dst.ProductContent = nil
	dst.DerivedProduct = nil
	dst.ProvidedProducts = nil
	if mt == nil {
		return dst, nil
	}

	for _, pc := range src.ProductContent {
		if pc == nil {
			continue
		}
		content, err := nested[dto.ContentDTO, domain.Content](mt, pc.Content)
		if err != nil {
			return nil, err
		}
		dst.ProductContent = append(dst.ProductContent, domain.ProductContent{
			Content: content,
			Enabled: pc.Enabled == nil || *pc.Enabled,
		})
	}

	var err error
	if dst.DerivedProduct, err = nested[dto.ProductDTO, domain.Product](mt, src.DerivedProduct); err != nil {
		return nil, err
	}
	if dst.ProvidedProducts, err = translate.TranslateAll[dto.ProductDTO, domain.Product](mt, src.ProvidedProducts); err != nil {
		return nil, err
	}
	return dst, nil
}
