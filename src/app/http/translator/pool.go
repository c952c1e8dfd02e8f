package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// PoolTranslator flattens a pool and its product into the API pool form.
type PoolTranslator struct{}

// Translate implements translate.Translator.
func (t PoolTranslator) Translate(mt *translate.ModelTranslator, src *domain.Pool) (*dto.PoolDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t PoolTranslator) Populate(mt *translate.ModelTranslator, src *domain.Pool, dst *dto.PoolDTO) (*dto.PoolDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.ID = src.ID
	dst.Type = string(src.Type)
	dst.ActiveSubscription = dto.Ptr(src.ActiveSubscription)
	dst.Quantity = dto.Ptr(src.Quantity)
	dst.StartDate = dto.TimePtr(src.StartDate)
	dst.EndDate = dto.TimePtr(src.EndDate)
	dst.Attributes = cloneMap(src.Attributes)
	dst.RestrictedToUsername = src.RestrictedToUsername
	dst.ContractNumber = src.ContractNumber
	dst.AccountNumber = src.AccountNumber
	dst.OrderNumber = src.OrderNumber
	dst.Consumed = dto.Ptr(src.Consumed)
	dst.Exported = dto.Ptr(src.Exported)
	dst.CalculatedAttributes = cloneMap(src.CalculatedAttributes)
	dst.UpstreamPoolID = src.UpstreamPoolID
	dst.UpstreamEntitlementID = src.UpstreamEntitlementID
	dst.UpstreamConsumerID = src.UpstreamConsumerID
	dst.SourceStackID = src.SourceStackID
	dst.SubscriptionID = src.SubscriptionID
	dst.SubscriptionSubKey = src.SubscriptionSubKey

	dst.SourceEntitlement = nil
	if src.SourceEntitlementID != "" {
		dst.SourceEntitlement = &dto.EntitlementRefDTO{
			ID:   src.SourceEntitlementID,
			Href: "/entitlements/" + src.SourceEntitlementID,
		}
	}

	dst.ProductID, dst.ProductName, dst.ProductAttributes = "", "", nil
	dst.StackID, dst.Stacked = "", dto.Ptr(false)
	dst.ProvidedProducts = nil
	if p := src.Product; p != nil {
		dst.ProductID = p.ID
		dst.ProductName = p.Name
		dst.ProductAttributes = cloneMap(p.Attributes)
		dst.StackID = src.StackID()
		dst.Stacked = dto.Ptr(src.IsStacked())
		dst.ProvidedProducts = providedRefs(p.ProvidedProducts)
	}

	dst.DerivedProductID, dst.DerivedProductName, dst.DerivedProductAttributes = "", "", nil
	dst.DerivedProvidedProducts = nil
	if d := src.DerivedProduct(); d != nil {
		dst.DerivedProductID = d.ID
		dst.DerivedProductName = d.Name
		dst.DerivedProductAttributes = cloneMap(d.Attributes)
		dst.DerivedProvidedProducts = providedRefs(d.ProvidedProducts)
	}

	var err error
	if dst.Owner, err = nestedOwner(mt, src.Owner); err != nil {
		return nil, err
	}
	dst.Branding = nil
	if src.Product != nil {
		if dst.Branding, err = nestedValues[domain.Branding, dto.BrandingDTO](mt, src.Product.Branding); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func providedRefs(products []*domain.Product) []*dto.ProvidedProductDTO {
	if products == nil {
		return nil
	}
	out := make([]*dto.ProvidedProductDTO, 0, len(products))
	for _, p := range products {
		if p != nil {
			out = append(out, &dto.ProvidedProductDTO{ProductID: p.ID, ProductName: p.Name})
		}
	}
	return out
}

// EntitlementTranslator translates entitlements into their API form.
type EntitlementTranslator struct{}

// Translate implements translate.Translator.
func (t EntitlementTranslator) Translate(mt *translate.ModelTranslator, src *domain.Entitlement) (*dto.EntitlementDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t EntitlementTranslator) Populate(mt *translate.ModelTranslator, src *domain.Entitlement, dst *dto.EntitlementDTO) (*dto.EntitlementDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.ID = src.ID
	dst.Quantity = dto.Ptr(src.Quantity)
	dst.StartDate = src.StartDate()
	dst.EndDate = src.EndDate()

	dst.Consumer = nil
	if c := src.Consumer; c != nil && mt != nil {
		dst.Consumer = &dto.ConsumerRefDTO{UUID: c.UUID, Name: c.Name, Href: "/consumers/" + c.UUID}
	}

	var err error
	if dst.Owner, err = nestedOwner(mt, src.Owner); err != nil {
		return nil, err
	}
	if dst.Pool, err = nested[domain.Pool, dto.PoolDTO](mt, src.Pool); err != nil {
		return nil, err
	}
	if dst.Certificates, err = nestedAll[domain.Certificate, dto.CertificateDTO](mt, src.Certificates); err != nil {
		return nil, err
	}
	return dst, nil
}
