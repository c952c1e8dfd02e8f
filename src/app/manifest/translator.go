package manifest

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// SubscriptionQuantity rebuilds the upstream subscription quantity from a
// pool. The instance multiplier only applies to pools that were not imported
// from an upstream pool; the product multiplier always applies. Unlimited
// pools stay unlimited.
func SubscriptionQuantity(pool *domain.Pool) int64 {
	if pool == nil {
		return 0
	}
	q := pool.Quantity
	if q < 0 {
		return domain.Unlimited
	}
	if m := pool.Product.InstanceMultiplier(); m > 0 && pool.UpstreamPoolID == "" {
		q /= m
	}
	return q / pool.Product.EffectiveMultiplier()
}

// PoolQuantity is the inverse of SubscriptionQuantity: the pool quantity
// created for a subscription of subQty units of product.
func PoolQuantity(subQty int64, product *domain.Product, upstreamPoolID string) int64 {
	return product.PoolQuantity(subQty, upstreamPoolID)
}

// PoolToSubscriptionTranslator rebuilds a subscription from the pool it created.
type PoolToSubscriptionTranslator struct{}

// Translate implements translate.Translator.
func (t PoolToSubscriptionTranslator) Translate(mt *translate.ModelTranslator, src *domain.Pool) (*SubscriptionDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t PoolToSubscriptionTranslator) Populate(mt *translate.ModelTranslator, src *domain.Pool, dst *SubscriptionDTO) (*SubscriptionDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.ID = src.SubscriptionID
	if dst.ID == "" {
		dst.ID = src.ID
	}
	dst.Quantity = dto.Ptr(SubscriptionQuantity(src))
	dst.StartDate = dto.TimePtr(src.StartDate)
	dst.EndDate = dto.TimePtr(src.EndDate)
	dst.LastModified = dto.TimePtr(src.Updated)
	dst.ContractNumber = src.ContractNumber
	dst.AccountNumber = src.AccountNumber
	dst.OrderNumber = src.OrderNumber
	dst.UpstreamPoolID = src.UpstreamPoolID
	dst.UpstreamEntitlementID = src.UpstreamEntitlementID
	dst.UpstreamConsumerID = src.UpstreamConsumerID

	dst.Owner, dst.Product, dst.DerivedProduct = nil, nil, nil
	dst.ProvidedProducts, dst.DerivedProvidedProducts = nil, nil
	dst.Branding, dst.Certificate, dst.Cdn = nil, nil, nil
	if mt == nil {
		return dst, nil
	}

	var err error
	if dst.Owner, err = translate.Translate[domain.Owner, dto.OwnerDTO](mt, src.Owner); err != nil {
		return nil, err
	}
	if dst.Certificate, err = translate.Translate[domain.Certificate, dto.CertificateDTO](mt, src.Cert); err != nil {
		return nil, err
	}
	if dst.Cdn, err = translate.Translate[domain.Cdn, CdnDTO](mt, src.Cdn); err != nil {
		return nil, err
	}

	product := src.Product
	if product == nil {
		return dst, nil
	}
	if dst.Product, err = translate.Translate[domain.Product, dto.ProductDTO](mt, product); err != nil {
		return nil, err
	}
	if dst.ProvidedProducts, err = translate.TranslateAll[domain.Product, dto.ProductDTO](mt, product.ProvidedProducts); err != nil {
		return nil, err
	}
	if dst.Branding, err = translate.TranslateValues[domain.Branding, dto.BrandingDTO](mt, product.Branding); err != nil {
		return nil, err
	}
	if derived := product.DerivedProduct; derived != nil {
		if dst.DerivedProduct, err = translate.Translate[domain.Product, dto.ProductDTO](mt, derived); err != nil {
			return nil, err
		}
		if dst.DerivedProvidedProducts, err = translate.TranslateAll[domain.Product, dto.ProductDTO](mt, derived.ProvidedProducts); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

var cdnTranslator = translate.Func[domain.Cdn, CdnDTO](
	func(mt *translate.ModelTranslator, src *domain.Cdn, dst *CdnDTO) (*CdnDTO, error) {
		dst.ID = src.ID
		dst.Label = src.Label
		dst.Name = src.Name
		dst.URL = src.URL
		dst.Certificate = nil
		if mt != nil {
			cert, err := translate.Translate[domain.Certificate, dto.CertificateDTO](mt, src.Cert)
			if err != nil {
				return nil, err
			}
			dst.Certificate = cert
		}
		return dst, nil
	})

var consumerTranslator = translate.Func[domain.Consumer, ConsumerDTO](
	func(mt *translate.ModelTranslator, src *domain.Consumer, dst *ConsumerDTO) (*ConsumerDTO, error) {
		dst.UUID = src.UUID
		dst.Name = src.Name
		dst.ContentAccessMode = src.ContentAccessMode
		dst.Owner, dst.Type = nil, nil
		if mt == nil {
			return dst, nil
		}

		var err error
		if dst.Owner, err = translate.Translate[domain.Owner, dto.OwnerDTO](mt, src.Owner); err != nil {
			return nil, err
		}
		if dst.Type, err = translate.Translate[domain.ConsumerType, dto.ConsumerTypeDTO](mt, src.Type); err != nil {
			return nil, err
		}
		return dst, nil
	})

var poolTranslator = translate.Func[domain.Pool, PoolDTO](
	func(mt *translate.ModelTranslator, src *domain.Pool, dst *PoolDTO) (*PoolDTO, error) {
		dst.ID = src.ID
		dst.ContractNumber = src.ContractNumber
		dst.AccountNumber = src.AccountNumber
		dst.OrderNumber = src.OrderNumber
		dst.StartDate = dto.TimePtr(src.StartDate)
		dst.EndDate = dto.TimePtr(src.EndDate)

		dst.ProductID, dst.DerivedProductID = "", ""
		dst.ProvidedProducts, dst.DerivedProvidedProducts, dst.Branding = nil, nil, nil
		if src.Product == nil {
			return dst, nil
		}
		dst.ProductID = src.Product.ID
		dst.ProvidedProducts = provided(src.Product.ProvidedProducts)
		if d := src.DerivedProduct(); d != nil {
			dst.DerivedProductID = d.ID
			dst.DerivedProvidedProducts = provided(d.ProvidedProducts)
		}
		if mt != nil {
			branding, err := translate.TranslateValues[domain.Branding, dto.BrandingDTO](mt, src.Product.Branding)
			if err != nil {
				return nil, err
			}
			dst.Branding = branding
		}
		return dst, nil
	})

var entitlementTranslator = translate.Func[domain.Entitlement, EntitlementDTO](
	func(mt *translate.ModelTranslator, src *domain.Entitlement, dst *EntitlementDTO) (*EntitlementDTO, error) {
		dst.ID = src.ID
		dst.Quantity = dto.Ptr(src.Quantity)
		dst.DeletedFromPool = dto.Ptr(src.DeletedFromPool)
		dst.StartDate = src.StartDate()
		dst.EndDate = src.EndDate()
		dst.Owner, dst.Consumer, dst.Pool, dst.Certificates = nil, nil, nil, nil
		if mt == nil {
			return dst, nil
		}

		var err error
		if dst.Owner, err = translate.Translate[domain.Owner, dto.OwnerDTO](mt, src.Owner); err != nil {
			return nil, err
		}
		if dst.Consumer, err = translate.Translate[domain.Consumer, ConsumerDTO](mt, src.Consumer); err != nil {
			return nil, err
		}
		if dst.Pool, err = translate.Translate[domain.Pool, PoolDTO](mt, src.Pool); err != nil {
			return nil, err
		}
		if dst.Certificates, err = translate.TranslateAll[domain.Certificate, dto.CertificateDTO](mt, src.Certificates); err != nil {
			return nil, err
		}
		return dst, nil
	})

func provided(products []*domain.Product) []*ProvidedProductDTO {
	if products == nil {
		return nil
	}
	out := make([]*ProvidedProductDTO, 0, len(products))
	for _, p := range products {
		if p != nil {
			out = append(out, &ProvidedProductDTO{ProductID: p.ID, ProductName: p.Name})
		}
	}
	return out
}

// RegisterAll wires the manifest translators into mt. The API translators
// must be registered as well for nested owners, products and certificates.
func RegisterAll(mt *translate.ModelTranslator) *translate.ModelTranslator {
	translate.Register[domain.Pool, SubscriptionDTO](mt, PoolToSubscriptionTranslator{})
	translate.Register[domain.Cdn, CdnDTO](mt, cdnTranslator)
	translate.Register[domain.Consumer, ConsumerDTO](mt, consumerTranslator)
	translate.Register[domain.Pool, PoolDTO](mt, poolTranslator)
	translate.Register[domain.Entitlement, EntitlementDTO](mt, entitlementTranslator)
	return mt
}
