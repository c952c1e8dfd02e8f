package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

var activationKeyTranslator = translate.Func[domain.ActivationKey, dto.ActivationKeyDTO](
	func(mt *translate.ModelTranslator, src *domain.ActivationKey, dst *dto.ActivationKeyDTO) (*dto.ActivationKeyDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Name = src.Name
		dst.Description = src.Description
		dst.ReleaseVer = releaseDTO(src.ReleaseVer)
		dst.ServiceLevel = src.ServiceLevel
		dst.Role = src.Role
		dst.Usage = src.Usage
		dst.AddOns = cloneStrings(src.AddOns)
		dst.AutoAttach = nil
		if src.AutoAttach != nil {
			dst.AutoAttach = dto.Ptr(*src.AutoAttach)
		}

		dst.Pools = nil
		if src.Pools != nil {
			dst.Pools = make([]*dto.ActivationKeyPoolDTO, 0, len(src.Pools))
			for _, p := range src.Pools {
				var qty *int64
				if p.Quantity != nil {
					qty = dto.Ptr(*p.Quantity)
				}
				dst.Pools = append(dst.Pools, &dto.ActivationKeyPoolDTO{PoolID: p.PoolID, Quantity: qty})
			}
		}

		dst.Products = nil
		if src.ProductIDs != nil {
			dst.Products = make([]*dto.ActivationKeyProductDTO, 0, len(src.ProductIDs))
			for _, id := range src.ProductIDs {
				dst.Products = append(dst.Products, &dto.ActivationKeyProductDTO{ProductID: id})
			}
		}

		dst.ContentOverrides = nil
		if src.ContentOverrides != nil {
			dst.ContentOverrides = make([]*dto.ContentOverrideDTO, 0, len(src.ContentOverrides))
			for _, o := range src.ContentOverrides {
				dst.ContentOverrides = append(dst.ContentOverrides, &dto.ContentOverrideDTO{
					Timestamped:  stamps(o.Created, o.Updated),
					ContentLabel: o.ContentLabel,
					Name:         o.Name,
					Value:        o.Value,
				})
			}
		}

		owner, err := nestedOwner(mt, src.Owner)
		if err != nil {
			return nil, err
		}
		dst.Owner = owner
		return dst, nil
	})

var activationKeyModelTranslator = translate.Func[dto.ActivationKeyDTO, domain.ActivationKey](
	func(_ *translate.ModelTranslator, src *dto.ActivationKeyDTO, dst *domain.ActivationKey) (*domain.ActivationKey, error) {
		dst.ID = src.ID
		dst.Name = src.Name
		dst.Description = src.Description
		dst.Owner = ownerStub(src.Owner)
		dst.ReleaseVer = releaseModel(src.ReleaseVer)
		dst.ServiceLevel = src.ServiceLevel
		dst.Role = src.Role
		dst.Usage = src.Usage
		dst.AddOns = cloneStrings(src.AddOns)
		dst.AutoAttach = nil
		if src.AutoAttach != nil {
			dst.AutoAttach = dto.Ptr(*src.AutoAttach)
		}

		dst.Pools = nil
		for _, p := range src.Pools {
			if p == nil {
				continue
			}
			var qty *int64
			if p.Quantity != nil {
				qty = dto.Ptr(*p.Quantity)
			}
			dst.Pools = append(dst.Pools, domain.ActivationKeyPool{PoolID: p.PoolID, Quantity: qty})
		}

		dst.ProductIDs = nil
		for _, p := range src.Products {
			if p != nil {
				dst.ProductIDs = append(dst.ProductIDs, p.ProductID)
			}
		}

		dst.ContentOverrides = nil
		for _, o := range src.ContentOverrides {
			if o != nil {
				dst.ContentOverrides = append(dst.ContentOverrides, domain.ContentOverride{
					ContentLabel: o.ContentLabel,
					Name:         o.Name,
					Value:        o.Value,
				})
			}
		}
		return dst, nil
	})
