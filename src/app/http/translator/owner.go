package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// OwnerTranslator translates owners into their API form.
type OwnerTranslator struct{}

// Translate implements translate.Translator.
func (t OwnerTranslator) Translate(mt *translate.ModelTranslator, src *domain.Owner) (*dto.OwnerDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t OwnerTranslator) Populate(mt *translate.ModelTranslator, src *domain.Owner, dst *dto.OwnerDTO) (*dto.OwnerDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.ID = src.ID
	dst.Key = src.Key
	dst.DisplayName = src.DisplayName
	dst.ContentPrefix = src.ContentPrefix
	dst.DefaultServiceLevel = src.DefaultServiceLevel
	dst.LogLevel = src.LogLevel
	dst.AutobindDisabled = dto.Ptr(src.AutobindDisabled)
	dst.AutobindHypervisorDisabled = dto.Ptr(src.AutobindHypervisorDisabled)
	dst.ContentAccessMode = src.ContentAccessMode
	dst.ContentAccessModeList = src.ContentAccessModeList
	dst.LastRefreshed = cloneTime(src.LastRefreshed)

	parent, err := nestedOwner(mt, src.ParentOwner)
	if err != nil {
		return nil, err
	}
	dst.ParentOwner = parent

	upstream, err := nested[domain.UpstreamConsumer, dto.UpstreamConsumerDTO](mt, src.Upstream)
	if err != nil {
		return nil, err
	}
	dst.Upstream = upstream

	return dst, nil
}

var nestedOwnerTranslator = translate.Func[domain.Owner, dto.NestedOwnerDTO](
	func(_ *translate.ModelTranslator, src *domain.Owner, dst *dto.NestedOwnerDTO) (*dto.NestedOwnerDTO, error) {
		dst.ID = src.ID
		dst.Key = src.Key
		dst.DisplayName = src.DisplayName
		dst.Href = ""
		if src.Key != "" {
			dst.Href = "/owners/" + src.Key
		}
		return dst, nil
	})

var upstreamConsumerTranslator = translate.Func[domain.UpstreamConsumer, dto.UpstreamConsumerDTO](
	func(mt *translate.ModelTranslator, src *domain.UpstreamConsumer, dst *dto.UpstreamConsumerDTO) (*dto.UpstreamConsumerDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.UUID = src.UUID
		dst.Name = src.Name
		dst.APIURL = src.APIURL
		dst.WebURL = src.WebURL
		dst.OwnerID = src.OwnerID
		dst.ContentAccessMode = src.ContentAccessMode

		ctype, err := nested[domain.ConsumerType, dto.ConsumerTypeDTO](mt, src.Type)
		if err != nil {
			return nil, err
		}
		cert, err := nested[domain.Certificate, dto.CertificateDTO](mt, src.IDCert)
		if err != nil {
			return nil, err
		}
		dst.Type = ctype
		dst.IDCert = cert
		return dst, nil
	})

// OwnerModelTranslator reads an owner payload back into the domain.
type OwnerModelTranslator struct{}

// Translate implements translate.Translator.
func (t OwnerModelTranslator) Translate(mt *translate.ModelTranslator, src *dto.OwnerDTO) (*domain.Owner, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator. The upstream consumer is
// server-managed and never read from clients.
func (t OwnerModelTranslator) Populate(_ *translate.ModelTranslator, src *dto.OwnerDTO, dst *domain.Owner) (*domain.Owner, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.ID = src.ID
	dst.Key = src.Key
	dst.DisplayName = src.DisplayName
	dst.ParentOwner = ownerStub(src.ParentOwner)
	dst.ContentPrefix = src.ContentPrefix
	dst.DefaultServiceLevel = src.DefaultServiceLevel
	dst.LogLevel = src.LogLevel
	dst.AutobindDisabled = dto.Deref(src.AutobindDisabled)
	dst.AutobindHypervisorDisabled = dto.Deref(src.AutobindHypervisorDisabled)
	dst.ContentAccessMode = src.ContentAccessMode
	dst.ContentAccessModeList = src.ContentAccessModeList
	return dst, nil
}

var environmentTranslator = translate.Func[domain.Environment, dto.EnvironmentDTO](
	func(mt *translate.ModelTranslator, src *domain.Environment, dst *dto.EnvironmentDTO) (*dto.EnvironmentDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Name = src.Name
		dst.Description = src.Description
		dst.ContentPrefix = src.ContentPrefix

		dst.EnvironmentContent = nil
		if src.Content != nil {
			dst.EnvironmentContent = make([]dto.EnvironmentContentDTO, 0, len(src.Content))
			for _, ec := range src.Content {
				var enabled *bool
				if ec.Enabled != nil {
					enabled = dto.Ptr(*ec.Enabled)
				}
				dst.EnvironmentContent = append(dst.EnvironmentContent, dto.EnvironmentContentDTO{
					ContentID: ec.ContentID,
					Enabled:   enabled,
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
