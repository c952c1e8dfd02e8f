package translator

import (
	"strings"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// ConsumerTranslator translates consumers into their API form.
type ConsumerTranslator struct{}

// Translate implements translate.Translator.
func (t ConsumerTranslator) Translate(mt *translate.ModelTranslator, src *domain.Consumer) (*dto.ConsumerDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
//
// Environments keep their priority order. The singular environment is a
// synthetic copy of the highest priority one named after all of them.
// Guest ids are never exposed here; with a registry they come back empty.
func (t ConsumerTranslator) Populate(mt *translate.ModelTranslator, src *domain.Consumer, dst *dto.ConsumerDTO) (*dto.ConsumerDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.ID = src.ID
	dst.UUID = src.UUID
	dst.Name = src.Name
	dst.Username = src.Username
	dst.EntitlementStatus = src.EntitlementStatus
	dst.ServiceLevel = src.ServiceLevel
	dst.Role = src.Role
	dst.Usage = src.Usage
	dst.AddOns = cloneStrings(src.AddOns)
	dst.SystemPurposeStatus = src.SystemPurposeStatus
	dst.ServiceType = src.ServiceType
	dst.EntitlementCount = dto.Ptr(src.EntitlementCount)
	dst.Facts = cloneMap(src.Facts)
	dst.LastCheckin = cloneTime(src.LastCheckin)
	dst.CanActivate = dto.Ptr(src.CanActivate)
	dst.ContentTags = cloneStrings(src.ContentTags)
	dst.Autoheal = dto.Ptr(src.Autoheal)
	dst.RecipientOwnerKey = src.RecipientOwnerKey
	dst.Annotations = src.Annotations
	dst.ContentAccessMode = src.ContentAccessMode

	dst.ReleaseVer = nil
	dst.Owner = nil
	dst.Environment = nil
	dst.Environments = nil
	dst.HypervisorID = nil
	dst.Type = nil
	dst.IDCert = nil
	dst.InstalledProducts = nil
	dst.Capabilities = nil
	dst.GuestIDs = nil
	dst.ActivationKeys = nil

	if mt == nil {
		return dst, nil
	}

	var err error
	dst.ReleaseVer = releaseDTO(src.ReleaseVer)
	if dst.Owner, err = nestedOwner(mt, src.Owner); err != nil {
		return nil, err
	}
	if dst.Type, err = nested[domain.ConsumerType, dto.ConsumerTypeDTO](mt, src.Type); err != nil {
		return nil, err
	}
	if dst.IDCert, err = nested[domain.Certificate, dto.CertificateDTO](mt, src.IDCert); err != nil {
		return nil, err
	}
	if dst.HypervisorID, err = nested[domain.HypervisorID, dto.HypervisorIDDTO](mt, src.HypervisorID); err != nil {
		return nil, err
	}
	if dst.InstalledProducts, err = nestedValues[domain.ConsumerInstalledProduct, dto.InstalledProductDTO](mt, src.InstalledProducts); err != nil {
		return nil, err
	}
	if dst.Capabilities, err = nestedValues[domain.ConsumerCapability, dto.CapabilityDTO](mt, src.Capabilities); err != nil {
		return nil, err
	}
	if src.ActivationKeys != nil {
		dst.ActivationKeys = make([]*dto.ConsumerActivationKeyDTO, 0, len(src.ActivationKeys))
		for _, k := range src.ActivationKeys {
			dst.ActivationKeys = append(dst.ActivationKeys, &dto.ConsumerActivationKeyDTO{
				ActivationKeyID:   k.ActivationKeyID,
				ActivationKeyName: k.ActivationKeyName,
			})
		}
	}

	if len(src.Environments) > 0 {
		if dst.Environments, err = nestedAll[domain.Environment, dto.EnvironmentDTO](mt, src.Environments); err != nil {
			return nil, err
		}
		dst.Environment = syntheticEnvironment(dst.Environments)
	}

	dst.GuestIDs = []*dto.GuestIDDTO{}
	return dst, nil
}

func syntheticEnvironment(envs []*dto.EnvironmentDTO) *dto.EnvironmentDTO {
	if len(envs) == 0 {
		return nil
	}
	names := make([]string, 0, len(envs))
	for _, e := range envs {
		names = append(names, e.Name)
	}
	env := envs[0].Clone()
	env.Name = strings.Join(names, ",")
	return env
}

var consumerTypeTranslator = translate.Func[domain.ConsumerType, dto.ConsumerTypeDTO](
	func(_ *translate.ModelTranslator, src *domain.ConsumerType, dst *dto.ConsumerTypeDTO) (*dto.ConsumerTypeDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Label = src.Label
		dst.Manifest = dto.Ptr(src.Manifest)
		return dst, nil
	})

var installedProductTranslator = translate.Func[domain.ConsumerInstalledProduct, dto.InstalledProductDTO](
	func(_ *translate.ModelTranslator, src *domain.ConsumerInstalledProduct, dst *dto.InstalledProductDTO) (*dto.InstalledProductDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.ProductID = src.ProductID
		dst.ProductName = src.ProductName
		dst.Version = src.Version
		dst.Arch = src.Arch
		dst.Status = src.Status
		dst.StartDate = cloneTime(src.StartDate)
		dst.EndDate = cloneTime(src.EndDate)
		return dst, nil
	})

var capabilityTranslator = translate.Func[domain.ConsumerCapability, dto.CapabilityDTO](
	func(_ *translate.ModelTranslator, src *domain.ConsumerCapability, dst *dto.CapabilityDTO) (*dto.CapabilityDTO, error) {
		dst.Name = src.Name
		return dst, nil
	})

var hypervisorIDTranslator = translate.Func[domain.HypervisorID, dto.HypervisorIDDTO](
	func(_ *translate.ModelTranslator, src *domain.HypervisorID, dst *dto.HypervisorIDDTO) (*dto.HypervisorIDDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.HypervisorID = src.HypervisorID
		dst.Reporter = src.Reporter
		return dst, nil
	})

var guestIDTranslator = translate.Func[domain.GuestID, dto.GuestIDDTO](
	func(_ *translate.ModelTranslator, src *domain.GuestID, dst *dto.GuestIDDTO) (*dto.GuestIDDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.GuestID = src.GuestID
		dst.Attributes = cloneMap(src.Attributes)
		return dst, nil
	})

// ConsumerModelTranslator reads a consumer payload back into the domain.
// References to the owner, type and environments become id-only stubs.
type ConsumerModelTranslator struct{}

// Translate implements translate.Translator.
func (t ConsumerModelTranslator) Translate(mt *translate.ModelTranslator, src *dto.ConsumerDTO) (*domain.Consumer, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t ConsumerModelTranslator) Populate(_ *translate.ModelTranslator, src *dto.ConsumerDTO, dst *domain.Consumer) (*domain.Consumer, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.ID = src.ID
	dst.UUID = src.UUID
	dst.Name = src.Name
	dst.Username = src.Username
	dst.ServiceLevel = src.ServiceLevel
	dst.Role = src.Role
	dst.Usage = src.Usage
	dst.AddOns = cloneStrings(src.AddOns)
	dst.ServiceType = src.ServiceType
	dst.ReleaseVer = releaseModel(src.ReleaseVer)
	dst.Owner = ownerStub(src.Owner)
	dst.Facts = cloneMap(src.Facts)
	dst.LastCheckin = cloneTime(src.LastCheckin)
	dst.ContentTags = cloneStrings(src.ContentTags)
	dst.Autoheal = dto.Deref(src.Autoheal)
	dst.RecipientOwnerKey = src.RecipientOwnerKey
	dst.Annotations = src.Annotations
	dst.ContentAccessMode = src.ContentAccessMode

	dst.Type = nil
	if src.Type != nil {
		dst.Type = &domain.ConsumerType{ID: src.Type.ID, Label: src.Type.Label, Manifest: dto.Deref(src.Type.Manifest)}
	}

	dst.Environments = nil
	for _, e := range src.Environments {
		if e != nil {
			dst.Environments = append(dst.Environments, &domain.Environment{ID: e.ID, Name: e.Name})
		}
	}

	dst.HypervisorID = nil
	if src.HypervisorID != nil {
		dst.HypervisorID = &domain.HypervisorID{
			ID:           src.HypervisorID.ID,
			HypervisorID: src.HypervisorID.HypervisorID,
			Reporter:     src.HypervisorID.Reporter,
		}
	}

	dst.InstalledProducts = nil
	for _, ip := range src.InstalledProducts {
		if ip == nil {
			continue
		}
		dst.InstalledProducts = append(dst.InstalledProducts, domain.ConsumerInstalledProduct{
			ID:          ip.ID,
			ProductID:   ip.ProductID,
			ProductName: ip.ProductName,
			Version:     ip.Version,
			Arch:        ip.Arch,
			Status:      ip.Status,
			StartDate:   cloneTime(ip.StartDate),
			EndDate:     cloneTime(ip.EndDate),
		})
	}

	dst.Capabilities = nil
	for _, c := range src.Capabilities {
		if c != nil {
			dst.Capabilities = append(dst.Capabilities, domain.ConsumerCapability{Name: c.Name})
		}
	}

	dst.GuestIDs = nil
	for _, g := range src.GuestIDs {
		if g != nil {
			dst.GuestIDs = append(dst.GuestIDs, domain.GuestID{ID: g.ID, GuestID: g.GuestID, Attributes: cloneMap(g.Attributes)})
		}
	}

	return dst, nil
}
