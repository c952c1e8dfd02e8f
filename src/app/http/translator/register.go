package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// RegisterAll wires every API v1 translator into mt and returns it.
func RegisterAll(mt *translate.ModelTranslator) *translate.ModelTranslator {
	translate.Register[domain.Owner, dto.OwnerDTO](mt, OwnerTranslator{})
	translate.Register[domain.Owner, dto.NestedOwnerDTO](mt, nestedOwnerTranslator)
	translate.Register[domain.UpstreamConsumer, dto.UpstreamConsumerDTO](mt, upstreamConsumerTranslator)
	translate.Register[domain.Environment, dto.EnvironmentDTO](mt, environmentTranslator)
	translate.Register[domain.Certificate, dto.CertificateDTO](mt, certificateTranslator)
	translate.Register[domain.CertificateSerial, dto.CertificateSerialDTO](mt, certificateSerialTranslator)

	translate.Register[domain.Consumer, dto.ConsumerDTO](mt, ConsumerTranslator{})
	translate.Register[domain.ConsumerType, dto.ConsumerTypeDTO](mt, consumerTypeTranslator)
	translate.Register[domain.ConsumerInstalledProduct, dto.InstalledProductDTO](mt, installedProductTranslator)
	translate.Register[domain.ConsumerCapability, dto.CapabilityDTO](mt, capabilityTranslator)
	translate.Register[domain.HypervisorID, dto.HypervisorIDDTO](mt, hypervisorIDTranslator)
	translate.Register[domain.GuestID, dto.GuestIDDTO](mt, guestIDTranslator)

	translate.Register[domain.Content, dto.ContentDTO](mt, contentTranslator)
	translate.Register[domain.ProductContent, dto.ProductContentDTO](mt, productContentTranslator)
	translate.Register[domain.Branding, dto.BrandingDTO](mt, brandingTranslator)
	translate.Register[domain.Product, dto.ProductDTO](mt, ProductTranslator{})
	translate.Register[domain.Pool, dto.PoolDTO](mt, PoolTranslator{})
	translate.Register[domain.Entitlement, dto.EntitlementDTO](mt, EntitlementTranslator{})
	translate.Register[domain.ActivationKey, dto.ActivationKeyDTO](mt, activationKeyTranslator)

	translate.Register[domain.Role, dto.RoleDTO](mt, RoleTranslator{})
	translate.Register[domain.User, dto.UserDTO](mt, userTranslator)
	translate.Register[domain.PermissionBlueprint, dto.PermissionBlueprintDTO](mt, permissionTranslator)
	translate.Register[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](mt, jobStatusTranslator)
	translate.Register[domain.Event, dto.EventDTO](mt, eventTranslator)

	translate.Register[dto.OwnerDTO, domain.Owner](mt, OwnerModelTranslator{})
	translate.Register[dto.ContentDTO, domain.Content](mt, contentModelTranslator)
	translate.Register[dto.ProductDTO, domain.Product](mt, ProductModelTranslator{})
	translate.Register[dto.ConsumerDTO, domain.Consumer](mt, ConsumerModelTranslator{})
	translate.Register[dto.ActivationKeyDTO, domain.ActivationKey](mt, activationKeyModelTranslator)
	translate.Register[dto.RoleDTO, domain.Role](mt, RoleModelTranslator{})

	return mt
}

// New returns a registry holding every API v1 translator.
func New() *translate.ModelTranslator {
	return RegisterAll(translate.NewModelTranslator())
}
