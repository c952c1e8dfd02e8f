package translator

import (
	"candlepin/src/app/http/dto"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
)

// userTranslator never copies the password hash.
var userTranslator = translate.Func[domain.User, dto.UserDTO](
	func(_ *translate.ModelTranslator, src *domain.User, dst *dto.UserDTO) (*dto.UserDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Username = src.Username
		dst.Password = ""
		dst.SuperAdmin = dto.Ptr(src.SuperAdmin)
		return dst, nil
	})

var permissionTranslator = translate.Func[domain.PermissionBlueprint, dto.PermissionBlueprintDTO](
	func(mt *translate.ModelTranslator, src *domain.PermissionBlueprint, dst *dto.PermissionBlueprintDTO) (*dto.PermissionBlueprintDTO, error) {
		dst.Timestamped = stamps(src.Created, src.Updated)
		dst.ID = src.ID
		dst.Type = string(src.Type)
		dst.Access = string(src.Access)
		owner, err := nestedOwner(mt, src.Owner)
		if err != nil {
			return nil, err
		}
		dst.Owner = owner
		return dst, nil
	})

// RoleTranslator translates roles, their members and permissions.
type RoleTranslator struct{}

// Translate implements translate.Translator.
func (t RoleTranslator) Translate(mt *translate.ModelTranslator, src *domain.Role) (*dto.RoleDTO, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t RoleTranslator) Populate(mt *translate.ModelTranslator, src *domain.Role, dst *dto.RoleDTO) (*dto.RoleDTO, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.Timestamped = stamps(src.Created, src.Updated)
	dst.ID = src.ID
	dst.Name = src.Name

	users, err := nestedAll[domain.User, dto.UserDTO](mt, src.Users)
	if err != nil {
		return nil, err
	}
	perms, err := nestedValues[domain.PermissionBlueprint, dto.PermissionBlueprintDTO](mt, src.Permissions)
	if err != nil {
		return nil, err
	}
	if err := dst.SetUsers(users); err != nil {
		return nil, err
	}
	if err := dst.SetPermissions(perms); err != nil {
		return nil, err
	}
	return dst, nil
}

// RoleModelTranslator reads a role payload back into the domain. Members are
// reduced to their usernames; passwords are never read here.
type RoleModelTranslator struct{}

// Translate implements translate.Translator.
func (t RoleModelTranslator) Translate(mt *translate.ModelTranslator, src *dto.RoleDTO) (*domain.Role, error) {
	return translate.Fresh(mt, src, t.Populate)
}

// Populate implements translate.Translator.
func (t RoleModelTranslator) Populate(_ *translate.ModelTranslator, src *dto.RoleDTO, dst *domain.Role) (*domain.Role, error) {
	if err := translate.CheckArgs(src, dst); err != nil {
		return nil, err
	}

	dst.ID = src.ID
	dst.Name = src.Name

	dst.Users = nil
	for _, u := range src.Users {
		if u != nil && u.Username != "" {
			dst.Users = append(dst.Users, &domain.User{ID: u.ID, Username: u.Username})
		}
	}

	dst.Permissions = nil
	for _, p := range src.Permissions {
		if p == nil {
			continue
		}
		dst.Permissions = append(dst.Permissions, domain.PermissionBlueprint{
			ID:     p.ID,
			Owner:  ownerStub(p.Owner),
			Type:   domain.PermissionType(p.Type),
			Access: domain.Access(p.Access),
		})
	}
	return dst, nil
}
