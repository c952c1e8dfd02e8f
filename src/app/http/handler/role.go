package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// AccessHandler serves users and roles.
type AccessHandler struct {
	userService *usecase.UserService
	roleService *usecase.RoleService
	mt          *translate.ModelTranslator
}

func NewAccessHandler(userService *usecase.UserService, roleService *usecase.RoleService, mt *translate.ModelTranslator) *AccessHandler {
	return &AccessHandler{userService: userService, roleService: roleService, mt: mt}
}

// POST /users
func (h *AccessHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.userService.Create(c.Request.Context(), req.Username, req.Password, req.SuperAdmin)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.User, dto.UserDTO](c, h.mt, u, response.Created)
}

// GET /users/:username
func (h *AccessHandler) GetUser(c *gin.Context) {
	u, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.User, dto.UserDTO](c, h.mt, u, response.OK)
}

// GET /roles
func (h *AccessHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Role, dto.RoleDTO](c, h.mt, roles)
}

// POST /roles
func (h *AccessHandler) CreateRole(c *gin.Context) {
	var req dto.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	role, err := translate.Translate[dto.RoleDTO, domain.Role](h.mt, &dto.RoleDTO{
		Name:        req.Name,
		Users:       req.Users,
		Permissions: req.Permissions,
	})
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.roleService.Create(c.Request.Context(), role)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Role, dto.RoleDTO](c, h.mt, created, response.Created)
}

// GET /roles/:id
func (h *AccessHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Role, dto.RoleDTO](c, h.mt, role, response.OK)
}

// POST /roles/:id/users/:username
func (h *AccessHandler) AddRoleUser(c *gin.Context) {
	role, err := h.roleService.AddUser(c.Request.Context(), c.Param("id"), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Role, dto.RoleDTO](c, h.mt, role, response.OK)
}

// DELETE /roles/:id/users/:username
func (h *AccessHandler) RemoveRoleUser(c *gin.Context) {
	role, err := h.roleService.RemoveUser(c.Request.Context(), c.Param("id"), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Role, dto.RoleDTO](c, h.mt, role, response.OK)
}
