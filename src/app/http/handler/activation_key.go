package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// ActivationKeyHandler serves activation keys.
type ActivationKeyHandler struct {
	keyService *usecase.ActivationKeyService
	mt         *translate.ModelTranslator
}

func NewActivationKeyHandler(keyService *usecase.ActivationKeyService, mt *translate.ModelTranslator) *ActivationKeyHandler {
	return &ActivationKeyHandler{keyService: keyService, mt: mt}
}

// GET /owners/:key/activation_keys
func (h *ActivationKeyHandler) ListForOwner(c *gin.Context) {
	keys, err := h.keyService.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, keys)
}

// POST /owners/:key/activation_keys
func (h *ActivationKeyHandler) Create(c *gin.Context) {
	var req dto.ActivationKeyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	key, err := translate.Translate[dto.ActivationKeyDTO, domain.ActivationKey](h.mt, &req)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.keyService.Create(c.Request.Context(), c.Param("key"), key)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, created, response.Created)
}

// GET /activation_keys/:id
func (h *ActivationKeyHandler) Get(c *gin.Context) {
	key, err := h.keyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, key, response.OK)
}

// AddPool attaches a pool to the key, replacing an existing attachment.
// POST /activation_keys/:id/pools/:pool_id?quantity=n
func (h *ActivationKeyHandler) AddPool(c *gin.Context) {
	var q dto.ActivationKeyPoolQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	key, err := h.keyService.AddPool(c.Request.Context(), c.Param("id"), c.Param("pool_id"), q.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, key, response.OK)
}

// DELETE /activation_keys/:id/pools/:pool_id
func (h *ActivationKeyHandler) RemovePool(c *gin.Context) {
	key, err := h.keyService.RemovePool(c.Request.Context(), c.Param("id"), c.Param("pool_id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, key, response.OK)
}

// SetContentOverrides upserts overrides; an empty value removes one.
// PUT /activation_keys/:id/content_overrides
func (h *ActivationKeyHandler) SetContentOverrides(c *gin.Context) {
	var req dto.ContentOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	overrides := make([]domain.ContentOverride, 0, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides = append(overrides, domain.ContentOverride{ContentLabel: o.ContentLabel, Name: o.Name, Value: o.Value})
	}

	key, err := h.keyService.SetContentOverrides(c.Request.Context(), c.Param("id"), overrides)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.ActivationKey, dto.ActivationKeyDTO](c, h.mt, key, response.OK)
}
