package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// PoolHandler serves pools and entitlements by id.
type PoolHandler struct {
	poolService        *usecase.PoolService
	entitlementService *usecase.EntitlementService
	mt                 *translate.ModelTranslator
}

func NewPoolHandler(poolService *usecase.PoolService, entitlementService *usecase.EntitlementService, mt *translate.ModelTranslator) *PoolHandler {
	return &PoolHandler{poolService: poolService, entitlementService: entitlementService, mt: mt}
}

// GET /pools/:id
func (h *PoolHandler) GetPool(c *gin.Context) {
	pool, err := h.poolService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Pool, dto.PoolDTO](c, h.mt, pool, response.OK)
}

// GET /entitlements/:id
func (h *PoolHandler) GetEntitlement(c *gin.Context) {
	ent, err := h.entitlementService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Entitlement, dto.EntitlementDTO](c, h.mt, ent, response.OK)
}

// RevokeEntitlement returns the entitlement's quantity to its pool.
// DELETE /entitlements/:id
func (h *PoolHandler) RevokeEntitlement(c *gin.Context) {
	if err := h.entitlementService.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
