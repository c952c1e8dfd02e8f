package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/manifest"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// OwnerHandler serves owners and the pools, subscriptions and environments
// scoped to them.
type OwnerHandler struct {
	ownerService *usecase.OwnerService
	poolService  *usecase.PoolService
	mt           *translate.ModelTranslator
}

func NewOwnerHandler(ownerService *usecase.OwnerService, poolService *usecase.PoolService, mt *translate.ModelTranslator) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService, poolService: poolService, mt: mt}
}

// List returns every owner.
// GET /owners
func (h *OwnerHandler) List(c *gin.Context) {
	owners, err := h.ownerService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Owner, dto.OwnerDTO](c, h.mt, owners)
}

// Create adds an owner.
// POST /owners
func (h *OwnerHandler) Create(c *gin.Context) {
	var req dto.OwnerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	owner, err := translate.Translate[dto.OwnerDTO, domain.Owner](h.mt, &req)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.ownerService.Create(c.Request.Context(), owner)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Owner, dto.OwnerDTO](c, h.mt, created, response.Created)
}

// Get returns one owner by key.
// GET /owners/:key
func (h *OwnerHandler) Get(c *gin.Context) {
	owner, err := h.ownerService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Owner, dto.OwnerDTO](c, h.mt, owner, response.OK)
}

// Update changes the fields present in the payload. The parent is
// referenced by key; an explicit parent without a key clears it.
// PUT /owners/:key
func (h *OwnerHandler) Update(c *gin.Context) {
	var req dto.OwnerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ch := usecase.OwnerChanges{
		DisplayName:                nonEmpty(req.DisplayName),
		ContentPrefix:              nonEmpty(req.ContentPrefix),
		DefaultServiceLevel:        nonEmpty(req.DefaultServiceLevel),
		LogLevel:                   nonEmpty(req.LogLevel),
		AutobindDisabled:           req.AutobindDisabled,
		AutobindHypervisorDisabled: req.AutobindHypervisorDisabled,
		ContentAccessMode:          nonEmpty(req.ContentAccessMode),
		ContentAccessModeList:      nonEmpty(req.ContentAccessModeList),
	}
	if req.ParentOwner != nil {
		key := req.ParentOwner.Key
		ch.ParentKey = &key
	}

	owner, err := h.ownerService.Update(c.Request.Context(), c.Param("key"), ch)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Owner, dto.OwnerDTO](c, h.mt, owner, response.OK)
}

// ListEnvironments returns the environments of an owner.
// GET /owners/:key/environments
func (h *OwnerHandler) ListEnvironments(c *gin.Context) {
	envs, err := h.ownerService.ListEnvironments(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Environment, dto.EnvironmentDTO](c, h.mt, envs)
}

// CreateEnvironment adds an environment to an owner.
// POST /owners/:key/environments
func (h *OwnerHandler) CreateEnvironment(c *gin.Context) {
	var req dto.EnvironmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	env := &domain.Environment{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		ContentPrefix: req.ContentPrefix,
	}

	created, err := h.ownerService.CreateEnvironment(c.Request.Context(), c.Param("key"), env)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Environment, dto.EnvironmentDTO](c, h.mt, created, response.Created)
}

// ListPools returns the pools of an owner.
// GET /owners/:key/pools
func (h *OwnerHandler) ListPools(c *gin.Context) {
	pools, err := h.poolService.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Pool, dto.PoolDTO](c, h.mt, pools)
}

// CreatePool adds a pool for one of the owner's products.
// POST /owners/:key/pools
func (h *OwnerHandler) CreatePool(c *gin.Context) {
	var req dto.PoolCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pool := &domain.Pool{
		Quantity:           req.Quantity,
		SubscriptionID:     req.SubscriptionID,
		SubscriptionSubKey: req.SubscriptionSubKey,
		ContractNumber:     req.ContractNumber,
		AccountNumber:      req.AccountNumber,
		OrderNumber:        req.OrderNumber,
		UpstreamPoolID:     req.UpstreamPoolID,
		Attributes:         req.Attributes,
	}
	if req.StartDate != nil {
		pool.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		pool.EndDate = *req.EndDate
	}

	created, err := h.poolService.Create(c.Request.Context(), c.Param("key"), req.ProductID, pool)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Pool, dto.PoolDTO](c, h.mt, created, response.Created)
}

// ListSubscriptions rebuilds subscriptions from the owner's primary pools.
// GET /owners/:key/subscriptions
func (h *OwnerHandler) ListSubscriptions(c *gin.Context) {
	pools, err := h.poolService.ListSubscriptionPools(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Pool, manifest.SubscriptionDTO](c, h.mt, pools)
}
