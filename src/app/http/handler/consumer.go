package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// JobIDHeader carries the id of the job that produced an export or import.
const JobIDHeader = "X-Job-ID"

// ConsumerHandler serves consumers, their entitlements and manifest exports.
type ConsumerHandler struct {
	consumerService    *usecase.ConsumerService
	entitlementService *usecase.EntitlementService
	exportService      *usecase.ExportService
	mt                 *translate.ModelTranslator
}

func NewConsumerHandler(
	consumerService *usecase.ConsumerService,
	entitlementService *usecase.EntitlementService,
	exportService *usecase.ExportService,
	mt *translate.ModelTranslator,
) *ConsumerHandler {
	return &ConsumerHandler{
		consumerService:    consumerService,
		entitlementService: entitlementService,
		exportService:      exportService,
		mt:                 mt,
	}
}

// Register creates a consumer in the owner named by the query.
// POST /consumers?owner=key&activation_keys=a,b
func (h *ConsumerHandler) Register(c *gin.Context) {
	var q dto.ConsumerCreateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	var req dto.ConsumerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	consumer, err := translate.Translate[dto.ConsumerDTO, domain.Consumer](h.mt, &req)
	if err != nil {
		fail(c, err)
		return
	}
	if q.Username != "" {
		consumer.Username = q.Username
	}

	created, err := h.consumerService.Register(c.Request.Context(), q.Owner, consumer, splitList(q.ActivationKeys))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Consumer, dto.ConsumerDTO](c, h.mt, created, response.Created)
}

// ListForOwner returns the consumers of an owner.
// GET /owners/:key/consumers
func (h *ConsumerHandler) ListForOwner(c *gin.Context) {
	consumers, err := h.consumerService.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Consumer, dto.ConsumerDTO](c, h.mt, consumers)
}

// GET /consumers/:uuid
func (h *ConsumerHandler) Get(c *gin.Context) {
	consumer, err := h.consumerService.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Consumer, dto.ConsumerDTO](c, h.mt, consumer, response.OK)
}

// Update applies the fields present in the payload.
// PUT /consumers/:uuid
func (h *ConsumerHandler) Update(c *gin.Context) {
	var req dto.ConsumerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := translate.Translate[dto.ConsumerDTO, domain.Consumer](h.mt, &req)
	if err != nil {
		fail(c, err)
		return
	}

	u := usecase.ConsumerUpdate{
		Name:         nonEmpty(req.Name),
		ServiceLevel: nonEmpty(req.ServiceLevel),
		Role:         nonEmpty(req.Role),
		Usage:        nonEmpty(req.Usage),
		Autoheal:     req.Autoheal,
		ReleaseVer:   m.ReleaseVer,
	}
	if req.Facts != nil {
		u.Facts = m.Facts
	}
	if req.InstalledProducts != nil {
		u.InstalledProducts = orEmpty(m.InstalledProducts)
	}
	if req.Capabilities != nil {
		u.Capabilities = orEmpty(m.Capabilities)
	}
	if req.GuestIDs != nil {
		u.GuestIDs = orEmpty(m.GuestIDs)
	}
	if req.AddOns != nil {
		u.AddOns = orEmpty(m.AddOns)
	}
	if req.ContentTags != nil {
		u.ContentTags = orEmpty(m.ContentTags)
	}
	if req.Environments != nil {
		u.EnvironmentIDs = []string{}
		for _, e := range m.Environments {
			u.EnvironmentIDs = append(u.EnvironmentIDs, e.ID)
		}
	}

	consumer, err := h.consumerService.Update(c.Request.Context(), c.Param("uuid"), u)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Consumer, dto.ConsumerDTO](c, h.mt, consumer, response.OK)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Delete unregisters a consumer.
// DELETE /consumers/:uuid
func (h *ConsumerHandler) Delete(c *gin.Context) {
	if err := h.consumerService.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// GuestIDs lists the guests reported by a hypervisor consumer.
// GET /consumers/:uuid/guestids
func (h *ConsumerHandler) GuestIDs(c *gin.Context) {
	guests, err := h.consumerService.GuestIDs(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, err)
		return
	}
	out, err := translate.TranslateValues[domain.GuestID, dto.GuestIDDTO](h.mt, guests)
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		out = []*dto.GuestIDDTO{}
	}
	response.OK(c, out)
}

// Entitlements lists what a consumer is entitled to.
// GET /consumers/:uuid/entitlements
func (h *ConsumerHandler) Entitlements(c *gin.Context) {
	ents, err := h.entitlementService.ListForConsumer(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Entitlement, dto.EntitlementDTO](c, h.mt, ents)
}

// Bind consumes quantity from a pool for the consumer.
// POST /consumers/:uuid/entitlements?pool=id&quantity=n
func (h *ConsumerHandler) Bind(c *gin.Context) {
	var q dto.BindQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Quantity == 0 {
		q.Quantity = 1
	}

	ent, err := h.entitlementService.Bind(c.Request.Context(), c.Param("uuid"), q.Pool, q.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Entitlement, dto.EntitlementDTO](c, h.mt, ent, response.Created)
}

// Export streams the manifest archive of a distributor consumer.
// GET /consumers/:uuid/export
func (h *ConsumerHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	var buf bytes.Buffer
	opts := usecase.ExportOptions{CdnLabel: q.CdnLabel, WebURL: q.WebURL, APIURL: q.APIURL}
	job, err := h.exportService.Export(c.Request.Context(), c.Param("uuid"), opts, &buf)
	if job != nil {
		c.Header(JobIDHeader, job.ID)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+job.ID+`.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
