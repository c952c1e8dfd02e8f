package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// JobHandler serves async job statuses and the event log.
type JobHandler struct {
	jobService   *usecase.JobService
	eventService *usecase.EventService
	mt           *translate.ModelTranslator
}

func NewJobHandler(jobService *usecase.JobService, eventService *usecase.EventService, mt *translate.ModelTranslator) *JobHandler {
	return &JobHandler{jobService: jobService, eventService: eventService, mt: mt}
}

// List filters jobs by id, key, state and owner.
// GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	var q dto.JobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	query := usecase.JobQuery{IDs: q.IDs, Keys: q.Keys, OwnerKey: q.OwnerKey}
	for _, s := range q.States {
		query.States = append(query.States, domain.JobState(s))
	}

	jobs, err := h.jobService.List(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](c, h.mt, jobs)
}

// GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](c, h.mt, job, response.OK)
}

// PUT /jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	job, err := h.jobService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](c, h.mt, job, response.OK)
}

// Events returns the newest events first.
// GET /events?limit=n
func (h *JobHandler) Events(c *gin.Context) {
	var q dto.EventQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	events, err := h.eventService.List(c.Request.Context(), q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Event, dto.EventDTO](c, h.mt, events)
}
