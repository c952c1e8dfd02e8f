package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// ImportHandler loads manifest archives into owners.
type ImportHandler struct {
	importService *usecase.ImportService
	mt            *translate.ModelTranslator
}

func NewImportHandler(importService *usecase.ImportService, mt *translate.ModelTranslator) *ImportHandler {
	return &ImportHandler{importService: importService, mt: mt}
}

// Import reads the multipart "upload" file as a manifest and returns the
// finished import job.
// POST /owners/:key/imports?force=true
func (h *ImportHandler) Import(c *gin.Context) {
	var q dto.ImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	fh, err := c.FormFile("upload")
	if err != nil {
		fail(c, domain.NewValidationError("upload", "a manifest file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	opts := usecase.ImportOptions{Force: q.Force}
	job, err := h.importService.Import(c.Request.Context(), c.Param("key"), f, fh.Size, opts)
	if job != nil {
		c.Header(JobIDHeader, job.ID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.AsyncJobStatus, dto.AsyncJobStatusDTO](c, h.mt, job, response.OK)
}
