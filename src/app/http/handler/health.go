package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/core/usecase"
)

// HealthHandler serves the health and status endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
	statusService *usecase.StatusService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService, statusService *usecase.StatusService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		statusService: statusService,
	}
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// DetailedHealth reports every component. Degraded storage yields a 503.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Status reports the server version and mode.
// GET /candlepin/status
func (h *HealthHandler) Status(c *gin.Context) {
	s := h.statusService.Status(c.Request.Context())
	storage := "ok"
	if !s.StorageHealthy {
		storage = "degraded"
	}
	ts := s.Timestamp
	response.OK(c, dto.StatusDTO{
		Mode:         s.Mode,
		Result:       s.Result,
		Version:      s.Version,
		Release:      s.Release,
		Standalone:   s.Standalone,
		Timestamp:    &ts,
		ManagerCaps:  s.ManagerCapabilities,
		StorageState: storage,
	})
}
