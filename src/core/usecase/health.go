package usecase

import (
	"context"
	"log/slog"
	"time"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// HealthService reports whether the server's dependencies are reachable.
type HealthService struct {
	store ports.HealthChecker
	log   *slog.Logger
}

// NewHealthService creates a new HealthService.
func NewHealthService(store ports.HealthChecker, log *slog.Logger) *HealthService {
	return &HealthService{
		store: store,
		log:   log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if s.store != nil {
		if err := s.store.Health(ctx); err != nil {
			s.log.Warn("storage unhealthy", "error", err)
			status.Status = "degraded"
			status.Components["storage"] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Components["storage"] = ComponentHealth{Status: "healthy"}
		}
	}

	return status
}

// ManagerCapabilities are the features this server advertises to clients.
var ManagerCapabilities = []string{
	"instance_multiplier",
	"derived_product",
	"vcpu",
	"cert_v3",
	"hypervisors_heartbeat",
	"remove_by_pool_id",
	"syspurpose",
	"storage_band",
	"cores",
	"multi_environment",
	"hypervisors_async",
	"org_level_content_access",
	"guest_limit",
	"ram",
	"batch_bind",
	"combined_reporting",
	"content_access",
	"typed_environments",
}

// SystemStatus is what GET /status reports.
type SystemStatus struct {
	Mode                string
	Result              bool
	Version             string
	Release             string
	Standalone          bool
	Timestamp           time.Time
	ManagerCapabilities []string
	StorageHealthy      bool
}

// StatusService reports server version and mode.
type StatusService struct {
	health     *HealthService
	version    string
	release    string
	standalone bool
}

func NewStatusService(health *HealthService, version, release string, standalone bool) *StatusService {
	return &StatusService{health: health, version: version, release: release, standalone: standalone}
}

func (s *StatusService) Status(ctx context.Context) *SystemStatus {
	healthy := s.health.Check(ctx).Status == "ok"
	mode := "NORMAL"
	if !healthy {
		mode = "SUSPEND"
	}
	return &SystemStatus{
		Mode:                mode,
		Result:              healthy,
		Version:             s.version,
		Release:             s.release,
		Standalone:          s.standalone,
		Timestamp:           now(),
		ManagerCapabilities: append([]string(nil), ManagerCapabilities...),
		StorageHealthy:      healthy,
	}
}

// EventService lists audit events.
type EventService struct {
	repo ports.EventRepository
}

func NewEventService(repo ports.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// DefaultEventLimit caps event listings that ask for no limit.
const DefaultEventLimit = 100

func (s *EventService) List(ctx context.Context, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	return s.repo.ListEvents(ctx, limit)
}
