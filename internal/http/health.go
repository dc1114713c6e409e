package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartlibrary/internal/database"
)

// Check values reported for optional components.
const (
	CheckOK         = "ok"
	CheckDisabled   = "disabled"
	CheckNotRunning = "not running"
)

// TaskQueue is what the health check reads from the task queue.
type TaskQueue interface {
	Ping(ctx context.Context) error
	IsRunning() bool
}

// OverdueSchedule is what the health check reads from the scan scheduler.
type OverdueSchedule interface {
	IsRunning() bool
	NextRun() *time.Time
}

type HealthResponse struct {
	Status          string            `json:"status"`
	Time            string            `json:"time"`
	Version         string            `json:"version,omitempty"`
	Checks          map[string]string `json:"checks"`
	NextOverdueScan *time.Time        `json:"next_overdue_scan,omitempty"`
}

// HealthController reports the state of the store and, when configured, of
// the overdue scan machinery. Only store or queue database failures make
// the service unhealthy; stopped workers are reported but tolerated.
type HealthController struct {
	db        *database.Database
	tasks     TaskQueue
	scheduler OverdueSchedule
	version   string
}

func NewHealthController(db *database.Database, tasks TaskQueue, scheduler OverdueSchedule, version string) *HealthController {
	return &HealthController{
		db:        db,
		tasks:     tasks,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string, 3),
	}

	if h.db == nil {
		health.Checks["database"] = "not configured"
	} else if err := h.db.Ping(ctx); err != nil {
		health.Checks["database"] = "error: " + err.Error()
		health.Status = "unhealthy"
	} else {
		health.Checks["database"] = CheckOK
	}

	if h.tasks == nil {
		health.Checks["task_queue"] = CheckDisabled
	} else if err := h.tasks.Ping(ctx); err != nil {
		health.Checks["task_queue"] = "error: " + err.Error()
		health.Status = "unhealthy"
	} else if !h.tasks.IsRunning() {
		health.Checks["task_queue"] = CheckNotRunning
	} else {
		health.Checks["task_queue"] = CheckOK
	}

	switch {
	case h.scheduler == nil:
		health.Checks["overdue_scan"] = CheckDisabled
	case !h.scheduler.IsRunning():
		health.Checks["overdue_scan"] = CheckNotRunning
	default:
		health.Checks["overdue_scan"] = CheckOK
		health.NextOverdueScan = h.scheduler.NextRun()
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
