package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/scheduler"
)

// SourceAPI marks overdue scans requested over HTTP.
const SourceAPI = "api"

type AdminController struct {
	overdue scheduler.Trigger
	logger  *zap.Logger
}

func NewAdminController(overdue scheduler.Trigger, logger *zap.Logger) *AdminController {
	return &AdminController{
		overdue: overdue,
		logger:  logger,
	}
}

// ScanOverdue starts an overdue scan. With the task queue enabled the scan
// runs in the background and the response only confirms it was queued;
// otherwise the scan has finished by the time the response is written.
func (controller *AdminController) ScanOverdue(c *gin.Context) {
	if controller.overdue == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:  "unavailable",
			Status: "Overdue scan is not configured",
		})
		return
	}

	if err := controller.overdue.TriggerOverdueScan(c.Request.Context(), SourceAPI); err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusAccepted, "Overdue scan started", nil)
}
