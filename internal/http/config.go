package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/database"
	"github.com/mrlokans/smartlibrary/internal/library"
	"github.com/mrlokans/smartlibrary/internal/scheduler"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  *library.Service
	Database *database.Database
	Logger   *zap.Logger

	// Authentication (all nil when AUTH_MODE=none)
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// Overdue scan trigger: the task queue or an in-process scan
	OverdueTrigger scheduler.Trigger

	// Reported by /health; leave nil when disabled
	TaskQueue       TaskQueue
	OverdueSchedule OverdueSchedule

	// Application info
	Version string
}
