package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.TaskQueue, cfg.OverdueSchedule, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		api.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		api.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Handler())
		api.Use(cfg.AuthMiddleware.RequireManagerForWrites())
	} else {
		// No auth - inject default user ID
		api.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() && cfg.SessionManager != nil {
		auth.NewAuthController(cfg.AuthService, cfg.SessionManager, logger).RegisterRoutes(api)
	}

	NewBooksController(cfg.Library, logger).RegisterRoutes(api)
	NewMembersController(cfg.Library, logger).RegisterRoutes(api)
	NewLoansController(cfg.Library, logger).RegisterRoutes(api)
	NewClubsController(cfg.Library, logger).RegisterRoutes(api)

	admin := NewAdminController(cfg.OverdueTrigger, logger)
	adminGroup := api.Group("/admin")
	if cfg.AuthMiddleware != nil {
		adminGroup.Use(cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleLibrarian))
	}
	adminGroup.POST("/overdue/scan", admin.ScanOverdue)

	return router
}
