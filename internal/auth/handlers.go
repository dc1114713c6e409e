package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController serves the JSON login endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	logger         *zap.Logger
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		logger:         logger.Named("auth"),
	}
}

// RegisterRoutes registers authentication routes on the API group.
func (ac *AuthController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/login", ac.Login)
	api.POST("/logout", ac.Logout)
	api.GET("/me", ac.Me)
	api.GET("/csrf", ac.CSRFToken)
}

// Login checks credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "validation", "status": "Username and password are required"})
		return
	}

	user, ok, err := ac.service.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ac.logger.Error("login failed", zap.Error(err))
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "internal", "status": "Login is unavailable"})
		return
	}
	if !ok {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "status": "Invalid username or password"})
		return
	}

	if ac.sessionManager == nil {
		c.IndentedJSON(http.StatusOK, gin.H{"status": "Credentials valid", "user": user})
		return
	}
	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		ac.logger.Error("failed to create session", zap.Error(err))
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "internal", "status": "Login is unavailable"})
		return
	}

	ac.logger.Info("user logged in", zap.String("username", user.Username))
	c.IndentedJSON(http.StatusOK, gin.H{"status": "Logged in", "user": user})
}

// Logout ends the current session.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		if err := ac.sessionManager.DestroySession(c.Request); err != nil {
			ac.logger.Error("failed to destroy session", zap.Error(err))
		}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "Logged out"})
}

// Me describes the current caller.
func (ac *AuthController) Me(c *gin.Context) {
	if !ac.service.IsAuthEnabled() {
		c.IndentedJSON(http.StatusOK, gin.H{"auth_mode": "none"})
		return
	}
	var data *SessionData
	if ac.sessionManager != nil {
		data = ac.sessionManager.GetSessionData(c.Request)
	}
	if data == nil {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "status": "Not logged in"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"auth_mode": "local", "session": data})
}

// CSRFToken hands out the token cookie clients must echo on writes.
func (ac *AuthController) CSRFToken(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"csrf_token": GetCSRFToken(c), "header": CSRFTokenHeader})
}
