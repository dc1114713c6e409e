package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database/dbtest"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

func setupAuthRouter(t *testing.T, mode config.AuthMode) (*gin.Engine, *Service) {
	t.Helper()

	cfg := config.Auth{
		Mode:            mode,
		SessionLifetime: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
	db := dbtest.New(t)
	service, err := NewService(db.DB, cfg, nil)
	require.NoError(t, err)
	sessions, err := NewSessionManager(db, cfg)
	require.NoError(t, err)
	mw := NewMiddleware(service, sessions, cfg)

	router := gin.New()
	api := router.Group("/api")
	api.Use(sessions.SessionLoadSave(), mw.Handler(), mw.RequireManagerForWrites())
	NewAuthController(service, sessions, nil).RegisterRoutes(api)
	api.GET("/books", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	api.POST("/books", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	return router, service
}

func login(t *testing.T, router *gin.Engine, username, password string) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr, rr.Result().Cookies()
}

func do(router *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	router, _ := setupAuthRouter(t, config.AuthModeNone)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/books", nil).Code)
	assert.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/books", nil).Code)

	me := do(router, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"auth_mode": "none"`)
}

func TestMiddleware_LocalModeRequiresSession(t *testing.T) {
	router, _ := setupAuthRouter(t, config.AuthModeLocal)

	rr := do(router, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authentication required")
}

func TestMiddleware_LoginAndRoles(t *testing.T) {
	ctx := context.Background()
	router, service := setupAuthRouter(t, config.AuthModeLocal)
	_, err := service.CreateUser(ctx, NewUser{Username: "libby", Password: "password123", Role: entities.UserRoleLibrarian})
	require.NoError(t, err)
	_, err = service.CreateUser(ctx, NewUser{Username: "reader", Password: "password123", Role: entities.UserRoleMember})
	require.NoError(t, err)

	t.Run("bad credentials", func(t *testing.T) {
		rr, _ := login(t, router, "libby", "wrong-password")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		rr, _ = login(t, router, "nobody", "password123")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid username or password")
	})

	t.Run("librarian can write", func(t *testing.T) {
		rr, cookies := login(t, router, "libby", "password123")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "password_hash")

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/books", cookies).Code)
		assert.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/books", cookies).Code)

		me := do(router, http.MethodGet, "/api/me", cookies)
		assert.Contains(t, me.Body.String(), `"username": "libby"`)
	})

	t.Run("member can only read", func(t *testing.T) {
		rr, cookies := login(t, router, "reader", "password123")
		require.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/books", cookies).Code)
		assert.Equal(t, http.StatusForbidden, do(router, http.MethodPost, "/api/books", cookies).Code)
	})

	t.Run("logout ends the session", func(t *testing.T) {
		_, cookies := login(t, router, "libby", "password123")
		require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/logout", cookies).Code)
		assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/books", cookies).Code)
	})
}

func TestRequireManagerForWrites_AllowsReadsForEveryone(t *testing.T) {
	mw := NewMiddleware(nil, nil, config.Auth{Mode: config.AuthModeLocal})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextKeyRole, entities.UserRoleMember)
		c.Next()
	}, mw.RequireManagerForWrites())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodDelete, "/x", nil).Code)
}
