package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database/dbtest"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(dbtest.New(t), config.Auth{
		Mode:            config.AuthModeLocal,
		SessionLifetime: time.Hour,
		SecureCookies:   false,
	})
	require.NoError(t, err)
	return sm
}

func sessionRouter(sm *SessionManager) *gin.Engine {
	memberID := "M1"
	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.POST("/login", func(c *gin.Context) {
		user := &entities.User{ID: 7, Username: "ann", Role: entities.UserRoleMember, MemberID: &memberID}
		if err := sm.CreateSession(c.Request, user); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	router.GET("/whoami", func(c *gin.Context) {
		data := sm.GetSessionData(c.Request)
		if data == nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, data)
	})
	router.POST("/logout", func(c *gin.Context) {
		_ = sm.DestroySession(c.Request)
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestNewSessionManager_UsesSQLiteStore(t *testing.T) {
	sm := setupSessionManager(t)

	assert.Equal(t, "smartlibrary_session", sm.Cookie.Name)
	assert.Equal(t, time.Hour, sm.Lifetime)
	assert.Equal(t, 30*time.Minute, sm.IdleTimeout)
	assert.False(t, sm.Cookie.Secure)
}

func TestNewSessionManager_MemoryStoreWithoutDatabase(t *testing.T) {
	sm, err := NewSessionManager(nil, config.Auth{})
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, sm.Lifetime)
}

func TestSessionLifecycle(t *testing.T) {
	sm := setupSessionManager(t)
	router := sessionRouter(sm)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"ann"`)
	assert.Contains(t, rr.Body.String(), `"member_id":"M1"`)

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
