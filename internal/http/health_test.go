package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartlibrary/internal/database/dbtest"
)

func serveHealth(controller *HealthController) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", controller.Status)
	router.GET("/ping", controller.Ping)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthController_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns healthy when database is connected", func(t *testing.T) {
		controller := NewHealthController(dbtest.New(t), nil, nil, "1.0.0")

		w := serveHealth(controller)
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, CheckDisabled, response.Checks["task_queue"])
		assert.Equal(t, CheckDisabled, response.Checks["overdue_scan"])
		assert.Nil(t, response.NextOverdueScan)
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports not configured without a database", func(t *testing.T) {
		w := serveHealth(NewHealthController(nil, nil, nil, "1.0.0"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := dbtest.New(t)
		require.NoError(t, db.Close())

		w := serveHealth(NewHealthController(db, nil, nil, "1.0.0"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
}

type fakeQueue struct {
	err     error
	running bool
}

func (f fakeQueue) Ping(context.Context) error { return f.err }
func (f fakeQueue) IsRunning() bool            { return f.running }

type fakeSchedule struct {
	next *time.Time
}

func (f fakeSchedule) IsRunning() bool     { return f.next != nil }
func (f fakeSchedule) NextRun() *time.Time { return f.next }

func TestHealthController_OverdueScanChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	next := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		queue      TaskQueue
		schedule   OverdueSchedule
		wantCode   int
		wantQueue  string
		wantScan   string
		wantNextAt *time.Time
	}{
		{
			name:      "queue and scheduler running",
			queue:     fakeQueue{running: true},
			schedule:  fakeSchedule{next: &next},
			wantCode:  http.StatusOK,
			wantQueue: CheckOK, wantScan: CheckOK, wantNextAt: &next,
		},
		{
			name:      "stopped workers are reported but healthy",
			queue:     fakeQueue{},
			schedule:  fakeSchedule{},
			wantCode:  http.StatusOK,
			wantQueue: CheckNotRunning, wantScan: CheckNotRunning,
		},
		{
			name:      "queue database failure is unhealthy",
			queue:     fakeQueue{err: errors.New("disk I/O error"), running: true},
			wantCode:  http.StatusServiceUnavailable,
			wantQueue: "error: disk I/O error", wantScan: CheckDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveHealth(NewHealthController(dbtest.New(t), tt.queue, tt.schedule, "1.0.0"))
			assert.Equal(t, tt.wantCode, w.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantQueue, response.Checks["task_queue"])
			assert.Equal(t, tt.wantScan, response.Checks["overdue_scan"])
			if tt.wantNextAt == nil {
				assert.Nil(t, response.NextOverdueScan)
			} else {
				require.NotNil(t, response.NextOverdueScan)
				assert.True(t, tt.wantNextAt.Equal(*response.NextOverdueScan))
			}
		})
	}
}

func TestHealthController_Ping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", NewHealthController(nil, nil, nil, "").Ping)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
