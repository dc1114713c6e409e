package entrypoint

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/entities"
	"github.com/mrlokans/smartlibrary/internal/library"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		HTTP:     config.HTTP{Host: "127.0.0.1", Port: 0},
		Global:   config.Global{ShutdownTimeoutInSeconds: 2},
		Database: config.Database{Driver: config.DriverSQLite, Path: filepath.Join(dir, "library.db"), LogLevel: "silent"},
		Library:  config.Library{LoanPeriodDays: 7, BorrowLimit: 3, TimeZone: "UTC"},
		Tasks:    config.Tasks{Enabled: true, Workers: 1},
		Auth:     config.Auth{Mode: config.AuthModeNone, BcryptCost: bcrypt.MinCost},
		Overdue:  config.Overdue{ScanEnabled: true, ScanSchedule: "0 8 * * *"},
	}
}

func freePort(t *testing.T) int32 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return int32(l.Addr().(*net.TCPAddr).Port)
}

func TestBuild_NoAuth(t *testing.T) {
	cfg := testConfig(t)

	app, err := Build(cfg, "test", nil)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Tasks)
	assert.NotNil(t, app.Scheduler)
	assert.Nil(t, app.Auth)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"task_queue":"not running"`)
	assert.Contains(t, w.Body.String(), `"overdue_scan":"not running"`)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/overdue/scan", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBuild_LocalAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Mode = config.AuthModeLocal
	cfg.Auth.SessionLifetime = time.Hour
	cfg.Tasks.Enabled = false

	app, err := Build(cfg, "test", nil)
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Auth)
	assert.Nil(t, app.Tasks)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuild_ScanRunsInProcessWithoutQueue(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false

	app, err := Build(cfg, "test", nil)
	require.NoError(t, err)
	defer app.Close()
	require.Nil(t, app.Tasks)

	ctx := context.Background()
	_, err = app.Library.AddMember(ctx, library.NewMember{MemberID: "M1", Name: "Ann"})
	require.NoError(t, err)
	_, err = app.Library.AddBook(ctx, library.NewBook{ISBN: "111", Title: "Dune", AuthorName: "Frank Herbert", Copies: 1})
	require.NoError(t, err)

	today := app.Library.Today()
	require.NoError(t, app.DB.DB.Create(&entities.Loan{
		MemberID:     "M1",
		ISBN:         "111",
		DateBorrowed: today.AddDate(0, 0, -10),
		DueDate:      today.AddDate(0, 0, -3),
	}).Error)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/overdue/scan", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)

	notices, err := app.Library.ListMemberNotices(ctx, "M1")
	require.NoError(t, err)
	assert.Len(t, notices, 1)
}

func TestBuild_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Overdue.ScanSchedule = "whenever"

	_, err := Build(cfg, "test", nil)
	assert.ErrorContains(t, err, "OVERDUE_SCAN_SCHEDULE")
}

func TestBuild_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := Build(cfg, "test", nil)
	assert.Error(t, err)
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Port = freePort(t)

	app, err := Build(cfg, "test", nil)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://" + net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(int(cfg.HTTP.Port))) + "/ping"
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.False(t, app.Scheduler.IsRunning())
}

func TestSessionSecret(t *testing.T) {
	secret, generated := sessionSecret("")
	assert.True(t, generated)
	assert.Len(t, secret, 32)

	secret, generated = sessionSecret("00ff")
	assert.False(t, generated)
	assert.Equal(t, []byte{0x00, 0xff}, secret)

	secret, _ = sessionSecret("not-hex")
	assert.Equal(t, []byte("not-hex"), secret)
}
