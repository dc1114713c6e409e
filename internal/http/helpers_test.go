package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

func TestHTTPStatusOf(t *testing.T) {
	tests := []struct {
		kind library.Kind
		want int
	}{
		{library.KindNotFound, http.StatusNotFound},
		{library.KindAlreadyExists, http.StatusConflict},
		{library.KindAlreadyMember, http.StatusConflict},
		{library.KindConflict, http.StatusConflict},
		{library.KindOutOfStock, http.StatusConflict},
		{library.KindLimitReached, http.StatusUnprocessableEntity},
		{library.KindValidation, http.StatusBadRequest},
		{library.KindNothingToUpdate, http.StatusBadRequest},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, httpStatusOf(tt.kind))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(err error) (*httptest.ResponseRecorder, ErrorResponse) {
		router := gin.New()
		router.GET("/", func(c *gin.Context) { respondError(c, zap.NewNop(), err) })

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("business error keeps its message", func(t *testing.T) {
		w, body := serve(&library.Error{Kind: library.KindLimitReached, Message: library.StatusLimitReached})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "limit_reached", body.Error)
		assert.Equal(t, library.StatusLimitReached, body.Status)
	})

	t.Run("store failure is not described", func(t *testing.T) {
		w, body := serve(errors.New("disk I/O error"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal", body.Error)
		assert.Equal(t, library.StatusUnexpectedFailure, body.Status)
		assert.NotContains(t, w.Body.String(), "disk")
	})
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		path   string
		wantOK bool
	}{
		{"/clubs/7", true},
		{"/clubs/0", false},
		{"/clubs/abc", false},
		{"/clubs/-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var ok bool
			router := gin.New()
			router.GET("/clubs/:id", func(c *gin.Context) {
				_, ok = parseIDParam(c, "id")
				if ok {
					c.Status(http.StatusOK)
				}
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestIDOf(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		const incoming = "0b7c4d36-5d0f-4a5e-9b5c-4a1f2e3d4c5b"
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		router.ServeHTTP(w, req)

		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}
