package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

// ErrorResponse is the error body of every API failure.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// StatusResponse carries the status message of a successful write together
// with the affected record.
type StatusResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// kindInternal is reported for store and connectivity failures.
const kindInternal = "internal"

// httpStatusOf maps a business error kind to an HTTP status code.
func httpStatusOf(kind library.Kind) int {
	switch kind {
	case library.KindNotFound:
		return http.StatusNotFound
	case library.KindAlreadyExists, library.KindAlreadyMember, library.KindConflict, library.KindOutOfStock:
		return http.StatusConflict
	case library.KindLimitReached:
		return http.StatusUnprocessableEntity
	case library.KindValidation, library.KindNothingToUpdate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Store failures are logged and
// reported without detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var libErr *library.Error
	if errors.As(err, &libErr) {
		c.IndentedJSON(httpStatusOf(libErr.Kind), ErrorResponse{
			Error:  string(libErr.Kind),
			Status: libErr.Error(),
		})
		return
	}

	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", requestIDOf(c)),
		zap.Error(err))
	c.IndentedJSON(http.StatusInternalServerError, ErrorResponse{
		Error:  kindInternal,
		Status: library.StatusUnexpectedFailure,
	})
}

// respondBadRequest sends a 400 for malformed input that never reached the
// library.
func respondBadRequest(c *gin.Context, message string) {
	c.IndentedJSON(http.StatusBadRequest, ErrorResponse{
		Error:  string(library.KindValidation),
		Status: message,
	})
}

func respondStatus(c *gin.Context, code int, status string, data any) {
	c.IndentedJSON(code, StatusResponse{Status: status, Data: data})
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst or responds with a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "invalid request body")
		return false
	}
	return true
}
