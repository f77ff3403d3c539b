package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every error body carries at least an "error" field with a short
// machine-readable reason; no stack traces or internal detail.
type ErrorBody struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, httpStatus int, reason string) {
	c.JSON(httpStatus, ErrorBody{Error: reason})
}

func BadRequest(c *gin.Context, reason string) {
	Error(c, http.StatusBadRequest, reason)
}

func Unauthorized(c *gin.Context, reason string) {
	Error(c, http.StatusUnauthorized, reason)
}

func NotFound(c *gin.Context, reason string) {
	Error(c, http.StatusNotFound, reason)
}

func TooManyRequests(c *gin.Context, reason string) {
	Error(c, http.StatusTooManyRequests, reason)
}

func InternalError(c *gin.Context, reason string) {
	Error(c, http.StatusInternalServerError, reason)
}
