package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse[T any] struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// Success writes a success envelope with data.
func Success[T any](c *gin.Context, status int, message string, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// NoContent answers 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error aborts the chain with an error envelope. Most callers want Fail.
func Error(c *gin.Context, status int, code, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    StatusError,
		Message:   message,
		ErrorCode: code,
		Details:   details,
	})
}
