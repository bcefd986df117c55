// Package handlers adapts HTTP requests to use-cases. Handlers bind and
// validate input, call one use-case, and map the result; every error goes
// through response.Fail.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/pkg/response"
	"github.com/oksasatya/geo-region-service/pkg/validation"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Fail(c, validation.FromBindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Fail(c, validation.FromBindError(err))
		return false
	}
	return true
}
