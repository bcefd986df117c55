package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
	"github.com/oksasatya/geo-region-service/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the Bearer token and checks that its subject is still an
// active user. It sets userID in the Gin context on success.
func Auth(tokens application.TokenIssuer, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Fail(c, errs.Unauthorized("Authorization token missing"))
			return
		}

		userID, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			e := errs.Unauthorized("Invalid token")
			e.Cause = err
			response.Fail(c, e)
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		if u == nil || !u.IsActive {
			response.Fail(c, errs.Unauthorized("User not found or inactive"))
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}
