package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/pkg/response"
)

type AuthHandler struct {
	Auth *application.AuthUseCase
}

func NewAuthHandler(auth *application.AuthUseCase) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User logged in", dto.LoginResponse{ID: res.UserID, Token: res.Token})
}
