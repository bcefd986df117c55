package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/mapper"
	"github.com/oksasatya/geo-region-service/pkg/response"
)

type UserHandler struct {
	Create *application.CreateUserUseCase
	Update *application.UpdateUserUseCase
	Delete *application.DeleteUserUseCase
	Find   *application.FindUserUseCase
	Logger *logrus.Logger
}

func NewUserHandler(create *application.CreateUserUseCase, update *application.UpdateUserUseCase, del *application.DeleteUserUseCase, find *application.FindUserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Create: create, Update: update, Delete: del, Find: find, Logger: logger}
}

// CreateUser POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Create.Execute(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "User created successfully", dto.IDResponse{ID: u.ID})
}

// ListUsers GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Find.All(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", gin.H{"users": mapper.ToUserResponses(users)})
}

// GetUser GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Find.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", gin.H{"user": mapper.ToUserResponse(u)})
}

// GetUserByEmail GET /users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	u, err := h.Find.ByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", gin.H{"user": mapper.ToUserResponse(u)})
}

// UpdateUser PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Update.Execute(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteUser DELETE /users/:id?hardDelete=true
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var q dto.DeleteQuery
	if !bindQuery(c, &q) {
		return
	}
	id := c.Param("id")
	var err error
	if q.HardDelete {
		err = h.Delete.ExecuteHard(c.Request.Context(), id)
	} else {
		err = h.Delete.Execute(c.Request.Context(), id)
	}
	if err != nil {
		response.Fail(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": id, "hard": q.HardDelete}).Info("user deleted")
	}
	response.NoContent(c)
}
