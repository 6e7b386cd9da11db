package handler

import (
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/validator"
	"github.com/gin-gonic/gin"
)

// AdminUserHandler handles the admin user table.
type AdminUserHandler struct {
	service *service.UserService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(service *service.UserService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// ListUsers godoc
// GET /api/v1/admin/users?q=&sort=last_class
// Lists users. q matches name or email as a substring; sort=last_class puts
// the most recently taught students first.
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	filter := model.UserFilter{
		Query:           c.Query("q"),
		SortByLastClass: c.Query("sort") == "last_class",
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), actor, filter, perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, response.NewPagination(page, perPage, total))
}

// SetRole godoc
// PUT /api/v1/admin/users/:id/role
// Grants admin or student directly.
func (h *AdminUserHandler) SetRole(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.service.SetRole(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
// Deletes a user together with their requests.
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actor, id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
