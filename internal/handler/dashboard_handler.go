package handler

import (
	"net/http"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the admin dashboard and guest list.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/admin/dashboard
// Pending counts, student totals and outstanding balances.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	data, err := h.dashboardService.GetAdminDashboard(c.Request.Context(), actor)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data)
}

// ListGuestList godoc
// GET /api/v1/admin/guest-list?date=YYYY-MM-DD
func (h *DashboardHandler) ListGuestList(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	page, perPage := pageParams(c)
	entries, total, err := h.dashboardService.ListGuestList(c.Request.Context(), actor, c.Query("date"), perPage, offsetOf(page, perPage))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"guest_list": entries}, response.NewPagination(page, perPage, total))
}
