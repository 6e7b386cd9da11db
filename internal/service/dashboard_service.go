package service

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
)

// DashboardService handles the admin dashboard and guest list.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	guests        GuestListStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, guests GuestListStore) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, guests: guests}
}

// GetAdminDashboard returns the admin panel counters.
func (s *DashboardService) GetAdminDashboard(ctx context.Context, actor Actor) (*model.AdminDashboard, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.dashboardRepo.GetSummary(ctx)
}

// ListGuestList returns approved classes, optionally for one date.
func (s *DashboardService) ListGuestList(ctx context.Context, actor Actor, date string, limit, offset int) ([]model.GuestListEntry, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.guests.List(ctx, date, limit, offset)
}
