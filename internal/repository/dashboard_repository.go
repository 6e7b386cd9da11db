package repository

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummary retrieves the dashboard counters in a single round trip.
func (r *DashboardRepository) GetSummary(ctx context.Context) (*model.AdminDashboard, error) {
	d := &model.AdminDashboard{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM class_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM credit_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE credits < 0),
			(SELECT COALESCE(-SUM(credits), 0) FROM users WHERE credits < 0),
			(SELECT COUNT(*) FROM class_requests
			 WHERE status = 'approved' AND resolved_at >= date_trunc('month', CURRENT_TIMESTAMP))`,
	).Scan(
		&d.PendingClassRequests,
		&d.PendingCreditRequests,
		&d.TotalStudents,
		&d.TotalUsers,
		&d.StudentsOwing,
		&d.ClassesOwed,
		&d.ApprovedClassesMonth,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}
