package repository

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GuestListRepository reads the guest list.
type GuestListRepository struct {
	pool *pgxpool.Pool
}

// NewGuestListRepository creates a new GuestListRepository.
func NewGuestListRepository(pool *pgxpool.Pool) *GuestListRepository {
	return &GuestListRepository{pool: pool}
}

// List retrieves guest list entries ordered by class date, newest first.
// An empty date returns every entry.
func (r *GuestListRepository) List(ctx context.Context, date string, limit, offset int) ([]model.GuestListEntry, int, error) {
	where := ""
	args := []interface{}{}
	if date != "" {
		where = ` WHERE class_date = $1`
		args = append(args, date)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM guest_list`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, user_name, class_request_id, class_date, class_time, created_at
		 FROM guest_list`+where+` ORDER BY class_date DESC, class_time DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []model.GuestListEntry
	for rows.Next() {
		var e model.GuestListEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.ClassRequestID, &e.Date, &e.Time, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
