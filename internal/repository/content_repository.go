package repository

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoticeRepository handles notice data access.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

const noticeColumns = `id, body, author, created_at, updated_at`

func scanNotice(row pgx.Row) (*model.Notice, error) {
	n := &model.Notice{}
	if err := row.Scan(&n.ID, &n.Body, &n.Author, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// List retrieves all notices, newest first.
func (r *NoticeRepository) List(ctx context.Context) ([]model.Notice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noticeColumns+` FROM notices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := []model.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

// Create inserts a notice.
func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notices (body, author) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		n.Body, n.Author,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// Update replaces a notice's body and returns the updated record.
func (r *NoticeRepository) Update(ctx context.Context, id uuid.UUID, body, author string) (*model.Notice, error) {
	return scanNotice(r.pool.QueryRow(ctx,
		`UPDATE notices SET body = $1, author = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3 RETURNING `+noticeColumns, body, author, id))
}

// Delete removes a notice.
func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConcertRepository handles upcoming concert data access.
type ConcertRepository struct {
	pool *pgxpool.Pool
}

// NewConcertRepository creates a new ConcertRepository.
func NewConcertRepository(pool *pgxpool.Pool) *ConcertRepository {
	return &ConcertRepository{pool: pool}
}

const concertColumns = `id, title, venue, location, concert_date, concert_time, author, created_at, updated_at`

func scanConcert(row pgx.Row) (*model.Concert, error) {
	c := &model.Concert{}
	if err := row.Scan(&c.ID, &c.Title, &c.Venue, &c.Location, &c.Date, &c.Time, &c.Author, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List retrieves concerts in date order. upcomingOnly hides concerts before today.
func (r *ConcertRepository) List(ctx context.Context, upcomingOnly bool) ([]model.Concert, error) {
	query := `SELECT ` + concertColumns + ` FROM upcoming_concerts`
	if upcomingOnly {
		query += ` WHERE concert_date >= to_char(CURRENT_DATE, 'YYYY-MM-DD')`
	}
	query += ` ORDER BY concert_date, concert_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	concerts := []model.Concert{}
	for rows.Next() {
		c, err := scanConcert(rows)
		if err != nil {
			return nil, err
		}
		concerts = append(concerts, *c)
	}
	return concerts, rows.Err()
}

// Create inserts a concert.
func (r *ConcertRepository) Create(ctx context.Context, c *model.Concert) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO upcoming_concerts (title, venue, location, concert_date, concert_time, author)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Venue, c.Location, c.Date, c.Time, c.Author,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update replaces a concert's fields and returns the updated record.
func (r *ConcertRepository) Update(ctx context.Context, c *model.Concert) (*model.Concert, error) {
	return scanConcert(r.pool.QueryRow(ctx,
		`UPDATE upcoming_concerts
		 SET title = $1, venue = $2, location = $3, concert_date = $4, concert_time = $5,
		     author = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7 RETURNING `+concertColumns,
		c.Title, c.Venue, c.Location, c.Date, c.Time, c.Author, c.ID))
}

// Delete removes a concert.
func (r *ConcertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM upcoming_concerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
