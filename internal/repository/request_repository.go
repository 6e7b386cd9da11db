package repository

import (
	"context"
	"strconv"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	classRequestSelect = `SELECT c.id, c.user_id, COALESCE(u.name, ''), c.requested_date, c.requested_time,
		c.status, c.created_at, c.resolved_at
		FROM class_requests c LEFT JOIN users u ON u.id = c.user_id`
	creditRequestSelect = `SELECT c.id, c.user_id, COALESCE(u.name, ''), c.amount, c.proof_message,
		c.payment_method, c.status, c.created_at, c.resolved_at
		FROM credit_requests c LEFT JOIN users u ON u.id = c.user_id`
)

// RequestRepository handles class and credit request data access outside
// the approval transaction.
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func scanClassRequest(row pgx.Row) (*model.ClassRequest, error) {
	cr := &model.ClassRequest{}
	err := row.Scan(&cr.ID, &cr.UserID, &cr.UserName, &cr.Date, &cr.Time, &cr.Status, &cr.CreatedAt, &cr.ResolvedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return cr, nil
}

func scanCreditRequest(row pgx.Row) (*model.CreditRequest, error) {
	cr := &model.CreditRequest{}
	err := row.Scan(&cr.ID, &cr.UserID, &cr.UserName, &cr.Amount, &cr.ProofMessage, &cr.PaymentMethod, &cr.Status, &cr.CreatedAt, &cr.ResolvedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return cr, nil
}

// CreateClassRequest inserts a pending class request.
func (r *RequestRepository) CreateClassRequest(ctx context.Context, cr *model.ClassRequest) error {
	cr.Status = model.StatusPending
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_requests (user_id, requested_date, requested_time, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		cr.UserID, cr.Date, cr.Time, cr.Status,
	).Scan(&cr.ID, &cr.CreatedAt)
}

// CreateCreditRequest inserts a pending credit request.
func (r *RequestRepository) CreateCreditRequest(ctx context.Context, cr *model.CreditRequest) error {
	cr.Status = model.StatusPending
	return r.pool.QueryRow(ctx,
		`INSERT INTO credit_requests (user_id, amount, proof_message, payment_method, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		cr.UserID, cr.Amount, cr.ProofMessage, cr.PaymentMethod, cr.Status,
	).Scan(&cr.ID, &cr.CreatedAt)
}

// GetClassRequest retrieves a class request by ID.
func (r *RequestRepository) GetClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error) {
	return scanClassRequest(r.pool.QueryRow(ctx, classRequestSelect+` WHERE c.id = $1`, id))
}

// GetCreditRequest retrieves a credit request by ID.
func (r *RequestRepository) GetCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	return scanCreditRequest(r.pool.QueryRow(ctx, creditRequestSelect+` WHERE c.id = $1`, id))
}

// buildFilter renders the WHERE clause shared by both request listings.
func buildFilter(f model.RequestFilter) (string, []interface{}) {
	where := ""
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += cond + strconv.Itoa(len(args))
	}
	if f.UserID != nil {
		add("c.user_id = $", *f.UserID)
	}
	if f.Status != "" {
		add("c.status = $", f.Status)
	}
	return where, args
}

func pageClause(args []interface{}, limit, offset int) (string, []interface{}) {
	n := len(args)
	return ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2), append(args, limit, offset)
}

// ListClassRequests retrieves class requests newest first.
func (r *RequestRepository) ListClassRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.ClassRequest, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM class_requests c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, limit, offset)
	rows, err := r.pool.Query(ctx, classRequestSelect+where+` ORDER BY c.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.ClassRequest
	for rows.Next() {
		cr, err := scanClassRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *cr)
	}
	return out, total, rows.Err()
}

// ListCreditRequests retrieves credit requests newest first.
func (r *RequestRepository) ListCreditRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.CreditRequest, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM credit_requests c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, limit, offset)
	rows, err := r.pool.Query(ctx, creditRequestSelect+where+` ORDER BY c.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.CreditRequest
	for rows.Next() {
		cr, err := scanCreditRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *cr)
	}
	return out, total, rows.Err()
}

// DeclineClassRequest marks a pending class request declined with a single
// conditional write and returns the updated record. It returns ErrNotPending
// with the current record when the request was already resolved.
func (r *RequestRepository) DeclineClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE class_requests SET status = $1, resolved_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		model.StatusDeclined, id, model.StatusPending,
	)
	if err != nil {
		return nil, err
	}

	cr, err := r.GetClassRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return cr, ErrNotPending
	}
	return cr, nil
}

// DeclineCreditRequest is DeclineClassRequest for credit requests.
func (r *RequestRepository) DeclineCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE credit_requests SET status = $1, resolved_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		model.StatusDeclined, id, model.StatusPending,
	)
	if err != nil {
		return nil, err
	}

	cr, err := r.GetCreditRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return cr, ErrNotPending
	}
	return cr, nil
}
