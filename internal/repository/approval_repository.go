package repository

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApprovalRepository runs request approvals as single Postgres transactions.
type ApprovalRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRepository creates a new ApprovalRepository.
func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

// InTx runs fn in a transaction. Rows locked through the ApprovalTx stay
// locked until fn returns and the transaction commits or rolls back.
func (r *ApprovalRepository) InTx(ctx context.Context, fn func(tx *ApprovalTx) error) error {
	return database.RunInTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&ApprovalTx{tx: tx})
	})
}

// ApprovalTx exposes the reads and writes an approval performs inside one transaction.
type ApprovalTx struct {
	tx pgx.Tx
}

// LockClassRequest reads a class request with FOR UPDATE so concurrent
// approvals of the same request serialize on the row.
func (t *ApprovalTx) LockClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error) {
	return scanClassRequest(t.tx.QueryRow(ctx, classRequestSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id))
}

// LockCreditRequest reads a credit request with FOR UPDATE.
func (t *ApprovalTx) LockCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	return scanCreditRequest(t.tx.QueryRow(ctx, creditRequestSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id))
}

// LockUser reads a user with FOR UPDATE.
func (t *ApprovalTx) LockUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(t.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// AdjustCredits adds delta to the user's balance and returns the updated user.
func (t *ApprovalTx) AdjustCredits(ctx context.Context, userID uuid.UUID, delta int) (*model.User, error) {
	return scanUser(t.tx.QueryRow(ctx,
		`UPDATE users SET credits = credits + $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING `+userColumns, delta, userID))
}

// ResolveClassRequest sets the status of a still-pending class request.
// It returns ErrNotPending if the row was resolved in the meantime.
func (t *ApprovalTx) ResolveClassRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.ClassRequest, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE class_requests SET status = $1, resolved_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		status, id, model.StatusPending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotPending
	}
	return scanClassRequest(t.tx.QueryRow(ctx, classRequestSelect+` WHERE c.id = $1`, id))
}

// ResolveCreditRequest sets the status of a still-pending credit request.
func (t *ApprovalTx) ResolveCreditRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.CreditRequest, error) {
	tag, err := t.tx.Exec(ctx,
		`UPDATE credit_requests SET status = $1, resolved_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		status, id, model.StatusPending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotPending
	}
	return scanCreditRequest(t.tx.QueryRow(ctx, creditRequestSelect+` WHERE c.id = $1`, id))
}

// InsertGuestListEntry records an approved class.
func (t *ApprovalTx) InsertGuestListEntry(ctx context.Context, e *model.GuestListEntry) error {
	return t.tx.QueryRow(ctx,
		`INSERT INTO guest_list (user_id, user_name, class_request_id, class_date, class_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.UserID, e.UserName, e.ClassRequestID, e.Date, e.Time,
	).Scan(&e.ID, &e.CreatedAt)
}
