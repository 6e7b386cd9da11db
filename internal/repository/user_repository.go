package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, role, credits, created_at, updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Credits, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email)))
}

// GetBalance returns the user's credit balance.
func (r *UserRepository) GetBalance(ctx context.Context, id uuid.UUID) (int, error) {
	var credits int
	err := r.pool.QueryRow(ctx, `SELECT credits FROM users WHERE id = $1`, id).Scan(&credits)
	if err != nil {
		return 0, notFound(err)
	}
	return credits, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role, credits)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role, u.Credits,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if database.PgErrorCode(err) == database.PgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// List retrieves users with pagination, an optional name/email substring
// filter, and optional ordering by most recent approved class.
func (r *UserRepository) List(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.UserListItem, int, error) {
	where := ""
	var args []interface{}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		where = ` WHERE u.name ILIKE $1 OR u.email ILIKE $1`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := ` ORDER BY u.name`
	if f.SortByLastClass {
		order = ` ORDER BY last_class_date DESC NULLS LAST, u.name`
	}

	argIdx := len(args) + 1
	query := `SELECT u.id, u.name, u.email, u.role, u.credits, u.created_at, u.updated_at,
			(SELECT MAX(c.requested_date) FROM class_requests c
			 WHERE c.user_id = u.id AND c.status = 'approved') AS last_class_date
		 FROM users u` + where + order +
		` LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.UserListItem
	for rows.Next() {
		var u model.UserListItem
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Credits, &u.CreatedAt, &u.UpdatedAt, &u.LastClassDate); err != nil {
			return nil, 0, err
		}
		u.BalanceDisplay = model.BalanceDisplay(u.Credits)
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateRole sets a user's role and returns the updated record.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING `+userColumns, role, id))
}

// PromoteToStudent moves a user from role "user" to "student". Users already
// holding another role are returned unchanged.
func (r *UserRepository) PromoteToStudent(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND role = $3
		 RETURNING `+userColumns, model.RoleStudent, id, model.RoleUser))
	if err == ErrNotFound {
		return r.GetByID(ctx, id)
	}
	return u, err
}

// Delete removes a user and their requests. A user with guest list entries
// yields ErrReferenced.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return referenced(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
