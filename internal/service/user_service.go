package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserStore reads and updates user accounts.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetBalance(ctx context.Context, id uuid.UUID) (int, error)
	List(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.UserListItem, int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error)
	PromoteToStudent(ctx context.Context, id uuid.UUID) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// dashboardRequestLimit caps each request list on the student dashboard.
const dashboardRequestLimit = 50

// UserService handles balances, the student dashboard and user administration.
type UserService struct {
	users    UserStore
	requests RequestStore
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, requests RequestStore, log zerolog.Logger) *UserService {
	return &UserService{
		users:    users,
		requests: requests,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// GetBalance returns the current credit balance of a user.
func (s *UserService) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.users.GetBalance(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrUserNotFound
	}
	return n, err
}

// StudentDashboard returns the actor's balance and own requests.
func (s *UserService) StudentDashboard(ctx context.Context, actor Actor) (*model.StudentDashboard, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	own := model.RequestFilter{UserID: &actor.UserID}
	classes, _, err := s.requests.ListClassRequests(ctx, own, dashboardRequestLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list class requests: %w", err)
	}
	credits, _, err := s.requests.ListCreditRequests(ctx, own, dashboardRequestLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}
	if classes == nil {
		classes = []model.ClassRequest{}
	}
	if credits == nil {
		credits = []model.CreditRequest{}
	}

	return &model.StudentDashboard{
		User:           user,
		Balance:        model.NewBalance(user.Credits),
		ClassRequests:  classes,
		CreditRequests: credits,
	}, nil
}

// ListUsers returns users for the admin table. The query matches name or
// email as a case-insensitive substring.
func (s *UserService) ListUsers(ctx context.Context, actor Actor, f model.UserFilter, limit, offset int) ([]model.UserListItem, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	f.Query = strings.TrimSpace(f.Query)
	return s.users.List(ctx, f, limit, offset)
}

// SetRole lets an administrator grant admin or student directly.
func (s *UserService) SetRole(ctx context.Context, actor Actor, userID uuid.UUID, role model.Role) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if role != model.RoleAdmin && role != model.RoleStudent {
		return nil, invalid("role", "role must be admin or student")
	}

	u, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("role", string(role)).
		Str("admin_id", actor.UserID.String()).
		Msg("User role updated")
	return u, nil
}

// DeleteUser removes an account together with its requests. Administrators
// cannot delete themselves, and accounts with guest list entries are kept.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if userID == actor.UserID {
		return invalid("id", "you cannot delete your own account")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrInUse
		}
		return err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("admin_id", actor.UserID.String()).
		Msg("User deleted")
	return nil
}
