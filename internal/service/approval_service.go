package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// hookTimeout bounds the post-commit hook, which runs detached from the
// caller's cancellation.
const hookTimeout = 15 * time.Second

// ApprovalTx is the set of reads and writes an approval performs atomically.
// Lock* methods hold the row until the transaction ends.
type ApprovalTx interface {
	LockClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error)
	LockCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error)
	LockUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	AdjustCredits(ctx context.Context, userID uuid.UUID, delta int) (*model.User, error)
	ResolveClassRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.ClassRequest, error)
	ResolveCreditRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.CreditRequest, error)
	InsertGuestListEntry(ctx context.Context, e *model.GuestListEntry) error
}

// ApprovalStore persists request resolutions.
type ApprovalStore interface {
	InTx(ctx context.Context, fn func(tx ApprovalTx) error) error
	DeclineClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error)
	DeclineCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error)
}

type postgresApprovalStore struct {
	approvals *repository.ApprovalRepository
	*repository.RequestRepository
}

// NewPostgresApprovalStore backs an ApprovalStore with the Postgres repositories.
func NewPostgresApprovalStore(approvals *repository.ApprovalRepository, requests *repository.RequestRepository) ApprovalStore {
	return &postgresApprovalStore{approvals: approvals, RequestRepository: requests}
}

func (s *postgresApprovalStore) InTx(ctx context.Context, fn func(tx ApprovalTx) error) error {
	return s.approvals.InTx(ctx, func(tx *repository.ApprovalTx) error {
		return fn(tx)
	})
}

// ClassApprovedHook runs after a class approval has committed. Its failure is
// reported to the caller as a warning and never affects the stored state.
type ClassApprovedHook interface {
	OnClassApproved(ctx context.Context, req *model.ClassRequest, user *model.User) error
}

// EventPublisher broadcasts request lifecycle events. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, e model.RequestEvent)
}

// ApprovalResult holds the records an approval or decline wrote.
type ApprovalResult struct {
	ClassRequest   *model.ClassRequest   `json:"class_request,omitempty"`
	CreditRequest  *model.CreditRequest  `json:"credit_request,omitempty"`
	User           *model.User           `json:"user,omitempty"`
	Balance        *model.Balance        `json:"balance,omitempty"`
	GuestListEntry *model.GuestListEntry `json:"guest_list_entry,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// ApprovalService resolves pending requests exactly once.
type ApprovalService struct {
	store        ApprovalStore
	hook         ClassApprovedHook
	events       EventPublisher
	enforceFloor bool
	log          zerolog.Logger
}

// NewApprovalService creates a new ApprovalService. hook and events may be nil.
// With enforceFloor set, class approvals that would take a balance below zero fail.
func NewApprovalService(store ApprovalStore, hook ClassApprovedHook, events EventPublisher, enforceFloor bool, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{
		store:        store,
		hook:         hook,
		events:       events,
		enforceFloor: enforceFloor,
		log:          log.With().Str("component", "approval_service").Logger(),
	}
}

// ApproveCreditRequest adds the request's amount to the user's balance and
// marks the request approved in one transaction.
func (s *ApprovalService) ApproveCreditRequest(ctx context.Context, actor Actor, requestID uuid.UUID) (*ApprovalResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	res := &ApprovalResult{}
	err := s.store.InTx(ctx, func(tx ApprovalTx) error {
		req, err := tx.LockCreditRequest(ctx, requestID)
		if err != nil {
			return mapMissing(err, ErrRequestNotFound)
		}
		if req.Status != model.StatusPending {
			return ErrRequestAlreadyResolved
		}
		if _, err := tx.LockUser(ctx, req.UserID); err != nil {
			return mapMissing(err, ErrUserNotFound)
		}

		user, err := tx.AdjustCredits(ctx, req.UserID, req.Amount)
		if err != nil {
			return mapMissing(err, ErrUserNotFound)
		}
		resolved, err := tx.ResolveCreditRequest(ctx, requestID, model.StatusApproved)
		if err != nil {
			return mapResolveError(err)
		}

		res.CreditRequest = resolved
		res.User = user
		return nil
	})
	if err != nil {
		return nil, s.txError(err, "approve credit request", requestID)
	}

	balance := model.NewBalance(res.User.Credits)
	res.Balance = &balance

	s.log.Info().
		Str("request_id", requestID.String()).
		Str("user_id", res.User.ID.String()).
		Str("admin_id", actor.UserID.String()).
		Int("amount", res.CreditRequest.Amount).
		Int("balance", res.User.Credits).
		Msg("Credit request approved")

	s.publish(ctx, model.EventRequestApproved, model.CollectionCreditRequests, requestID, res.User.ID, &res.User.Credits)
	return res, nil
}

// ApproveClassRequest takes one credit from the user, marks the request
// approved and records a guest list entry in one transaction. Once committed,
// the class-approved hook runs if the request has a date and time.
func (s *ApprovalService) ApproveClassRequest(ctx context.Context, actor Actor, requestID uuid.UUID) (*ApprovalResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	res := &ApprovalResult{}
	err := s.store.InTx(ctx, func(tx ApprovalTx) error {
		req, err := tx.LockClassRequest(ctx, requestID)
		if err != nil {
			return mapMissing(err, ErrRequestNotFound)
		}
		if req.Status != model.StatusPending {
			return ErrRequestAlreadyResolved
		}
		owner, err := tx.LockUser(ctx, req.UserID)
		if err != nil {
			return mapMissing(err, ErrUserNotFound)
		}
		if s.enforceFloor && owner.Credits < 1 {
			return ErrInsufficientCredits
		}

		user, err := tx.AdjustCredits(ctx, req.UserID, -1)
		if err != nil {
			return mapMissing(err, ErrUserNotFound)
		}
		resolved, err := tx.ResolveClassRequest(ctx, requestID, model.StatusApproved)
		if err != nil {
			return mapResolveError(err)
		}

		entry := &model.GuestListEntry{
			UserID:         user.ID,
			UserName:       user.Name,
			ClassRequestID: resolved.ID,
			Date:           resolved.Date,
			Time:           resolved.Time,
		}
		if err := tx.InsertGuestListEntry(ctx, entry); err != nil {
			if database.PgErrorCode(err) == database.PgUniqueViolation {
				return ErrRequestAlreadyResolved
			}
			return err
		}

		res.ClassRequest = resolved
		res.User = user
		res.GuestListEntry = entry
		return nil
	})
	if err != nil {
		return nil, s.txError(err, "approve class request", requestID)
	}

	balance := model.NewBalance(res.User.Credits)
	res.Balance = &balance

	s.log.Info().
		Str("request_id", requestID.String()).
		Str("user_id", res.User.ID.String()).
		Str("admin_id", actor.UserID.String()).
		Int("balance", res.User.Credits).
		Msg("Class request approved")

	s.publish(ctx, model.EventRequestApproved, model.CollectionClassRequests, requestID, res.User.ID, &res.User.Credits)

	if s.hook != nil && res.ClassRequest.Date != "" && res.ClassRequest.Time != "" {
		hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hookTimeout)
		defer cancel()
		if err := s.hook.OnClassApproved(hookCtx, res.ClassRequest, res.User); err != nil {
			s.log.Warn().Err(err).
				Str("request_id", requestID.String()).
				Msg("Class approved but calendar notification failed")
			res.Warnings = append(res.Warnings, "calendar notification failed: "+err.Error())
		}
	}

	return res, nil
}

// DeclineRequest marks a pending class or credit request declined. Balances
// are never touched.
func (s *ApprovalService) DeclineRequest(ctx context.Context, actor Actor, collection model.Collection, requestID uuid.UUID) (*ApprovalResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	res := &ApprovalResult{}
	var (
		userID uuid.UUID
		err    error
	)
	switch collection {
	case model.CollectionClassRequests:
		res.ClassRequest, err = s.store.DeclineClassRequest(ctx, requestID)
		if res.ClassRequest != nil {
			userID = res.ClassRequest.UserID
		}
	case model.CollectionCreditRequests:
		res.CreditRequest, err = s.store.DeclineCreditRequest(ctx, requestID)
		if res.CreditRequest != nil {
			userID = res.CreditRequest.UserID
		}
	default:
		return nil, invalid("collection", fmt.Sprintf("%q does not hold requests", collection))
	}
	if err != nil {
		return nil, mapResolveError(mapMissing(err, ErrRequestNotFound))
	}

	s.log.Info().
		Str("collection", string(collection)).
		Str("request_id", requestID.String()).
		Str("admin_id", actor.UserID.String()).
		Msg("Request declined")

	s.publish(ctx, model.EventRequestDeclined, collection, requestID, userID, nil)
	return res, nil
}

func (s *ApprovalService) publish(ctx context.Context, t model.RequestEventType, c model.Collection, requestID, userID uuid.UUID, balance *int) {
	if s.events == nil {
		return
	}
	status := model.StatusApproved
	if t == model.EventRequestDeclined {
		status = model.StatusDeclined
	}
	s.events.Publish(ctx, model.RequestEvent{
		Type:       t,
		Collection: c,
		RequestID:  requestID,
		UserID:     userID,
		Status:     status,
		Balance:    balance,
		At:         time.Now().UTC(),
	})
}

// txError classifies a failed approval transaction.
func (s *ApprovalService) txError(err error, op string, requestID uuid.UUID) error {
	switch {
	case errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrRequestAlreadyResolved),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInsufficientCredits):
		s.log.Debug().Err(err).Str("request_id", requestID.String()).Msg(op + " rejected")
		return err
	case database.IsRetryable(err):
		s.log.Warn().Err(err).Str("request_id", requestID.String()).Msg(op + " conflicted")
		return fmt.Errorf("%w: %v", ErrTransactionConflict, err)
	}
	s.log.Error().Err(err).Str("request_id", requestID.String()).Msg(op + " failed")
	return fmt.Errorf("%s: %w", op, err)
}

func mapMissing(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}

func mapResolveError(err error) error {
	if errors.Is(err, repository.ErrNotPending) {
		return ErrRequestAlreadyResolved
	}
	return err
}
