package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestStore persists and lists class and credit requests.
type RequestStore interface {
	CreateClassRequest(ctx context.Context, cr *model.ClassRequest) error
	CreateCreditRequest(ctx context.Context, cr *model.CreditRequest) error
	ListClassRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.ClassRequest, int, error)
	ListCreditRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.CreditRequest, int, error)
}

// RequestService handles request submission and listing.
type RequestService struct {
	store  RequestStore
	events EventPublisher
	log    zerolog.Logger
}

// NewRequestService creates a new RequestService. events may be nil.
func NewRequestService(store RequestStore, events EventPublisher, log zerolog.Logger) *RequestService {
	return &RequestService{
		store:  store,
		events: events,
		log:    log.With().Str("component", "request_service").Logger(),
	}
}

// SubmitClassRequest records a pending class booking for the actor.
// The balance is not checked; approval may take it negative.
func (s *RequestService) SubmitClassRequest(ctx context.Context, actor Actor, date, clock string) (*model.ClassRequest, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)

	fields := map[string]string{}
	if date == "" {
		fields["date"] = "date is required"
	} else if _, err := time.Parse(validator.DateLayout, date); err != nil {
		fields["date"] = "date must be in YYYY-MM-DD format"
	}
	if clock == "" {
		fields["time"] = "time is required"
	} else if _, err := time.Parse(validator.TimeLayout, clock); err != nil {
		fields["time"] = "time must be in HH:MM format"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	req := &model.ClassRequest{UserID: actor.UserID, UserName: actor.Name, Date: date, Time: clock}
	if err := s.store.CreateClassRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create class request: %w", err)
	}

	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("user_id", actor.UserID.String()).
		Str("date", date).
		Str("time", clock).
		Msg("Class request submitted")

	s.publish(ctx, model.CollectionClassRequests, req.ID, actor.UserID)
	return req, nil
}

// SubmitCreditRequest records a pending credit top-up for the actor.
func (s *RequestService) SubmitCreditRequest(ctx context.Context, actor Actor, amount int, proofMessage, paymentMethod string) (*model.CreditRequest, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	proofMessage = strings.TrimSpace(proofMessage)
	paymentMethod = strings.TrimSpace(paymentMethod)

	fields := map[string]string{}
	if amount <= 0 {
		fields["amount"] = "amount must be greater than 0"
	}
	if proofMessage == "" {
		fields["proof_message"] = "proof_message is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if paymentMethod == "" {
		paymentMethod = model.DefaultPaymentMethod
	}

	req := &model.CreditRequest{
		UserID:        actor.UserID,
		UserName:      actor.Name,
		Amount:        amount,
		ProofMessage:  proofMessage,
		PaymentMethod: paymentMethod,
	}
	if err := s.store.CreateCreditRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create credit request: %w", err)
	}

	s.log.Info().
		Str("request_id", req.ID.String()).
		Str("user_id", actor.UserID.String()).
		Int("amount", amount).
		Msg("Credit request submitted")

	s.publish(ctx, model.CollectionCreditRequests, req.ID, actor.UserID)
	return req, nil
}

// ListOwnClassRequests returns the actor's class requests, newest first.
func (s *RequestService) ListOwnClassRequests(ctx context.Context, actor Actor, limit, offset int) ([]model.ClassRequest, int, error) {
	id := actor.UserID
	return s.store.ListClassRequests(ctx, model.RequestFilter{UserID: &id}, limit, offset)
}

// ListOwnCreditRequests returns the actor's credit requests, newest first.
func (s *RequestService) ListOwnCreditRequests(ctx context.Context, actor Actor, limit, offset int) ([]model.CreditRequest, int, error) {
	id := actor.UserID
	return s.store.ListCreditRequests(ctx, model.RequestFilter{UserID: &id}, limit, offset)
}

// ListClassRequests returns class requests for the admin panel.
func (s *RequestService) ListClassRequests(ctx context.Context, actor Actor, status model.RequestStatus, limit, offset int) ([]model.ClassRequest, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if status != "" && !status.Valid() {
		return nil, 0, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.store.ListClassRequests(ctx, model.RequestFilter{Status: status}, limit, offset)
}

// ListCreditRequests returns credit requests for the admin panel.
func (s *RequestService) ListCreditRequests(ctx context.Context, actor Actor, status model.RequestStatus, limit, offset int) ([]model.CreditRequest, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if status != "" && !status.Valid() {
		return nil, 0, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.store.ListCreditRequests(ctx, model.RequestFilter{Status: status}, limit, offset)
}

func (s *RequestService) publish(ctx context.Context, c model.Collection, requestID, userID uuid.UUID) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, model.RequestEvent{
		Type:       model.EventRequestCreated,
		Collection: c,
		RequestID:  requestID,
		UserID:     userID,
		Status:     model.StatusPending,
		At:         time.Now().UTC(),
	})
}
