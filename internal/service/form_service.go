package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/rs/zerolog"
)

// RosterChecker reports whether an email submitted the registration form.
type RosterChecker interface {
	HasSubmitted(ctx context.Context, email string) (bool, error)
}

// FormService answers registration form lookups and promotes verified users.
type FormService struct {
	roster RosterChecker
	users  UserStore
	log    zerolog.Logger
}

// NewFormService creates a new FormService.
func NewFormService(roster RosterChecker, users UserStore, log zerolog.Logger) *FormService {
	return &FormService{
		roster: roster,
		users:  users,
		log:    log.With().Str("component", "form_service").Logger(),
	}
}

// CheckSubmission reports whether email appears in the form responses.
// Errors from an unconfigured roster pass through unchanged.
func (s *FormService) CheckSubmission(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, invalid("email", "email is required")
	}
	return s.roster.HasSubmitted(ctx, email)
}

// VerifyStudent promotes the actor from user to student once their email is
// found on the roster. Students and admins are returned unchanged.
func (s *FormService) VerifyStudent(ctx context.Context, actor Actor) (*model.User, error) {
	if actor.Role != model.RoleUser {
		u, err := s.users.GetByID(ctx, actor.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return u, err
	}

	ok, err := s.CheckSubmission(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOnRoster
	}

	u, err := s.users.PromoteToStudent(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.Info().
		Str("user_id", actor.UserID.String()).
		Str("role", string(u.Role)).
		Msg("User verified as student")
	return u, nil
}
