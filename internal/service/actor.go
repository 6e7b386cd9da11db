package service

import (
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation. It is loaded
// from the database per request and passed explicitly to every call.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   model.Role
}

// ActorFromUser builds an Actor from a stored user.
func ActorFromUser(u *model.User) Actor {
	return Actor{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsAdmin reports whether the actor may resolve requests and manage content.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// IsStudent reports whether the actor may book classes and buy credits.
// Admins hold every student capability.
func (a Actor) IsStudent() bool {
	return a.Role == model.RoleStudent || a.Role == model.RoleAdmin
}
