package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the capability carried on a user record. Administrators are not a
// separate entity.
type Role string

const (
	RoleUser    Role = "user"
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// HomePath is the landing page the client redirects to after sign-in.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStudent:
		return "/dashboard"
	default:
		return "/register"
	}
}

// User is a registered account. Credits may be negative, meaning classes are owed.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Credits      int       `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListItem is a user row in the admin user table.
type UserListItem struct {
	User
	LastClassDate  *string `json:"last_class_date"`
	BalanceDisplay string  `json:"balance_display"`
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Query string
	// SortByLastClass orders by most recent approved class first.
	SortByLastClass bool
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for email + password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
	Home  string `json:"home"`
}

// UpdateRoleRequest is the payload for an administrator setting a role directly.
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=admin student"`
}
