package main

import (
	"errors"
	"net/mail"
	"strings"
)

const minPasswordLen = 6

type adminInput struct {
	Name     string
	Email    string
	Password string
}

// normalize trims and lowercases the fields in place and rejects input the
// register endpoint would also reject.
func (in *adminInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" {
		return errors.New("name is required")
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return errors.New("a plain email address is required")
	}
	if len(in.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
