package domain

import (
	"fmt"
	"strings"
)

type User struct {
	ID       string
	Username string
	Email    string
	address  string
}

func NewUser(id, username, email string) (*User, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("user %s: %w", id, ErrInvalidEmail)
	}
	return &User{
		ID:       id,
		Username: username,
		Email:    email,
	}, nil
}

// SetAddress overwrites the shipping address. Blank addresses are rejected.
func (u *User) SetAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrEmptyAddress
	}
	u.address = address
	return nil
}

// Address returns the shipping address and whether one has been set.
func (u *User) Address() (string, bool) {
	return u.address, u.address != ""
}

func (u *User) HasAddress() bool {
	return u.address != ""
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%s, username=%s, email=%s)", u.ID, u.Username, u.Email)
}
