package domain

import (
	"context"
	"strings"
	"time"
)

// User represents a learner or administrator account
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	FullName      string
	Qualification string
	DateOfBirth   *time.Time
	IsAdmin       bool
	IsBlocked     bool
	CreatedAt     time.Time
}

// NewUser creates a new learner account
func NewUser(email, fullName, qualification string, dateOfBirth *time.Time) *User {
	return &User{
		Email:         strings.TrimSpace(strings.ToLower(email)),
		FullName:      fullName,
		Qualification: qualification,
		DateOfBirth:   dateOfBirth,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		errs.Add("email", "a valid email is required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		errs.Add("full_name", "full name is required")
	}
	return errs.OrNil()
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListLearners(ctx context.Context) ([]*User, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

// TransactionManager runs fn inside one store transaction. Repositories
// called with the ctx passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
