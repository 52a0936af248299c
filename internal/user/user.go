package user

import (
	"context"
	"errors"
	"time"
)

// User is the identity record. SpreadsheetID is the externally-chosen
// spreadsheet this user linked their authorization to; empty until the
// linking step completes.
type User struct {
	ID            string `gorm:"primaryKey"`
	Username      string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	SpreadsheetID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Store defines how user records are stored and retrieved.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateSpreadsheetID(ctx context.Context, userID, spreadsheetID string) error
}

var (
	// ErrNotFound is returned when no user matches the query.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on a failed login. Deliberately
	// identical for unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
