package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sheetlog/pkg/logging"
)

// bcryptCost matches the cost existing account passwords were hashed with.
const bcryptCost = 10

// Service implements username/password account management over a Store.
type Service struct {
	store Store
}

// NewService creates an account service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password must not be empty")
	}

	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	logging.Info("UserStore", "Registered user=%s", logging.TruncateUserID(u.ID))
	return u, nil
}

// Find looks up an account by id.
func (s *Service) Find(ctx context.Context, id string) (*User, error) {
	return s.store.FindByID(ctx, id)
}

// LinkSpreadsheet records the user's duplicated spreadsheet.
func (s *Service) LinkSpreadsheet(ctx context.Context, userID, spreadsheetID string) error {
	if err := s.store.UpdateSpreadsheetID(ctx, userID, spreadsheetID); err != nil {
		return err
	}
	logging.Info("UserStore", "Linked spreadsheet for user=%s", logging.TruncateUserID(userID))
	return nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
