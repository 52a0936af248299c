package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sheetlog/pkg/logging"
)

// SQLStore is the SQLite-backed user store.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore opens (or creates) the database at path and migrates the
// user table. Use ":memory:" for an ephemeral store in tests.
func NewSQLStore(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open user database at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate user table: %w", err)
	}
	logging.Info("UserStore", "User database ready at %s", path)
	return &SQLStore{db: db}, nil
}

// FindByID looks up a user by primary key.
func (s *SQLStore) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return &u, nil
}

// FindByUsername looks up a user by username.
func (s *SQLStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return &u, nil
}

// Create inserts a new user record.
func (s *SQLStore) Create(ctx context.Context, u *User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", u.Username, err)
	}
	return nil
}

// UpdateSpreadsheetID links the externally-chosen spreadsheet to the user.
func (s *SQLStore) UpdateSpreadsheetID(ctx context.Context, userID, spreadsheetID string) error {
	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Update("spreadsheet_id", spreadsheetID)
	if res.Error != nil {
		return fmt.Errorf("failed to link spreadsheet for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
