package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/odonto-flow/internal/common"
)

// TokenKey is the well-known key the auth token is stored under.
const TokenKey = "authToken"

// GetSetting returns the value stored under key or common.ErrNotFound.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) DeleteSetting(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// GetToken returns the stored auth token. A missing token matches both
// common.ErrNoToken and common.ErrNotFound.
func (s *SQLiteStorage) GetToken(ctx context.Context) (string, error) {
	token, err := s.GetSetting(ctx, TokenKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("%w: %w", common.ErrNoToken, err)
	}
	return token, err
}

// SaveToken persists the auth token.
func (s *SQLiteStorage) SaveToken(ctx context.Context, token string) error {
	if err := validateString(token, "token"); err != nil {
		return err
	}
	return s.SetSetting(ctx, TokenKey, token)
}

// DeleteToken forgets the auth token.
func (s *SQLiteStorage) DeleteToken(ctx context.Context) error {
	return s.DeleteSetting(ctx, TokenKey)
}
