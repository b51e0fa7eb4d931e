// Package testutil provides shared test helpers: a migrated in-memory token
// store and consultation fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/odonto-flow/internal/storage"
)

// SetupTokenStore creates a migrated in-memory SQLite store, optionally
// seeded with token. The store is closed when the test ends.
func SetupTokenStore(t *testing.T, token string) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if token != "" {
		if err := store.SaveToken(ctx, token); err != nil {
			t.Fatalf("failed to seed token: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
