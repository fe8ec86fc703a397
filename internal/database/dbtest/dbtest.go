// Package dbtest opens a migrated PostgreSQL database for store tests.
// Tests using it are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/database"
)

const envURL = "TEST_DATABASE_URL"

// Open connects to the test database, applies migrations and empties every
// table. The connection is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s not set, skipping database test", envURL)
	}

	require.NoError(t, database.Migrate(url))

	db, err := database.New(context.Background(), url)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`TRUNCATE expenses, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}
