package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDSNEnv names the environment variable holding the integration test database DSN
const TestDSNEnv = "BET_JOURNAL_TEST_DSN"

// SetupTestDB connects to the database named by BET_JOURNAL_TEST_DSN and applies
// the schema. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping integration test", TestDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create test database pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := &DB{pool: pool}
	t.Cleanup(db.Close)
	return db
}

// TruncateWagers empties the wagers table between integration tests
func TruncateWagers(t *testing.T, db *DB) {
	t.Helper()
	if _, err := db.pool.Exec(context.Background(), "TRUNCATE wagers"); err != nil {
		t.Fatalf("failed to truncate wagers: %v", err)
	}
}
