// Package testutil provides a throwaway order table for the repository
// integration tests.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/sequra/e2e-fixtures/internal/config"
	"github.com/sequra/e2e-fixtures/internal/database"
)

const ordersTable = `
CREATE TABLE wc_orders (
	id BIGINT PRIMARY KEY,
	status VARCHAR(20) NOT NULL,
	total_amount NUMERIC(26, 8) NOT NULL DEFAULT 0,
	date_created_gmt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

var localDefaults = map[string]string{
	"SQ_E2E_DB_USER":     "postgres",
	"SQ_E2E_DB_PASSWORD": "postgres",
	"SQ_E2E_DB_NAME":     "postgres",
	"SQ_E2E_DB_HOST":     "localhost",
}

// TestDatabase is a schema of its own holding a wc_orders table.
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates the schema and its order table. Connection
// settings come from SQ_E2E_DB_*, falling back to a local postgres.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return localDefaults[key]
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}
	admin, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "sqe2e_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		admin:      admin,
	}
	if _, err := admin.Exec("CREATE SCHEMA " + td.SchemaName); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	td.DB, err = sql.Open("postgres", cfg.ConnectionString()+" search_path="+td.SchemaName)
	if err == nil {
		_, err = td.DB.Exec(ordersTable)
	}
	if err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to prepare schema %s: %v", td.SchemaName, err)
	}
	return td
}

// InsertOrder stores an order with a raw status, e.g. "wc-on-hold".
func (td *TestDatabase) InsertOrder(t *testing.T, id int64, status string) {
	t.Helper()
	td.exec(t, "INSERT INTO wc_orders (id, status) VALUES ($1, $2)", id, status)
}

func (td *TestDatabase) SetStatus(t *testing.T, id int64, status string) {
	t.Helper()
	td.exec(t, "UPDATE wc_orders SET status = $2 WHERE id = $1", id, status)
}

func (td *TestDatabase) exec(t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := td.DB.Exec(query, args...); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
}

// Teardown drops the schema.
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Failed to drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}
