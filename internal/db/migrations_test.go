package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/healthy-cli/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "healthy.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 5 {
		t.Fatalf("expected 5 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"users", "foods", "meal_logs", "meal_portions", "weight_logs", "exercise_logs", "water_logs", "app_config"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var sourceColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('foods') WHERE name IN ('source', 'source_ref')`).Scan(&sourceColCount); err != nil {
		t.Fatalf("check foods source columns: %v", err)
	}
	if sourceColCount != 2 {
		t.Fatalf("expected source columns on foods, got %d", sourceColCount)
	}
}

func TestMealLogsRejectUnknownSlot(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "healthy.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO users(username) VALUES('ann')`); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO meal_logs(user_id, date, meal_type) VALUES(1, '2025-10-25', 'brunch')`); err == nil {
		t.Fatalf("expected meal_type check to reject brunch")
	}
}
