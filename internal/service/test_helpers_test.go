package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "healthy.db")
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return sqldb
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// seedUser creates a 25 year old 175 cm male starting at 70 kg.
func seedUser(t *testing.T, sqldb *sql.DB, username string) int64 {
	t.Helper()
	id, err := service.CreateUser(sqldb, service.UserInput{
		Username:        username,
		Age:             intPtr(25),
		Gender:          "male",
		HeightCm:        floatPtr(175),
		InitialWeightKg: floatPtr(70),
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return id
}

func seedFood(t *testing.T, sqldb *sql.DB, name, category string, kcal float64) int64 {
	t.Helper()
	id, err := service.AddFood(sqldb, service.FoodInput{Name: name, Category: category, CaloriesPer100g: kcal})
	if err != nil {
		t.Fatalf("add food %q: %v", name, err)
	}
	return id
}
