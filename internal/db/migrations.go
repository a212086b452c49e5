package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  age INTEGER CHECK(age IS NULL OR age >= 0),
  gender TEXT,
  height_cm REAL CHECK(height_cm IS NULL OR height_cm >= 0),
  initial_weight_kg REAL CHECK(initial_weight_kg IS NULL OR initial_weight_kg >= 0),
  target_weight_kg REAL CHECK(target_weight_kg IS NULL OR target_weight_kg >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS foods (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  calories_per_100g REAL NOT NULL CHECK(calories_per_100g >= 0),
  carbs_per_100g REAL NOT NULL DEFAULT 0 CHECK(carbs_per_100g >= 0),
  protein_per_100g REAL NOT NULL DEFAULT 0 CHECK(protein_per_100g >= 0),
  fat_per_100g REAL NOT NULL DEFAULT 0 CHECK(fat_per_100g >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_foods_category ON foods(category);

CREATE TABLE IF NOT EXISTS meal_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack', 'other')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meal_logs_user_date ON meal_logs(user_id, date);

-- food_id is not a foreign key: portions of a removed food still load and
-- count as 0 kcal.
CREATE TABLE IF NOT EXISTS meal_portions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_id INTEGER NOT NULL,
  food_id INTEGER NOT NULL,
  grams REAL NOT NULL CHECK(grams >= 0),
  FOREIGN KEY(meal_id) REFERENCES meal_logs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meal_portions_meal_id ON meal_portions(meal_id);
`,
	},
	{
		version: 2,
		name:    "body_tracking",
		sql: `
CREATE TABLE IF NOT EXISTS weight_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  time_of_day TEXT,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  body_fat_pct REAL,
  written_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_weight_logs_user_date ON weight_logs(user_id, date);

CREATE TABLE IF NOT EXISTS exercise_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  exercise_type TEXT NOT NULL,
  total_calories REAL CHECK(total_calories IS NULL OR total_calories >= 0),
  duration_min INTEGER CHECK(duration_min IS NULL OR duration_min > 0),
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exercise_logs_user_date ON exercise_logs(user_id, date);
`,
	},
	{
		version: 3,
		name:    "water_logs",
		sql: `
CREATE TABLE IF NOT EXISTS water_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  time_of_day TEXT,
  drink TEXT NOT NULL DEFAULT '',
  amount_ml REAL NOT NULL CHECK(amount_ml > 0),
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_water_logs_user_date ON water_logs(user_id, date);
`,
	},
	{
		version: 4,
		name:    "food_sources",
		sql: `
ALTER TABLE foods ADD COLUMN source TEXT NOT NULL DEFAULT 'manual';
ALTER TABLE foods ADD COLUMN source_ref TEXT NOT NULL DEFAULT '';
`,
	},
	{
		version: 5,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}
