package service

import (
	"database/sql"
	"fmt"
)

type DoctorReport struct {
	UnresolvedPortions int `json:"unresolved_portions"`
	EmptyMealLogs      int `json:"empty_meal_logs"`
	OrphanRows         int `json:"orphan_rows"`
	RemovedMealLogs    int `json:"removed_meal_logs,omitempty"`
	RemovedOrphanRows  int `json:"removed_orphan_rows,omitempty"`
}

// userOwnedTables hold rows keyed on users(id).
var userOwnedTables = []string{"meal_logs", "weight_logs", "water_logs", "exercise_logs"}

// RunDoctor reports portions whose food is gone, meal logs without portions
// and rows of unknown users. With fix the last two are removed.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRow(`SELECT COUNT(1) FROM meal_portions p LEFT JOIN foods f ON f.id = p.food_id WHERE f.id IS NULL`).Scan(&report.UnresolvedPortions); err != nil {
		return report, fmt.Errorf("doctor unresolved food check: %w", err)
	}
	if err := db.QueryRow(`SELECT COUNT(1) FROM meal_logs m WHERE NOT EXISTS (SELECT 1 FROM meal_portions p WHERE p.meal_id = m.id)`).Scan(&report.EmptyMealLogs); err != nil {
		return report, fmt.Errorf("doctor empty meal check: %w", err)
	}
	for _, table := range userOwnedTables {
		var n int
		if err := db.QueryRow(`SELECT COUNT(1) FROM ` + table + ` t LEFT JOIN users u ON u.id = t.user_id WHERE u.id IS NULL`).Scan(&n); err != nil {
			return report, fmt.Errorf("doctor orphan check %s: %w", table, err)
		}
		report.OrphanRows += n
	}
	if !fix || (report.EmptyMealLogs == 0 && report.OrphanRows == 0) {
		return report, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	for _, table := range userOwnedTables {
		res, err := tx.Exec(`DELETE FROM ` + table + ` WHERE user_id NOT IN (SELECT id FROM users)`)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix orphans %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		report.RemovedOrphanRows += int(n)
	}
	res, err := tx.Exec(`DELETE FROM meal_logs WHERE NOT EXISTS (SELECT 1 FROM meal_portions p WHERE p.meal_id = meal_logs.id)`)
	if err != nil {
		_ = tx.Rollback()
		return report, fmt.Errorf("doctor fix empty meals: %w", err)
	}
	n, _ := res.RowsAffected()
	report.RemovedMealLogs = int(n)
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}
