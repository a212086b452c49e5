package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
)

type PortionInput struct {
	FoodID int64
	Grams  float64
}

type MealInput struct {
	UserID   int64
	Date     string
	MealType string
	Portions []PortionInput
}

// RecordsQuery selects a window of a user's logs.
type RecordsQuery struct {
	UserID int64
	Mode   string
	Date   string
	Start  string
	End    string
	// Now anchors rolling week/month windows; zero means the current time.
	Now time.Time
}

// MealRecords holds either the per-slot view of a single day (today mode)
// or the windowed history.
type MealRecords struct {
	Today *energy.DayMeals `json:"today,omitempty"`
	Days  []energy.MealDay `json:"days,omitempty"`
}

// AddMealRecord stores one meal log with its portions. Every referenced food
// must exist; otherwise nothing is written.
func AddMealRecord(db *sql.DB, in MealInput) (int64, error) {
	date, err := dateOrToday(in.Date)
	if err != nil {
		return 0, err
	}
	if len(in.Portions) == 0 {
		return 0, invalidf("at least one portion is required")
	}
	slot := energy.ParseSlot(in.MealType)

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin meal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := requireUser(tx, in.UserID); err != nil {
		return 0, err
	}
	for _, p := range in.Portions {
		if p.Grams <= 0 {
			return 0, invalidf("portion grams must be > 0")
		}
		if _, err := getFood(tx, p.FoodID); err != nil {
			if errors.Is(err, energy.ErrNotFound) {
				return 0, invalidf("food %d does not exist", p.FoodID)
			}
			return 0, err
		}
	}

	res, err := tx.Exec(`INSERT INTO meal_logs(user_id, date, meal_type) VALUES(?, ?, ?)`, in.UserID, date, string(slot))
	if err != nil {
		return 0, fmt.Errorf("add meal log: %w", err)
	}
	mealID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal log id: %w", err)
	}
	for _, p := range in.Portions {
		if _, err := tx.Exec(`INSERT INTO meal_portions(meal_id, food_id, grams) VALUES(?, ?, ?)`, mealID, p.FoodID, p.Grams); err != nil {
			return 0, fmt.Errorf("add meal portion: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit meal log: %w", err)
	}
	return mealID, nil
}

func ListMealRecords(db *sql.DB, q RecordsQuery) (MealRecords, error) {
	if err := requireUser(db, q.UserID); err != nil {
		return MealRecords{}, err
	}
	w, err := energy.NewWindow(q.Mode, q.Date, q.Start, q.End)
	if err != nil {
		return MealRecords{}, err
	}
	if w.Mode == energy.ModeToday && w.Date == "" {
		w.Date = energy.DateOf(time.Now())
	}

	day := ""
	if w.Mode == energy.ModeToday {
		day = w.Date
	}
	logs, err := loadMealLogs(db, q.UserID, day)
	if err != nil {
		return MealRecords{}, err
	}
	foods, err := loadFoodTable(db, logs)
	if err != nil {
		return MealRecords{}, err
	}

	if w.Mode == energy.ModeToday {
		today := energy.MealsBySlot(logs, foods)
		return MealRecords{Today: &today}, nil
	}
	return MealRecords{Days: energy.MealDays(energy.Aggregate(logs, w), foods)}, nil
}

// DeleteMealPortion removes one portion owned by userID. The owning meal log
// is removed too once it has no portions left; the second return value
// reports that.
func DeleteMealPortion(db *sql.DB, userID, portionID int64) (bool, error) {
	if err := validateID("portion id", portionID); err != nil {
		return false, err
	}
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var mealID int64
	err = tx.QueryRow(`
SELECT p.meal_id FROM meal_portions p
JOIN meal_logs m ON m.id = p.meal_id
WHERE p.id = ? AND m.user_id = ?
`, portionID, userID).Scan(&mealID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, notFoundf("meal portion %d", portionID)
	}
	if err != nil {
		return false, fmt.Errorf("lookup meal portion %d: %w", portionID, err)
	}
	if _, err := tx.Exec(`DELETE FROM meal_portions WHERE id = ?`, portionID); err != nil {
		return false, fmt.Errorf("delete meal portion %d: %w", portionID, err)
	}

	var remaining int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM meal_portions WHERE meal_id = ?`, mealID).Scan(&remaining); err != nil {
		return false, fmt.Errorf("count meal portions: %w", err)
	}
	removedLog := false
	if remaining == 0 {
		if _, err := tx.Exec(`DELETE FROM meal_logs WHERE id = ?`, mealID); err != nil {
			return false, fmt.Errorf("delete empty meal log %d: %w", mealID, err)
		}
		removedLog = true
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return removedLog, nil
}

// loadMealLogs returns the meal logs of a user with their portions, ordered
// by date then id. A blank date loads every day.
func loadMealLogs(q queryer, userID int64, date string) ([]model.MealLog, error) {
	query := `
SELECT m.id, m.date, m.meal_type, p.id, p.food_id, p.grams
FROM meal_logs m
LEFT JOIN meal_portions p ON p.meal_id = m.id
WHERE m.user_id = ?`
	args := []any{userID}
	if date != "" {
		query += ` AND m.date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY m.date ASC, m.id ASC, p.id ASC`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.MealLog, 0)
	for rows.Next() {
		var mealID int64
		var mealDate, slot string
		var portionID, foodID sql.NullInt64
		var grams sql.NullFloat64
		if err := rows.Scan(&mealID, &mealDate, &slot, &portionID, &foodID, &grams); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		n := len(logs)
		if n == 0 || logs[n-1].ID != mealID {
			logs = append(logs, model.MealLog{ID: mealID, UserID: userID, Date: mealDate, Slot: model.Slot(slot), Portions: []model.MealPortion{}})
			n++
		}
		if portionID.Valid {
			logs[n-1].Portions = append(logs[n-1].Portions, model.MealPortion{
				ID:     portionID.Int64,
				MealID: mealID,
				FoodID: foodID.Int64,
				Grams:  grams.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	return logs, nil
}

// loadFoodTable resolves the foods referenced by logs. Missing foods are
// left out.
func loadFoodTable(q queryer, logs []model.MealLog) (energy.FoodMap, error) {
	foods := energy.FoodMap{}
	for _, m := range logs {
		for _, p := range m.Portions {
			if _, ok := foods[p.FoodID]; ok {
				continue
			}
			f, err := getFood(q, p.FoodID)
			if errors.Is(err, energy.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			foods[p.FoodID] = f
		}
	}
	return foods, nil
}
