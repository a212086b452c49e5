package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/healthy-cli/internal/model"
)

type ExerciseInput struct {
	UserID        int64
	Date          string
	ExerciseType  string
	TotalCalories float64
	DurationMin   *int
	Notes         string
}

func CreateExerciseLog(db *sql.DB, in ExerciseInput) (int64, error) {
	normalized, err := normalizeExerciseInput(in)
	if err != nil {
		return 0, err
	}
	if err := requireUser(db, normalized.UserID); err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO exercise_logs(user_id, date, exercise_type, total_calories, duration_min, notes)
VALUES(?, ?, ?, ?, ?, ?)
`, normalized.UserID, normalized.Date, normalized.ExerciseType, normalized.TotalCalories, normalized.DurationMin, nullableString(normalized.Notes))
	if err != nil {
		return 0, fmt.Errorf("add exercise log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise log id: %w", err)
	}
	return id, nil
}

// ListExerciseLogs lists a user's exercise for one date, or for every date
// when date is blank.
func ListExerciseLogs(db *sql.DB, userID int64, date string) ([]model.ExerciseRecord, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(date) != "" {
		day, err := dateOrToday(date)
		if err != nil {
			return nil, err
		}
		date = day
	}
	return loadExerciseRecords(db, userID, date)
}

func DeleteExerciseLog(db *sql.DB, userID, id int64) error {
	return deleteOwned(db, "exercise_logs", "exercise log", userID, id)
}

func loadExerciseRecords(q queryer, userID int64, date string) ([]model.ExerciseRecord, error) {
	query := `SELECT id, date, exercise_type, IFNULL(total_calories, 0), duration_min, IFNULL(notes, '') FROM exercise_logs WHERE user_id = ?`
	args := []any{userID}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY date DESC, id ASC`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.ExerciseRecord, 0)
	for rows.Next() {
		item := model.ExerciseRecord{UserID: userID}
		var duration sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Date, &item.ExerciseType, &item.TotalCalories, &duration, &item.Notes); err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		if duration.Valid {
			v := int(duration.Int64)
			item.DurationMin = &v
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise logs: %w", err)
	}
	return items, nil
}

func normalizeExerciseInput(in ExerciseInput) (ExerciseInput, error) {
	in.ExerciseType = strings.ToLower(strings.TrimSpace(in.ExerciseType))
	if in.ExerciseType == "" {
		return ExerciseInput{}, invalidf("exercise type is required")
	}
	if err := validateNonNegativeFloat("total calories", in.TotalCalories); err != nil {
		return ExerciseInput{}, err
	}
	if in.DurationMin != nil && *in.DurationMin <= 0 {
		return ExerciseInput{}, invalidf("duration must be > 0")
	}
	date, err := dateOrToday(in.Date)
	if err != nil {
		return ExerciseInput{}, err
	}
	in.Date = date
	in.Notes = strings.TrimSpace(in.Notes)
	return in, nil
}
