package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
)

type WaterInput struct {
	UserID    int64
	Date      string
	TimeOfDay string
	Drink     string
	AmountMl  float64
}

func AddWaterRecord(db *sql.DB, in WaterInput) (int64, error) {
	if in.AmountMl <= 0 {
		return 0, invalidf("amount must be > 0")
	}
	date, err := dateOrToday(in.Date)
	if err != nil {
		return 0, err
	}
	clock, err := energy.ParseClock(in.TimeOfDay)
	if err != nil {
		return 0, err
	}
	if err := requireUser(db, in.UserID); err != nil {
		return 0, err
	}
	drink := strings.TrimSpace(in.Drink)
	if drink == "" {
		drink = "water"
	}
	res, err := db.Exec(`
INSERT INTO water_logs(user_id, date, time_of_day, drink, amount_ml)
VALUES(?, ?, ?, ?, ?)
`, in.UserID, date, nullableString(clock), drink, in.AmountMl)
	if err != nil {
		return 0, fmt.Errorf("add water record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve water record id: %w", err)
	}
	return id, nil
}

func ListWaterRecords(db *sql.DB, q RecordsQuery) ([]energy.DayGroup[model.WaterRecord], error) {
	if err := requireUser(db, q.UserID); err != nil {
		return nil, err
	}
	w, err := energy.NewWindow(q.Mode, q.Date, q.Start, q.End)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT id, date, IFNULL(time_of_day, ''), drink, amount_ml
FROM water_logs WHERE user_id = ?
ORDER BY date ASC, id ASC
`, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("list water records: %w", err)
	}
	defer rows.Close()

	items := make([]model.WaterRecord, 0)
	for rows.Next() {
		r := model.WaterRecord{UserID: q.UserID}
		if err := rows.Scan(&r.ID, &r.Date, &r.TimeOfDay, &r.Drink, &r.AmountMl); err != nil {
			return nil, fmt.Errorf("scan water record: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water records: %w", err)
	}
	return energy.Aggregate(items, w), nil
}

func DeleteWaterRecord(db *sql.DB, userID, id int64) error {
	return deleteOwned(db, "water_logs", "water record", userID, id)
}
