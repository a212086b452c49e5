package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
)

const poundsToKg = 0.45359237

type WeightInput struct {
	UserID    int64
	Weight    float64
	Unit      string
	Date      string
	TimeOfDay string
}

// WeightRow is the displayed form of a weight record.
type WeightRow struct {
	ID      int64    `json:"id"`
	Date    string   `json:"date"`
	Time    string   `json:"time"`
	Weight  float64  `json:"weight"`
	BodyFat *float64 `json:"body_fat"`
}

type WeightDay struct {
	Date    string      `json:"date"`
	Records []WeightRow `json:"records"`
}

// AddWeightRecord stores a weigh-in. Body fat is derived from the user's
// profile at the time of writing and left empty when the height is unknown.
func AddWeightRecord(db *sql.DB, in WeightInput) (int64, error) {
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return 0, err
	}
	date, err := dateOrToday(in.Date)
	if err != nil {
		return 0, err
	}
	clock, err := energy.ParseClock(in.TimeOfDay)
	if err != nil {
		return 0, err
	}
	user, err := GetUser(db, in.UserID)
	if err != nil {
		return 0, err
	}
	bodyFat := energy.ResolveProfile(user).BodyFat(weightKg)

	res, err := db.Exec(`
INSERT INTO weight_logs(user_id, date, time_of_day, weight_kg, body_fat_pct, written_at)
VALUES(?, ?, ?, ?, ?, ?)
`, in.UserID, date, nullableString(clock), weightKg, bodyFat, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("add weight record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve weight record id: %w", err)
	}
	return id, nil
}

// ListWeightRecords returns weigh-ins grouped per day. Both bounds win over
// the mode; week and month otherwise reach back from q.Now.
func ListWeightRecords(db *sql.DB, q RecordsQuery) ([]WeightDay, error) {
	if err := requireUser(db, q.UserID); err != nil {
		return nil, err
	}
	w, err := energy.NewWindow(q.Mode, q.Date, q.Start, q.End)
	if err != nil {
		return nil, err
	}
	w.Rolling = true
	w.Now = q.Now

	records, err := loadWeightRecords(db, q.UserID, "")
	if err != nil {
		return nil, err
	}
	groups := energy.Aggregate(records, w)
	out := make([]WeightDay, 0, len(groups))
	for _, g := range groups {
		day := WeightDay{Date: g.Date, Records: make([]WeightRow, 0, len(g.Records))}
		for _, r := range g.Records {
			day.Records = append(day.Records, toWeightRow(r))
		}
		out = append(out, day)
	}
	return out, nil
}

func DeleteWeightRecord(db *sql.DB, userID, id int64) error {
	return deleteOwned(db, "weight_logs", "weight record", userID, id)
}

// BodyInfo reports the body metrics of date, which defaults to today.
func BodyInfo(ctx context.Context, db *sql.DB, userID int64, date string) (energy.BodyInfo, error) {
	day, err := dateOrToday(date)
	if err != nil {
		return energy.BodyInfo{}, err
	}
	return energy.DailyBodyInfo(ctx, NewStore(db), userID, day)
}

func toWeightRow(r model.WeightRecord) WeightRow {
	row := WeightRow{ID: r.ID, Date: r.Date, Time: "--", Weight: r.WeightKg, BodyFat: r.BodyFatPct}
	if t, err := time.Parse(energy.DateLayout, r.Date); err == nil {
		row.Date = t.Format("01.02")
	}
	if r.TimeOfDay != "" {
		row.Time = r.TimeOfDay
	}
	return row
}

func loadWeightRecords(q queryer, userID int64, date string) ([]model.WeightRecord, error) {
	query := `SELECT id, date, IFNULL(time_of_day, ''), weight_kg, body_fat_pct, written_at FROM weight_logs WHERE user_id = ?`
	args := []any{userID}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightRecord, 0)
	for rows.Next() {
		r := model.WeightRecord{UserID: userID}
		var bodyFat sql.NullFloat64
		var writtenRaw string
		if err := rows.Scan(&r.ID, &r.Date, &r.TimeOfDay, &r.WeightKg, &bodyFat, &writtenRaw); err != nil {
			return nil, fmt.Errorf("scan weight record: %w", err)
		}
		r.BodyFatPct = floatOrNil(bodyFat)
		r.WrittenAt = parseStoredTime(writtenRaw)
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight records: %w", err)
	}
	return items, nil
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, invalidf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * poundsToKg, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / poundsToKg, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}
