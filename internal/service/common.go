package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/energy"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", energy.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), energy.ErrNotFound)
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return invalidf("%s must be > 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func nullableString(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}

// dateOrToday parses value as a calendar date, defaulting to the current
// local date when blank.
func dateOrToday(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return energy.DateOf(time.Now()), nil
	}
	return energy.ParseDate(value)
}

func requireUser(q queryer, userID int64) error {
	if err := validateID("user id", userID); err != nil {
		return err
	}
	var exists int
	err := q.QueryRow(`SELECT 1 FROM users WHERE id = ?`, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf("user %d", userID)
	}
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", userID, err)
	}
	return nil
}

func deleteOwned(db *sql.DB, table, label string, userID, id int64) error {
	if err := validateID(label+" id", id); err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM `+table+` WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", label, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return notFoundf("%s %d", label, id)
	}
	return nil
}

func parseStoredTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
