package service

import (
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	ConfigDefaultUser = "default_user"
	ConfigTimezone    = "timezone"
)

// KnownConfigKeys lists the keys SetConfig accepts.
var KnownConfigKeys = []string{ConfigDefaultUser, ConfigTimezone}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return invalidf("config key is required")
	}
	value = strings.TrimSpace(value)
	if err := validateConfigValue(key, value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, invalidf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// DefaultUserID returns the configured default user, or 0 when unset.
func DefaultUserID(db *sql.DB) (int64, error) {
	value, ok, err := GetConfig(db, ConfigDefaultUser)
	if err != nil || !ok {
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s=%q is not a user id", ConfigDefaultUser, value)
	}
	return id, nil
}

// Location returns the configured timezone, falling back to time.Local.
func Location(db *sql.DB) (*time.Location, error) {
	value, ok, err := GetConfig(db, ConfigTimezone)
	if err != nil {
		return nil, err
	}
	if !ok || value == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("config %s=%q: %w", ConfigTimezone, value, err)
	}
	return loc, nil
}

func validateConfigValue(key, value string) error {
	if !slices.Contains(KnownConfigKeys, key) {
		return invalidf("unknown config key %q (known: %s)", key, strings.Join(KnownConfigKeys, ", "))
	}
	switch key {
	case ConfigDefaultUser:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return invalidf("%s must be a positive user id", key)
		}
	case ConfigTimezone:
		if _, err := time.LoadLocation(value); err != nil {
			return invalidf("unknown timezone %q", value)
		}
	}
	return nil
}
