package service

import (
	"context"
	"database/sql"

	"github.com/saadjs/healthy-cli/internal/energy"
)

// DailyCalorie summarizes the energy balance of one user's day. A blank
// date means today.
func DailyCalorie(ctx context.Context, db *sql.DB, userID int64, date string) (energy.Summary, error) {
	day, err := dateOrToday(date)
	if err != nil {
		return energy.Summary{}, err
	}
	return energy.DailyEnergySummary(ctx, NewStore(db), userID, day)
}
