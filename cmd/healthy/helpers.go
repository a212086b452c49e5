package healthy

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/app"
	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// resolveUserID picks the acting user from --user, then $HEALTHY_USER, then
// the default_user config key.
func resolveUserID(sqldb *sql.DB) (int64, error) {
	if userFlag > 0 {
		return userFlag, nil
	}
	if raw := strings.TrimSpace(os.Getenv(app.EnvUser)); raw != "" {
		return parseInt64Arg(app.EnvUser, raw)
	}
	id, err := service.DefaultUserID(sqldb)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("no user selected; pass --user, set %s or run `healthy config set --default-user`", app.EnvUser)
	}
	return id, nil
}

// resolveDate returns value, or today's date in the configured timezone when
// value is blank.
func resolveDate(sqldb *sql.DB, value string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return energy.ParseDate(value)
	}
	loc, err := service.Location(sqldb)
	if err != nil {
		return "", err
	}
	return energy.DateOf(time.Now().In(loc)), nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

// addWindowFlags registers the flags shared by the records commands.
func addWindowFlags(cmd *cobra.Command, q *windowFlags) {
	cmd.Flags().StringVar(&q.mode, "mode", "all", "Window: today, week, month or all")
	cmd.Flags().StringVar(&q.date, "date", "", "Reference date YYYY-MM-DD for today mode (default today)")
	cmd.Flags().StringVar(&q.start, "start", "", "Start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&q.end, "end", "", "End date YYYY-MM-DD (inclusive)")
}

type windowFlags struct {
	mode, date, start, end string
}

func (f windowFlags) query(sqldb *sql.DB, userID int64) (service.RecordsQuery, error) {
	q := service.RecordsQuery{UserID: userID, Mode: f.mode, Date: f.date, Start: f.start, End: f.end}
	loc, err := service.Location(sqldb)
	if err != nil {
		return q, err
	}
	q.Now = time.Now().In(loc)
	if strings.EqualFold(strings.TrimSpace(f.mode), string(energy.ModeToday)) && strings.TrimSpace(f.date) == "" {
		q.Date = energy.DateOf(q.Now)
	}
	return q, nil
}
