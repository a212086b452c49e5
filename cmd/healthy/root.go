package healthy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	userFlag   int64
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "healthy",
	Short: "healthy tracks meals, weight, water and exercise from your terminal",
	Long: "healthy is a local-first nutrition and body-metrics tracker. It logs meals against a food table, " +
		"weigh-ins, water and exercise, and reports the remaining calorie budget of a day.",
	SilenceUsage: true,
}

func Execute() {
	if err := loadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnv reads defaults from an optional dotenv file. Variables already set
// in the environment win.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default $HEALTHY_DB or the user config dir)")
	rootCmd.PersistentFlags().Int64Var(&userFlag, "user", 0, "Acting user id (default $HEALTHY_USER or config default_user)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")
}
