package healthy

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's calorie budget and intake per meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, todayDate)
			if err != nil {
				return err
			}
			s, err := service.DailyCalorie(cmd.Context(), sqldb, userID, date)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", s.Date)
			fmt.Fprintf(out, "TDEE: %.0f kcal (exercise %.0f kcal)\n", s.TDEE, s.ExerciseKcal)
			fmt.Fprintf(out, "Breakfast: %.0f kcal\n", s.BreakfastKcal)
			fmt.Fprintf(out, "Lunch: %.0f kcal\n", s.LunchKcal)
			fmt.Fprintf(out, "Dinner: %.0f kcal\n", s.DinnerKcal)
			fmt.Fprintf(out, "Snack: %.0f kcal\n", s.SnackKcal)
			fmt.Fprintf(out, "Remaining: %.0f kcal\n", s.RemainCalorie)
			if s.NetCalorie < 0 {
				fmt.Fprintf(out, "Surplus: %.0f kcal\n", -s.NetCalorie)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
