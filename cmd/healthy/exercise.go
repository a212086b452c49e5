package healthy

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise",
}

var (
	exerciseType     string
	exerciseCalories float64
	exerciseDuration int
	exerciseDate     string
	exerciseNotes    string
	exerciseListDate string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise session",
	RunE: func(cmd *cobra.Command, args []string) error {
		var duration *int
		if cmd.Flags().Changed("duration") {
			duration = &exerciseDuration
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, exerciseDate)
			if err != nil {
				return err
			}
			id, err := service.CreateExerciseLog(sqldb, service.ExerciseInput{
				UserID:        userID,
				Date:          date,
				ExerciseType:  exerciseType,
				TotalCalories: exerciseCalories,
				DurationMin:   duration,
				Notes:         exerciseNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise log %d\n", id)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercise sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			items, err := service.ListExerciseLogs(sqldb, userID, exerciseListDate)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tKCAL\tDURATION_MIN\tNOTES")
			for _, it := range items {
				duration := "-"
				if it.DurationMin != nil {
					duration = fmt.Sprintf("%d", *it.DurationMin)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%s\t%s\n", it.ID, it.Date, it.ExerciseType, it.TotalCalories, duration, strings.ReplaceAll(it.Notes, "\t", " "))
			}
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			if err := service.DeleteExerciseLog(sqldb, userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise log %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseType, "type", "", "Exercise type (e.g. running)")
	exerciseAddCmd.Flags().Float64Var(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "Duration in minutes")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Notes")
	_ = exerciseAddCmd.MarkFlagRequired("type")

	exerciseListCmd.Flags().StringVar(&exerciseListDate, "date", "", "Date YYYY-MM-DD (default all dates)")
}
