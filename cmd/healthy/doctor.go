package healthy

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			if jsonOutput {
				if err := printJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Portions with unknown food: %d\n", report.UnresolvedPortions)
				fmt.Fprintf(cmd.OutOrStdout(), "Empty meal logs: %d\n", report.EmptyMealLogs)
				fmt.Fprintf(cmd.OutOrStdout(), "Rows of unknown users: %d\n", report.OrphanRows)
				if doctorFix {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed meal logs: %d\n", report.RemovedMealLogs)
					fmt.Fprintf(cmd.OutOrStdout(), "Removed orphan rows: %d\n", report.RemovedOrphanRows)
				}
			}
			if doctorFix {
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			// unknown foods are reported but never fatal; they count as 0 kcal
			if report.EmptyMealLogs > 0 || report.OrphanRows > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove empty meal logs and rows of unknown users")
}
