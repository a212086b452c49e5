package healthy

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log weigh-ins and show body metrics",
}

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightTime  string
	weightQuery windowFlags
	infoDate    string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a weigh-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, weightDate)
			if err != nil {
				return err
			}
			id, err := service.AddWeightRecord(sqldb, service.WeightInput{UserID: userID, Weight: weightValue, Unit: weightUnit, Date: date, TimeOfDay: weightTime})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added weight record %d\n", id)
			return nil
		})
	},
}

var weightRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List weigh-ins (week and month reach back from now unless --start/--end are set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			q, err := weightQuery.query(sqldb, userID)
			if err != nil {
				return err
			}
			days, err := service.ListWeightRecords(sqldb, q)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, days)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTIME\tWEIGHT_KG\tBODY_FAT%")
			for _, d := range days {
				for _, r := range d.Records {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f\t%s\n", r.ID, d.Date, r.Time, r.Weight, formatOptional(r.BodyFat, "%.2f"))
				}
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weigh-in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight record id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			if err := service.DeleteWeightRecord(sqldb, userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight record %d\n", id)
			return nil
		})
	},
}

var weightInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show weight, BMI, BMR and body fat",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, infoDate)
			if err != nil {
				return err
			}
			info, err := service.BodyInfo(cmd.Context(), sqldb, userID, date)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", date)
			fmt.Fprintf(out, "Weight: %.1f kg\n", info.WeightKg)
			fmt.Fprintf(out, "Height: %.1f cm\n", info.HeightCm)
			fmt.Fprintf(out, "BMI: %.1f\n", info.BMI)
			fmt.Fprintf(out, "BMR: %.0f kcal\n", info.BMR)
			fmt.Fprintf(out, "Body fat: %s\n", formatOptional(info.BodyFatPct, "%.2f%%"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightRecordsCmd, weightDeleteCmd, weightInfoCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Weight value")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg or lb")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().StringVar(&weightTime, "time", "", "Time HH:MM")
	_ = weightAddCmd.MarkFlagRequired("weight")

	addWindowFlags(weightRecordsCmd, &weightQuery)
	weightInfoCmd.Flags().StringVar(&infoDate, "date", "", "Date YYYY-MM-DD (default today)")
}
