package healthy

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log drinks and list water records",
}

var (
	waterAmount float64
	waterDrink  string
	waterDate   string
	waterTime   string
	waterQuery  windowFlags
)

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a drink",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, waterDate)
			if err != nil {
				return err
			}
			id, err := service.AddWaterRecord(sqldb, service.WaterInput{UserID: userID, Date: date, TimeOfDay: waterTime, Drink: waterDrink, AmountMl: waterAmount})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added water record %d\n", id)
			return nil
		})
	},
}

var waterRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List water records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			q, err := waterQuery.query(sqldb, userID)
			if err != nil {
				return err
			}
			groups, err := service.ListWaterRecords(sqldb, q)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, groups)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTIME\tDRINK\tML")
			for _, g := range groups {
				for _, r := range g.Records {
					clock := r.TimeOfDay
					if clock == "" {
						clock = "--"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%.0f\n", r.ID, g.Date, clock, r.Drink, r.AmountMl)
				}
			}
			return nil
		})
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a water record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("water record id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			if err := service.DeleteWaterRecord(sqldb, userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted water record %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterRecordsCmd, waterDeleteCmd)

	waterAddCmd.Flags().Float64Var(&waterAmount, "amount", 0, "Amount in ml")
	waterAddCmd.Flags().StringVar(&waterDrink, "drink", "water", "Drink type")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	waterAddCmd.Flags().StringVar(&waterTime, "time", "", "Time HH:MM")
	_ = waterAddCmd.MarkFlagRequired("amount")

	addWindowFlags(waterRecordsCmd, &waterQuery)
}
