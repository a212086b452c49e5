package healthy

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log meals and list meal records",
}

var (
	mealType  string
	mealDate  string
	mealItems []string
	mealQuery windowFlags
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal as food:grams portions",
	Example: `  healthy meal add --type breakfast --item 3:40 --item 7:120
  healthy meal add --type 午餐 --date 2025-10-25 --item 12:250`,
	RunE: func(cmd *cobra.Command, args []string) error {
		portions, err := parsePortions(mealItems)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			date, err := resolveDate(sqldb, mealDate)
			if err != nil {
				return err
			}
			id, err := service.AddMealRecord(sqldb, service.MealInput{UserID: userID, Date: date, MealType: mealType, Portions: portions})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s meal %d on %s\n", energy.ParseSlot(mealType), id, date)
			return nil
		})
	},
}

var mealRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List meal records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			q, err := mealQuery.query(sqldb, userID)
			if err != nil {
				return err
			}
			records, err := service.ListMealRecords(sqldb, q)
			if err != nil {
				return err
			}
			if jsonOutput {
				if records.Today != nil {
					return printJSON(cmd, records.Today)
				}
				return printJSON(cmd, records.Days)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tTYPE\tID\tFOOD\tGRAMS\tKCAL")
			if records.Today != nil {
				lines := map[model.Slot][]energy.PortionLine{
					model.SlotBreakfast: records.Today.Breakfast,
					model.SlotLunch:     records.Today.Lunch,
					model.SlotDinner:    records.Today.Dinner,
					model.SlotSnack:     records.Today.Snack,
				}
				for _, slot := range model.DaySlots {
					printPortionLines(cmd, q.Date, slot, lines[slot])
				}
				return nil
			}
			for _, day := range records.Days {
				for _, m := range day.Meals {
					printPortionLines(cmd, day.Date, m.Type, m.Items)
				}
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <portion-id>",
	Short: "Delete a meal portion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("portion id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			userID, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			removedLog, err := service.DeleteMealPortion(sqldb, userID, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal portion %d\n", id)
			if removedLog {
				fmt.Fprintln(cmd.OutOrStdout(), "Removed the now empty meal")
			}
			return nil
		})
	},
}

func printPortionLines(cmd *cobra.Command, date string, slot model.Slot, lines []energy.PortionLine) {
	for _, l := range lines {
		name := l.Name
		if name == "" {
			name = "(unknown food)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%.1f\t%.2f\n", date, slot, l.ID, name, l.Amount, l.Calorie)
	}
}

// parsePortions reads food:grams pairs.
func parsePortions(items []string) ([]service.PortionInput, error) {
	out := make([]service.PortionInput, 0, len(items))
	for _, item := range items {
		foodRaw, gramsRaw, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --item %q (expected food-id:grams)", item)
		}
		foodID, err := parseInt64Arg("food id", foodRaw)
		if err != nil {
			return nil, err
		}
		grams, err := strconv.ParseFloat(strings.TrimSpace(gramsRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid grams in --item %q", item)
		}
		out = append(out, service.PortionInput{FoodID: foodID, Grams: grams})
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealRecordsCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type: breakfast, lunch, dinner, snack (others are stored as other)")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Portion as food-id:grams (repeatable)")
	_ = mealAddCmd.MarkFlagRequired("type")
	_ = mealAddCmd.MarkFlagRequired("item")

	addWindowFlags(mealRecordsCmd, &mealQuery)
}
