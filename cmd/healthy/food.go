package healthy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food reference table",
}

var (
	foodName     string
	foodCategory string
	foodKcal     float64
	foodCarbs    float64
	foodProtein  float64
	foodFat      float64
	searchLimit  int
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food with its values per 100 g",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.FoodInput{
			Name:            foodName,
			Category:        foodCategory,
			CaloriesPer100g: foodKcal,
			CarbsPer100g:    foodCarbs,
			ProteinPer100g:  foodProtein,
			FatPer100g:      foodFat,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddFood(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d\n", id)
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.SearchFoods(sqldb, args[0], searchLimit)
			if err != nil {
				return err
			}
			return printFoods(cmd, items)
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods of a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListFoodsByCategory(sqldb, foodCategory)
			if err != nil {
				return err
			}
			return printFoods(cmd, items)
		})
	},
}

var (
	importBarcode string
	importQuery   string
	importBaseURL string
	importLimit   int
)

var foodImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import foods from Open Food Facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &openfoodfacts.Client{BaseURL: importBaseURL}
		return withDB(func(sqldb *sql.DB) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			items, err := service.ImportFoods(ctx, sqldb, client, importBarcode, importQuery, importLimit)
			if err != nil {
				return err
			}
			return printFoods(cmd, items)
		})
	},
}

func printFoods(cmd *cobra.Command, items []model.FoodReference) error {
	if jsonOutput {
		return printJSON(cmd, items)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tKCAL/100G\tCARBS\tPROTEIN\tFAT\tSOURCE")
	for _, f := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n", f.ID, f.Name, f.Category, f.CaloriesPer100g, f.CarbsPer100g, f.ProteinPer100g, f.FatPer100g, f.Source)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodSearchCmd, foodListCmd, foodImportCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().StringVar(&foodCategory, "category", "", "Category")
	foodAddCmd.Flags().Float64Var(&foodKcal, "kcal", 0, "Calories per 100 g")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs per 100 g")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein per 100 g")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat per 100 g")
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("kcal")

	foodSearchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Max results")
	foodListCmd.Flags().StringVar(&foodCategory, "category", "", "Category")
	_ = foodListCmd.MarkFlagRequired("category")

	foodImportCmd.Flags().StringVar(&importBarcode, "barcode", "", "Product barcode")
	foodImportCmd.Flags().StringVar(&importQuery, "query", "", "Search terms (used when --barcode is empty)")
	foodImportCmd.Flags().IntVar(&importLimit, "limit", 10, "Max products to import for a search")
	foodImportCmd.Flags().StringVar(&importBaseURL, "base-url", "", "Override the Open Food Facts base URL")
	_ = foodImportCmd.Flags().MarkHidden("base-url")
}
