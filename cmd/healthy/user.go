package healthy

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user profiles",
}

var (
	userName   string
	userAge    int
	userGender string
	userHeight float64
	userWeight float64
	userTarget float64
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := userInputFromFlags(cmd)
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateUser(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %d (%s)\n", id, in.Username)
			return nil
		})
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the acting user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := userInputFromFlags(cmd)
		return withDB(func(sqldb *sql.DB) error {
			id, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			if err := service.UpdateUser(sqldb, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d\n", id)
			return nil
		})
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the acting user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := resolveUserID(sqldb)
			if err != nil {
				return err
			}
			u, err := service.GetUser(sqldb, id)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd, u)
			}
			printUser(cmd, u)
			return nil
		})
	},
}

func printUser(cmd *cobra.Command, u model.UserProfile) {
	age := "-"
	if u.Age != nil {
		age = fmt.Sprintf("%d", *u.Age)
	}
	gender := u.Gender
	if gender == "" {
		gender = "-"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID: %d\n", u.ID)
	fmt.Fprintf(out, "Username: %s\n", u.Username)
	fmt.Fprintf(out, "Age: %s\n", age)
	fmt.Fprintf(out, "Gender: %s\n", gender)
	fmt.Fprintf(out, "Height: %s cm\n", formatOptional(u.HeightCm, "%.1f"))
	fmt.Fprintf(out, "Initial weight: %s kg\n", formatOptional(u.InitialWeightKg, "%.1f"))
	fmt.Fprintf(out, "Target weight: %s kg\n", formatOptional(u.TargetWeightKg, "%.1f"))
}

// userInputFromFlags only sets the fields whose flags were passed.
func userInputFromFlags(cmd *cobra.Command) service.UserInput {
	in := service.UserInput{Username: userName, Gender: userGender}
	if cmd.Flags().Changed("age") {
		v := userAge
		in.Age = &v
	}
	if cmd.Flags().Changed("height") {
		v := userHeight
		in.HeightCm = &v
	}
	if cmd.Flags().Changed("weight") {
		v := userWeight
		in.InitialWeightKg = &v
	}
	if cmd.Flags().Changed("target") {
		v := userTarget
		in.TargetWeightKg = &v
	}
	return in
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd, userUpdateCmd, userShowCmd)

	for _, c := range []*cobra.Command{userAddCmd, userUpdateCmd} {
		c.Flags().StringVar(&userName, "username", "", "Username")
		c.Flags().IntVar(&userAge, "age", 0, "Age in years")
		c.Flags().StringVar(&userGender, "gender", "", "Gender (M or F)")
		c.Flags().Float64Var(&userHeight, "height", 0, "Height in cm")
		c.Flags().Float64Var(&userWeight, "weight", 0, "Initial weight in kg")
		c.Flags().Float64Var(&userTarget, "target", 0, "Target weight in kg")
	}
	_ = userAddCmd.MarkFlagRequired("username")
}
