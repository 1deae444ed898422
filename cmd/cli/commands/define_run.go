package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benwarner/staffplan/pkg/core/services"
)

// DefineRunCmd creates the defineRun command
func DefineRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineRun [period_count]",
		Short: "Define a new planning run covering the given number of monthly periods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodCount := app.Cfg.DefaultPeriodCount
			if len(args) == 1 {
				var err error
				periodCount, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("period_count must be a number: %w", err)
				}
			}

			result, err := services.DefineRun(app.Ctx, app.Database, app.Logger, periodCount)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Planning run created successfully!\n\n")
			fmt.Printf("Run ID:     %s\n", result.Run.ID)
			fmt.Printf("Start Date: %s\n\n", result.Run.Start)

			fmt.Printf("Periods:\n")
			for i, period := range result.Run.Periods {
				fmt.Printf("  %2d. %s\n", i+1, period)
			}
			fmt.Println()

			return nil
		},
	}
}
