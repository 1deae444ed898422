package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benwarner/staffplan/pkg/core/services"
)

// ViewReportsCmd creates the viewReports command
func ViewReportsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewReports",
		Short: "View the allocation outcome of the latest planning run",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.ViewReports(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			const (
				colorReset = "\033[0m"
				colorGreen = "\033[32m"
				colorRed   = "\033[31m"
				colorBold  = "\033[1m"
			)

			fmt.Printf("\n📊 Allocation Report\n\n")
			fmt.Printf("Run ID:  %s\n", view.RunID)
			fmt.Printf("Periods: %s\n", strings.Join(view.Periods, ", "))
			fmt.Printf("Lines:   %d (%s%d fulfilled%s, %s%d short%s)\n\n",
				view.Lines,
				colorGreen, view.Fulfilled, colorReset,
				colorRed, len(view.Unmet), colorReset)

			if len(view.Phases) > 0 {
				fmt.Printf("%sPhase           Requested  Allocated  Shortage%s\n", colorBold, colorReset)
				fmt.Printf("--------------  ---------  ---------  --------\n")
				for _, phase := range view.Phases {
					fmt.Printf("%-14s  %9d  %9d  %8d\n",
						phase.Phase, phase.Requested, phase.Allocated, phase.Shortage)
				}
				fmt.Println()
			}

			if len(view.Unmet) > 0 {
				fmt.Printf("⚠️  Lines Still Short (worst first):\n")
				for _, line := range view.Unmet {
					fmt.Printf("  • %s %s/%s %q in %s: %d of %d\n",
						line.ID, line.Platform, line.State, line.Skill, line.Period,
						line.Allocated, line.Required)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
