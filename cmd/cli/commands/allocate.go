package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/core/services"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate workers to the latest run's forecast",
		Long:  "Run the allocation pipeline: primary bucket matching, gap-filling from the bench, then proportional distribution of any surplus",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("allocate command", zap.Bool("dry_run", dryRun))

			result, err := services.RunAllocation(app.Ctx, app.Database, app.Logger, dryRun)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			const (
				colorReset  = "\033[0m"
				colorGreen  = "\033[32m"
				colorYellow = "\033[33m"
				colorBold   = "\033[1m"
			)

			fmt.Printf("\n🎯 Allocation Results\n\n")
			fmt.Printf("Run ID:  %s\n", result.RunID)
			fmt.Printf("Periods: %s\n", strings.Join(result.Periods, ", "))
			fmt.Printf("Demand:  %d lines\n", result.RowCount)
			fmt.Printf("Roster:  %d worker-periods\n", result.WorkerCount)
			if dryRun {
				fmt.Printf("Mode:    🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Mode:    ✅ saved to database\n")
			}
			fmt.Println()

			// Headcount summary
			s := result.Summary
			fmt.Printf("%sHeadcount            Initial  Allocated  Remaining%s\n", colorBold, colorReset)
			fmt.Printf("-------------------  -------  ---------  ---------\n")
			fmt.Printf("%-19s  %7d  %9d  %9d\n", "Single-skill", s.SingleSkill.Initial, s.SingleSkill.Allocated, s.SingleSkill.Remaining)
			fmt.Printf("%-19s  %7d  %9d  %9d\n", "Multi-skill", s.MultiSkill.Initial, s.MultiSkill.Allocated, s.MultiSkill.Remaining)
			fmt.Printf("%-19s  %7d  %9d  %9d\n", "Total", s.TotalInitial, s.TotalAllocated, s.TotalRemaining)
			fmt.Println()

			// Unmet demand
			if len(result.UnmetDemand) > 0 {
				fmt.Printf("⚠️  Unmet Demand (%d):\n", len(result.UnmetDemand))
				for _, unmet := range result.UnmetDemand {
					fmt.Printf("  • %s %s/%s %q in %s: %s%d short%s (%d of %d)\n",
						unmet.DemandID,
						unmet.Platform,
						unmet.State,
						unmet.Skill,
						unmet.Period,
						colorYellow, unmet.Shortage, colorReset,
						unmet.Allocated, unmet.Required)
				}
				fmt.Println()
			} else {
				fmt.Printf("%s✅ All demand fulfilled%s\n\n", colorGreen, colorReset)
			}

			// Leftover capacity relevant to the forecast
			if len(result.Unutilized) > 0 {
				fmt.Printf("ℹ️  Unutilized Capacity (%d buckets):\n", len(result.Unutilized))
				for _, bucket := range result.Unutilized {
					fmt.Printf("  • %s: %d remaining\n", bucket.Key, bucket.Remaining)
				}
				fmt.Println()
			}

			// Proportional shares that found no compatible worker
			if len(result.UnmetAllotments) > 0 {
				fmt.Printf("ℹ️  Returned Allotments (%d):\n", len(result.UnmetAllotments))
				fmt.Println("  (Proportional shares with no state-compatible worker left)")
				for _, unmet := range result.UnmetAllotments {
					fmt.Printf("  • %s: %d unit(s) returned to the bench\n", unmet.DemandID, unmet.Units)
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save results.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}
