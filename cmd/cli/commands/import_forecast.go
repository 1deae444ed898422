package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benwarner/staffplan/pkg/clients/sheetsclient"
	"github.com/benwarner/staffplan/pkg/core/services"
)

// ImportForecastCmd creates the importForecast command
func ImportForecastCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importForecast",
		Short: "Import forecast lines and the roster from the configured spreadsheet",
		Long:  "Pull the demand forecast and worker roster from Google Sheets and store them against the latest planning run",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The sheets client runs an OAuth flow on first use, so it is
			// only built for commands that read the spreadsheet
			client, err := sheetsclient.NewClient(app.Ctx, app.OAuthCfg)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			result, err := services.ImportForecast(app.Ctx, app.Database, client, app.Cfg, app.Logger)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Printf("\n✓ Import completed!\n\n")
			fmt.Printf("Run ID:         %s\n", result.RunID)
			fmt.Printf("Forecast Lines: %d\n", result.ForecastLines)
			fmt.Printf("Workers:        %d\n", result.Workers)
			if result.SkippedLines > 0 {
				fmt.Printf("Skipped Lines:  %d (unknown platform)\n", result.SkippedLines)
			}
			fmt.Println()

			return nil
		},
	}
}
