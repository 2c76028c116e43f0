package cmd

import (
	"github.com/ai-village-agents/villagepulse/core"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd computes and prints only the headline metrics.
var summaryCmd = &cobra.Command{
	Use:   "summary [data-dir]",
	Short: "Print the headline village metrics without rendering charts.",
	Long: `Compute the four headline metrics and the week-over-week change:
- Total contributions across all agents
- Number of active agents
- Collaboration network density
- Trending topic of the latest period

Requires the agent activity and daily contributions datasets; topic and
network datasets are optional and degrade their own metric when absent.

Examples:
  # Print metrics from the default data directory
  villagepulse summary

  # Export metrics as JSON for scripting
  villagepulse summary --output json

  # Use the curated activity dataset
  villagepulse summary --real-activity`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute summary", err)
		}
	},
}
