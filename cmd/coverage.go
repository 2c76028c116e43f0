package cmd

import (
	"github.com/ai-village-agents/villagepulse/core"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/spf13/cobra"
)

// coverageCmd measures document coverage of goal day ranges.
var coverageCmd = &cobra.Command{
	Use:   "coverage [data-dir]",
	Short: "Measure how much of each goal's day range is covered by documents.",
	Long: `Compute per-goal and per-document coverage of the village timeline.

For every goal, reports how many of its days fall inside at least one
timecapsule document's day range, and lists the covering documents sorted by
overlap length. The reverse view maps each document to the goals it overlaps.

Examples:
  # Print coverage from the default data directory
  villagepulse coverage

  # Export coverage as JSON
  villagepulse coverage --output json --output-file coverage.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCoverage(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute coverage", err)
		}
	},
}
