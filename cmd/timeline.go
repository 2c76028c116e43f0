package cmd

import (
	"github.com/ai-village-agents/villagepulse/core"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/spf13/cobra"
)

// timelineCmd resolves goal timeline entries to document links.
var timelineCmd = &cobra.Command{
	Use:   "timeline [data-dir]",
	Short: "Resolve each goal timeline entry to its supporting document links.",
	Long: `Cross-reference the village timeline against the knowledge index and
print each goal with the timecapsule documents that cover its day range.

Goals match a knowledge period by exact day range; when a period carries no
document list, the reference map is consulted. Goals with no match print with
no documents, which is a normal outcome, not an error.

Examples:
  # Print goal links from the default data directory
  villagepulse timeline

  # Export goal links as CSV
  villagepulse timeline --output csv --output-file goals.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimeline(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot resolve timeline", err)
		}
	},
}
