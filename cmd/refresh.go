package cmd

import (
	"github.com/ai-village-agents/villagepulse/core"
	"github.com/ai-village-agents/villagepulse/internal/contract"
	"github.com/ai-village-agents/villagepulse/internal/histstore"
	"github.com/spf13/cobra"
)

// refreshCmd runs a full dashboard refresh.
var refreshCmd = &cobra.Command{
	Use:   "refresh [data-dir]",
	Short: "Run a full dashboard refresh and render the result.",
	Long: `Fetch every dashboard dataset, compute the headline metrics and chart
series, and render the dashboard state.

The refresh degrades per dataset: a missing or malformed dataset blanks only
the charts that depend on it. Metrics require agent activity and daily
contributions; when either is absent the metric cards report unavailable while
loaded charts still render.

Each completed refresh is recorded in the history store for later inspection
with 'villagepulse history'.

Examples:
  # Refresh from the default data directory
  villagepulse refresh

  # Refresh from a live endpoint
  villagepulse refresh --data-url https://dashboard.example.com/data

  # Refresh with the curated activity dataset, JSON output
  villagepulse refresh --real-activity --output json

  # Refresh without recording history
  villagepulse refresh --history-backend none`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := histstore.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open history store", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteRefresh(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot run refresh", err)
		}
	},
}
