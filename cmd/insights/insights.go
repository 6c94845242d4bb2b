// Package insights handles the full insights report command
package insights

import (
	"context"

	"fjacquet/ledger-insights/cmd/common"
	"fjacquet/ledger-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate the full insights report",
	Long: `Generate the full insights report over the selected period: trends,
anomalies, forecasts and recommendations in a single document.`,
	Run: insightsFunc,
}

func insightsFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Insights command called")
	root.Log.Infof("Ledger directory: %s", root.SharedFlags.LedgerDir)

	c := common.Setup(root.SharedFlags.Format, root.Log)
	data := common.LoadData(root.SharedFlags.LedgerDir, root.Log)

	period, err := common.ResolvePeriod(root.SharedFlags.From, root.SharedFlags.To)
	if err != nil {
		root.Log.Fatalf("Invalid analysis period: %v", err)
	}

	result, err := c.GetAggregator().GenerateInsights(context.Background(), data, period)
	if err != nil {
		root.Log.Fatalf("Error generating insights: %v", err)
	}

	common.EmitReport(c, result, root.SharedFlags.Output, root.Log)
	root.Log.Info("Insights report completed successfully!")
}
