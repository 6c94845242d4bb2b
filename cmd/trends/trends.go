// Package trends handles the trend analysis command
package trends

import (
	"context"

	"fjacquet/ledger-insights/cmd/common"
	"fjacquet/ledger-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Analyze revenue, expense and volume trends",
	Long: `Analyze period-over-period revenue, expense and volume trends along
with day-of-week and seasonal sales patterns.`,
	Run: trendsFunc,
}

func trendsFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Trends command called")

	c := common.Setup(root.SharedFlags.Format, root.Log)
	data := common.LoadData(root.SharedFlags.LedgerDir, root.Log)

	period, err := common.ResolvePeriod(root.SharedFlags.From, root.SharedFlags.To)
	if err != nil {
		root.Log.Fatalf("Invalid analysis period: %v", err)
	}

	items, err := c.GetAggregator().AnalyzeTrends(context.Background(), data, period)
	if err != nil {
		root.Log.Fatalf("Error analyzing trends: %v", err)
	}

	common.EmitReport(c, common.SectionReport{Period: period, Insights: items}, root.SharedFlags.Output, root.Log)
	root.Log.Info("Trend analysis completed successfully!")
}
