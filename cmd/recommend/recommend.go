// Package recommend handles the recommendations command
package recommend

import (
	"context"

	"fjacquet/ledger-insights/cmd/common"
	"fjacquet/ledger-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the recommend command
var Cmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate actionable business recommendations",
	Long: `Generate heuristic recommendations: product margins, quiet repeat
customers, overdue invoices and concentration risks.`,
	Run: recommendFunc,
}

func recommendFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Recommend command called")

	c := common.Setup(root.SharedFlags.Format, root.Log)
	data := common.LoadData(root.SharedFlags.LedgerDir, root.Log)

	period, err := common.ResolvePeriod(root.SharedFlags.From, root.SharedFlags.To)
	if err != nil {
		root.Log.Fatalf("Invalid analysis period: %v", err)
	}

	items, err := c.GetAggregator().GenerateRecommendations(context.Background(), data, period)
	if err != nil {
		root.Log.Fatalf("Error generating recommendations: %v", err)
	}

	common.EmitReport(c, common.SectionReport{Period: period, Insights: items}, root.SharedFlags.Output, root.Log)
	root.Log.Info("Recommendations completed successfully!")
}
