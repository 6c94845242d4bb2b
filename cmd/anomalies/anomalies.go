// Package anomalies handles the anomaly detection command
package anomalies

import (
	"context"

	"fjacquet/ledger-insights/cmd/common"
	"fjacquet/ledger-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the anomalies command
var Cmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Detect unusual transactions and patterns",
	Long: `Detect expense spikes, revenue drops, rising return rates and
unusually large sales in the selected period.`,
	Run: anomaliesFunc,
}

func anomaliesFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Anomalies command called")

	c := common.Setup(root.SharedFlags.Format, root.Log)
	data := common.LoadData(root.SharedFlags.LedgerDir, root.Log)

	period, err := common.ResolvePeriod(root.SharedFlags.From, root.SharedFlags.To)
	if err != nil {
		root.Log.Fatalf("Invalid analysis period: %v", err)
	}

	items, err := c.GetAggregator().DetectAnomalies(context.Background(), data, period)
	if err != nil {
		root.Log.Fatalf("Error detecting anomalies: %v", err)
	}

	common.EmitReport(c, common.SectionReport{Period: period, Insights: items}, root.SharedFlags.Output, root.Log)
	root.Log.Info("Anomaly detection completed successfully!")
}
