// Package forecast handles the forecasting command
package forecast

import (
	"context"

	"fjacquet/ledger-insights/cmd/common"
	"fjacquet/ledger-insights/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast next month's revenue, expenses and customers",
	Long: `Forecast next month's revenue, expenses, profit and new customers
with confidence scoring and inventory depletion risks.`,
	Run: forecastFunc,
}

func forecastFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Forecast command called")

	c := common.Setup(root.SharedFlags.Format, root.Log)
	data := common.LoadData(root.SharedFlags.LedgerDir, root.Log)

	period, err := common.ResolvePeriod(root.SharedFlags.From, root.SharedFlags.To)
	if err != nil {
		root.Log.Fatalf("Invalid analysis period: %v", err)
	}

	result, err := c.GetAggregator().GenerateForecast(context.Background(), data, period)
	if err != nil {
		root.Log.Fatalf("Error generating forecast: %v", err)
	}

	common.EmitReport(c, common.ForecastReport{Period: period, Forecast: result}, root.SharedFlags.Output, root.Log)
	root.Log.Info("Forecast completed successfully!")
}
