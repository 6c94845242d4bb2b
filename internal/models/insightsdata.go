package models

import "time"

// InsightsSummary counts the insights produced per category.
type InsightsSummary struct {
	TotalInsights   int                       `json:"total_insights" yaml:"total_insights"`
	CountByCategory map[string]int            `json:"count_by_category" yaml:"count_by_category"`
	CountBySeverity map[string]int            `json:"count_by_severity" yaml:"count_by_severity"`
}

// InsightsData is the aggregate result of a full analysis run. It is created
// fresh per call and never persisted by the engine.
type InsightsData struct {
	GeneratedAt             time.Time       `json:"generated_at" yaml:"generated_at"`
	Period                  DateRange       `json:"period" yaml:"period"`
	HasSufficientData       bool            `json:"has_sufficient_data" yaml:"has_sufficient_data"`
	InsufficientDataMessage string          `json:"insufficient_data_message,omitempty" yaml:"insufficient_data_message,omitempty"`

	RevenueTrends   []InsightItem   `json:"revenue_trends" yaml:"revenue_trends"`
	Anomalies       []InsightItem   `json:"anomalies" yaml:"anomalies"`
	Forecasts       []InsightItem   `json:"forecasts" yaml:"forecasts"`
	Recommendations []InsightItem   `json:"recommendations" yaml:"recommendations"`
	Forecast        ForecastData    `json:"forecast" yaml:"forecast"`
	Summary         InsightsSummary `json:"summary" yaml:"summary"`
}

// Summarize recomputes the summary counts from the insight lists.
func (d *InsightsData) Summarize() {
	byCategory := make(map[string]int)
	bySeverity := make(map[string]int)
	total := 0
	for _, list := range [][]InsightItem{d.RevenueTrends, d.Anomalies, d.Forecasts, d.Recommendations} {
		for _, item := range list {
			byCategory[item.Category.String()]++
			bySeverity[item.Severity.String()]++
			total++
		}
	}
	d.Summary = InsightsSummary{
		TotalInsights:   total,
		CountByCategory: byCategory,
		CountBySeverity: bySeverity,
	}
}
