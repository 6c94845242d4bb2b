package common

import "fjacquet/ledger-insights/internal/models"

// SectionReport is the payload emitted by the single-engine commands.
type SectionReport struct {
	Period   models.DateRange     `json:"period" yaml:"period"`
	Insights []models.InsightItem `json:"insights" yaml:"insights"`
}

// ForecastReport is the payload emitted by the forecast command.
type ForecastReport struct {
	Period   models.DateRange    `json:"period" yaml:"period"`
	Forecast models.ForecastData `json:"forecast" yaml:"forecast"`
}
