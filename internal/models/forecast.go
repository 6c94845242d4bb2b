package models

// ConfidenceLevel maps a numeric confidence score onto a coarse band for
// display.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

// ConfidenceLevelForScore maps a 0-100 confidence score to its band:
// below 50 is Low, 50-79 Medium, 80 and above High.
func ConfidenceLevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// TrendDirection describes the slope of a decomposed series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "Increasing"
	TrendStable     TrendDirection = "Stable"
	TrendDecreasing TrendDirection = "Decreasing"
)

// SeasonalPattern describes a detected repeating pattern in a monthly series.
type SeasonalPattern struct {
	SeasonLength     int            `json:"season_length" yaml:"season_length"`
	SeasonalFactors  []float64      `json:"seasonal_factors" yaml:"seasonal_factors"`
	SeasonalStrength float64        `json:"seasonal_strength" yaml:"seasonal_strength"`
	TrendDirection   TrendDirection `json:"trend_direction" yaml:"trend_direction"`
	TrendSlope       float64        `json:"trend_slope" yaml:"trend_slope"`
}

// ForecastData carries the next-period business forecast with its confidence
// assessment.
type ForecastData struct {
	ForecastedRevenue     float64 `json:"forecasted_revenue" yaml:"forecasted_revenue"`
	ForecastedExpenses    float64 `json:"forecasted_expenses" yaml:"forecasted_expenses"`
	ForecastedProfit      float64 `json:"forecasted_profit" yaml:"forecasted_profit"`
	RevenueGrowthPercent  float64 `json:"revenue_growth_percent" yaml:"revenue_growth_percent"`
	ExpenseGrowthPercent  float64 `json:"expense_growth_percent" yaml:"expense_growth_percent"`
	ProfitGrowthPercent   float64 `json:"profit_growth_percent" yaml:"profit_growth_percent"`
	ExpectedNewCustomers  float64 `json:"expected_new_customers" yaml:"expected_new_customers"`
	CustomerGrowthPercent float64 `json:"customer_growth_percent" yaml:"customer_growth_percent"`

	ConfidenceScore float64         `json:"confidence_score" yaml:"confidence_score"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level" yaml:"confidence_level"`
	DataMonthsUsed  int             `json:"data_months_used" yaml:"data_months_used"`
}
