package models

import "github.com/google/uuid"

// Severity classifies how urgently an insight should be surfaced.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityCritical
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeveritySuccess:
		return "Success"
	case SeverityWarning:
		return "Warning"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Color returns the presentation color associated with the severity. The
// table layer renders severities by this value; every severity must map.
func (s Severity) Color() string {
	switch s {
	case SeverityInfo:
		return "blue"
	case SeveritySuccess:
		return "green"
	case SeverityWarning:
		return "orange"
	case SeverityCritical:
		return "red"
	default:
		return "gray"
	}
}

// MarshalText renders the severity name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InsightCategory groups insights by the analysis that produced them.
type InsightCategory int

const (
	CategoryTrend InsightCategory = iota
	CategoryPattern
	CategoryAnomaly
	CategoryForecast
	CategoryRecommendation
)

// String returns the canonical name of the category.
func (c InsightCategory) String() string {
	switch c {
	case CategoryTrend:
		return "Trend"
	case CategoryPattern:
		return "Pattern"
	case CategoryAnomaly:
		return "Anomaly"
	case CategoryForecast:
		return "Forecast"
	case CategoryRecommendation:
		return "Recommendation"
	default:
		return "Unknown"
	}
}

// Label returns the human-readable heading used in rendered reports.
func (c InsightCategory) Label() string {
	switch c {
	case CategoryTrend:
		return "Revenue & Expense Trends"
	case CategoryPattern:
		return "Sales Patterns"
	case CategoryAnomaly:
		return "Anomalies"
	case CategoryForecast:
		return "Forecasts"
	case CategoryRecommendation:
		return "Recommendations"
	default:
		return "Other"
	}
}

// MarshalText renders the category name in JSON and YAML output.
func (c InsightCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// InsightItem is a single finding produced by one of the analyzers. Items are
// created once and never mutated; the presentation layer consumes them
// read-only.
type InsightItem struct {
	// ID is generation metadata: a fresh random identifier per analysis
	// run, like InsightsData.GeneratedAt. Repeated runs over the same
	// ledger produce identical insights with different IDs; the content
	// fields carry the insight's identity.
	ID             string          `json:"id" yaml:"id"`
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description" yaml:"description"`
	Recommendation string          `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Severity       Severity        `json:"severity" yaml:"severity"`
	Category       InsightCategory `json:"category" yaml:"category"`
	MetricValue    float64         `json:"metric_value,omitempty" yaml:"metric_value,omitempty"`
	PercentChange  float64         `json:"percent_change,omitempty" yaml:"percent_change,omitempty"`
}

// NewInsight creates an insight with a generated ID.
func NewInsight(category InsightCategory, severity Severity, title, description string) InsightItem {
	return InsightItem{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Severity:    severity,
		Category:    category,
	}
}
