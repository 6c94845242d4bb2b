package logging

// Common field keys used across the analysis engines. Keeping the keys in one
// place makes log output consistent and greppable.
const (
	FieldPeriod       = "period"
	FieldCategory     = "category"
	FieldSeverity     = "severity"
	FieldInsightCount = "insight_count"
	FieldMonths       = "months"
	FieldDataPoints   = "data_points"
	FieldConfidence   = "confidence"
	FieldMethod       = "method"
	FieldProduct      = "product"
	FieldCustomer     = "customer"
	FieldSupplier     = "supplier"
	FieldFile         = "file"
	FieldFormat       = "format"
	FieldError        = "error"
	FieldCount        = "count"
	FieldZScore       = "z_score"
)
