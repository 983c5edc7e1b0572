package dto

// GenerateDailyRequest triggers a manual daily export. Date defaults to today
// when empty (the "export now" button).
type GenerateDailyRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type GenerateMonthlyRequest struct {
	Year  int `json:"year" validate:"required,min=2000,max=2200"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

type ArtifactResponse struct {
	Artifact string `json:"artifact"`
}

// RollupResponse carries parallel chart arrays for a time-grouped rollup,
// oldest label first.
type RollupResponse struct {
	Labels     []string  `json:"labels"`
	Profits    []float64 `json:"profits"`
	Quantities []int64   `json:"quantities"`
	Revenues   []float64 `json:"revenues"`
}

// ProductMixResponse carries parallel chart arrays for the running month's
// per-product breakdown, first-sold product first.
type ProductMixResponse struct {
	Labels     []string  `json:"labels"`
	Profits    []float64 `json:"profits"`
	Quantities []int     `json:"quantities"`
}

type DashboardResponse struct {
	RecentSales   []SaleResponse     `json:"recent_sales"`
	DailyRollup   RollupResponse     `json:"daily_rollup"`
	MonthlyRollup RollupResponse     `json:"monthly_rollup"`
	ProductRollup ProductMixResponse `json:"product_rollup"`
	Artifacts     []string           `json:"artifacts"`
	// BackfillNotice is set when rendering the dashboard had to regenerate a
	// missing monthly artifact.
	BackfillNotice *string `json:"backfill_notice,omitempty"`
}
