// Package report implements the reporting core: turning the append-only sales
// ledger into daily/monthly summaries and materializing them as artifacts on
// disk. Everything here is a pure function of (time window, ledger contents);
// the only side effects live in the Materializer's file writes.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dailyRollupDays caps the dashboard's per-day chart to the last week.
const dailyRollupDays = 7

// Ledger is the slice of the sale repository the aggregation engine reads.
// Kept narrow so tests can feed an in-memory ledger.
type Ledger interface {
	Between(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	DailyTotals(ctx context.Context, limit int) ([]repository.PeriodTotal, error)
	MonthlyTotals(ctx context.Context) ([]repository.PeriodTotal, error)
}

// Totals are the grand totals of one daily summary.
type Totals struct {
	TotalProfit     float64 `json:"total_profit"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalSalesCount int     `json:"total_sales_count"`
}

// SaleDetail is one chronological row of a daily summary.
type SaleDetail struct {
	Time    string  `json:"time"` // HH:MM:SS
	Product string  `json:"product"`
	Qty     int     `json:"qty"`
	Profit  float64 `json:"profit"`
	Revenue float64 `json:"revenue"`
}

// DailySummary is the machine-readable snapshot for one calendar day. Its
// JSON form is the daily artifact schema.
type DailySummary struct {
	Date        string       `json:"date"` // YYYY-MM-DD
	Summary     Totals       `json:"summary"`
	HourlyChart [24]int      `json:"hourly_chart"`
	ItemSummary *Tally       `json:"item_summary"`
	RawSales    []SaleDetail `json:"raw_sales"`
}

// MonthlySummary feeds the human-readable monthly document. Totals are
// pre-formatted as thousands-grouped integers (fractional cents truncated
// toward zero for display).
type MonthlySummary struct {
	Year          int
	Month         time.Month
	Label         string // YYYY-MM
	TotalProfit   string
	TotalRevenue  string
	TotalQuantity string
	Products      *Tally
}

// ChartLabels returns product names in first-encounter order.
func (m *MonthlySummary) ChartLabels() []string { return m.Products.Names() }

// ProfitSeries returns per-product profit parallel to ChartLabels.
func (m *MonthlySummary) ProfitSeries() []float64 {
	out := make([]float64, 0, m.Products.Len())
	for _, name := range m.Products.Names() {
		e, _ := m.Products.Get(name)
		out = append(out, round2(e.Profit))
	}
	return out
}

// QuantitySeries returns per-product quantity parallel to ChartLabels.
func (m *MonthlySummary) QuantitySeries() []int {
	out := make([]int, 0, m.Products.Len())
	for _, name := range m.Products.Names() {
		e, _ := m.Products.Get(name)
		out = append(out, e.Qty)
	}
	return out
}

// Aggregator converts ledger windows into summary structures.
type Aggregator struct {
	ledger Ledger
	now    func() time.Time
}

// NewAggregator builds an engine over the given ledger. now may be nil, in
// which case wall-clock time is used; tests inject a frozen clock.
func NewAggregator(ledger Ledger, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{ledger: ledger, now: now}
}

// Day aggregates all sales of the given calendar day: an hourly quantity
// histogram, the chronological detail rows, the per-product tally and the
// grand totals. The sales count always equals the histogram sum.
func (a *Aggregator) Day(ctx context.Context, date time.Time) (*DailySummary, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Second)

	sales, err := a.ledger.Between(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily aggregation %s: %w", start.Format("2006-01-02"), err)
	}

	summary := &DailySummary{
		Date:        start.Format("2006-01-02"),
		ItemSummary: NewTally(),
		RawSales:    make([]SaleDetail, 0, len(sales)),
	}

	totalProfit := decimal.Zero
	totalRevenue := decimal.Zero
	for i := range sales {
		s := &sales[i]
		revenue := s.RevenueOrZero()

		summary.HourlyChart[s.SoldAt.Hour()] += s.Quantity
		summary.RawSales = append(summary.RawSales, SaleDetail{
			Time:    s.SoldAt.Format("15:04:05"),
			Product: s.ProductName(),
			Qty:     s.Quantity,
			Profit:  round2(s.Profit),
			Revenue: round2(revenue),
		})
		summary.ItemSummary.Add(s.ProductName(), s.Quantity, s.Profit, revenue)

		totalProfit = totalProfit.Add(s.Profit)
		totalRevenue = totalRevenue.Add(revenue)
	}

	count := 0
	for _, n := range summary.HourlyChart {
		count += n
	}
	summary.Summary = Totals{
		TotalProfit:     round2(totalProfit),
		TotalRevenue:    round2(totalRevenue),
		TotalSalesCount: count,
	}
	return summary, nil
}

// Month aggregates the window [first instant of the month, last instant of
// the month]. The end boundary is computed by stepping to day 1 of the next
// month and backing off one second, so 23:59:59 of the last day is included.
func (a *Aggregator) Month(ctx context.Context, year int, month time.Month) (*MonthlySummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	sales, err := a.ledger.Between(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly aggregation %04d-%02d: %w", year, month, err)
	}

	tally := NewTally()
	totalProfit := decimal.Zero
	totalRevenue := decimal.Zero
	totalQty := int64(0)
	for i := range sales {
		s := &sales[i]
		revenue := s.RevenueOrZero()
		tally.Add(s.ProductName(), s.Quantity, s.Profit, revenue)
		totalProfit = totalProfit.Add(s.Profit)
		totalRevenue = totalRevenue.Add(revenue)
		totalQty += int64(s.Quantity)
	}

	return &MonthlySummary{
		Year:          year,
		Month:         month,
		Label:         fmt.Sprintf("%04d-%02d", year, int(month)),
		TotalProfit:   groupedInt(totalProfit),
		TotalRevenue:  groupedInt(totalRevenue),
		TotalQuantity: groupedInt(decimal.NewFromInt(totalQty)),
		Products:      tally,
	}, nil
}

// DailyRollup returns per-day ledger totals for the most recent week in
// ascending chronological order. The repository query hands back the days
// newest-first; callers want oldest-first for charting, so the engine
// reverses here.
func (a *Aggregator) DailyRollup(ctx context.Context) ([]repository.PeriodTotal, error) {
	rows, err := a.ledger.DailyTotals(ctx, dailyRollupDays)
	if err != nil {
		return nil, fmt.Errorf("daily rollup: %w", err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// MonthlyRollup returns per-month ledger totals for the whole ledger,
// ascending by label.
func (a *Aggregator) MonthlyRollup(ctx context.Context) ([]repository.PeriodTotal, error) {
	rows, err := a.ledger.MonthlyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly rollup: %w", err)
	}
	return rows, nil
}

// CurrentMonthByProduct tallies the running month — first of the current
// month up to now — grouped by product name instead of by time.
func (a *Aggregator) CurrentMonthByProduct(ctx context.Context) (*Tally, error) {
	now := a.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sales, err := a.ledger.Between(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("current month by product: %w", err)
	}
	tally := NewTally()
	for i := range sales {
		s := &sales[i]
		tally.Add(s.ProductName(), s.Quantity, s.Profit, s.RevenueOrZero())
	}
	return tally, nil
}

var groupPrinter = message.NewPrinter(language.English)

// groupedInt renders a decimal as a thousands-grouped whole number,
// truncating fractional cents toward zero.
func groupedInt(d decimal.Decimal) string {
	return groupPrinter.Sprintf("%d", d.Truncate(0).IntPart())
}
