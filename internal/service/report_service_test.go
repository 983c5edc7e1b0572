package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/report"
	"github.com/IAmPiHi/StockSystem/internal/repository"
	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReportSvc(t *testing.T, saleRepo *stubSaleRepo, now time.Time) service.ReportService {
	t.Helper()
	clock := func() time.Time { return now }
	agg := report.NewAggregator(saleRepo, clock)
	mat, err := report.NewMaterializer(agg, t.TempDir(), clock)
	require.NoError(t, err)
	saleSvc := service.NewSaleService(saleRepo, newStubProductRepo(), nil, clock)
	return service.NewReportService(agg, mat, saleSvc, nil, clock)
}

func TestDashboard_BackfillsMissingMonthlyArtifact(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	svc := buildReportSvc(t, &stubSaleRepo{}, now)

	// First view: February's document is missing, gets regenerated, and the
	// response carries the notice.
	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.BackfillNotice)
	assert.Contains(t, *resp.BackfillNotice, "monthly_2024_02.html")
	assert.Contains(t, resp.Artifacts, "monthly_2024_02.html")

	// Second view: the artifact exists now, no notice.
	resp, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp.BackfillNotice)
}

func TestDashboard_RollupsAndRecentSales(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	saleRepo := &stubSaleRepo{
		daily: []repository.PeriodTotal{
			{Label: "2024-03-05", Quantity: 5, Profit: decimal.NewFromInt(50), Revenue: decimal.NewFromInt(120)},
			{Label: "2024-03-04", Quantity: 2, Profit: decimal.NewFromInt(20), Revenue: decimal.NewFromInt(48)},
		},
		monthly: []repository.PeriodTotal{
			{Label: "2024-02", Quantity: 90},
			{Label: "2024-03", Quantity: 7},
		},
	}
	saleRepo.sales = append(saleRepo.sales, &model.Sale{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  2,
		Profit:    decimal.NewFromInt(8),
		Revenue:   decimal.NullDecimal{Decimal: decimal.NewFromInt(20), Valid: true},
		SoldAt:    now.Add(-time.Hour),
		Product:   &model.Product{Name: "Coffee"},
	})
	svc := buildReportSvc(t, saleRepo, now)

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	// Daily rollup flipped to ascending for charting.
	assert.Equal(t, []string{"2024-03-04", "2024-03-05"}, resp.DailyRollup.Labels)
	assert.Equal(t, []int64{2, 5}, resp.DailyRollup.Quantities)
	// Monthly rollup passes through in ledger order.
	assert.Equal(t, []string{"2024-02", "2024-03"}, resp.MonthlyRollup.Labels)

	require.Len(t, resp.RecentSales, 1)
	assert.Equal(t, "Coffee", resp.RecentSales[0].Product)

	// The running month's product mix covers the March sale.
	assert.Equal(t, []string{"Coffee"}, resp.ProductRollup.Labels)
	assert.Equal(t, []int{2}, resp.ProductRollup.Quantities)
}

func TestGenerateDaily_ThenReadBack(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	svc := buildReportSvc(t, &stubSaleRepo{}, now)

	name, err := svc.GenerateDaily(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "daily_20240305.json", name)

	art, err := svc.ReadArtifact(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, report.KindData, art.Kind)
	assert.NotEmpty(t, art.Content)
}

func TestGenerateMonthly_ThenReadBack(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	svc := buildReportSvc(t, &stubSaleRepo{}, now)

	name, err := svc.GenerateMonthly(context.Background(), 2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, "monthly_2024_02.html", name)

	art, err := svc.ReadArtifact(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, report.KindDocument, art.Kind)
}

func TestReadArtifact_Unknown(t *testing.T) {
	svc := buildReportSvc(t, &stubSaleRepo{}, time.Now())

	_, err := svc.ReadArtifact(context.Background(), "daily_19990101.json")
	assert.ErrorIs(t, err, report.ErrArtifactNotFound)
}
