package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc(now time.Time) (service.SaleService, *stubSaleRepo, *stubProductRepo) {
	saleRepo := &stubSaleRepo{}
	productRepo := newStubProductRepo()
	svc := service.NewSaleService(saleRepo, productRepo, nil, func() time.Time { return now })
	return svc, saleRepo, productRepo
}

func TestSell_DecrementsStockAndFixesProfit(t *testing.T) {
	at := time.Date(2024, 3, 1, 14, 5, 0, 0, time.Local)
	svc, saleRepo, productRepo := buildSaleSvc(at)
	p := seedProduct(productRepo, "Chocolate Bar", 10, 6, 20)

	resp, err := svc.Sell(context.Background(), p.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, "Chocolate Bar", resp.Product)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, "12", resp.Profit.String())  // (10-6) × 3
	assert.Equal(t, "30", resp.Revenue.String()) // 10 × 3

	// Stock decremented, exactly one ledger row written.
	assert.Equal(t, 17, productRepo.products[p.ID].Stock)
	require.Len(t, saleRepo.sales, 1)
	assert.Equal(t, at, saleRepo.sales[0].SoldAt)
	assert.True(t, saleRepo.sales[0].Revenue.Valid)
}

func TestSell_InsufficientStockLeavesLedgerUntouched(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc(time.Now())
	p := seedProduct(productRepo, "Wine", 50, 30, 2)

	_, err := svc.Sell(context.Background(), p.ID, 5)
	assert.ErrorIs(t, err, service.ErrOutOfStock)

	// Nothing written, nothing decremented.
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 2, productRepo.products[p.ID].Stock)
}

func TestSell_ZeroStock(t *testing.T) {
	svc, _, productRepo := buildSaleSvc(time.Now())
	p := seedProduct(productRepo, "Sold Out", 5, 3, 0)

	_, err := svc.Sell(context.Background(), p.ID, 1)
	assert.ErrorIs(t, err, service.ErrOutOfStock)
}

func TestSell_ExactRemainingStock(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc(time.Now())
	p := seedProduct(productRepo, "Last Units", 5, 3, 4)

	_, err := svc.Sell(context.Background(), p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, productRepo.products[p.ID].Stock)
	assert.Len(t, saleRepo.sales, 1)
}

func TestSell_UnknownProduct(t *testing.T) {
	svc, _, _ := buildSaleSvc(time.Now())

	_, err := svc.Sell(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSell_HiddenProduct(t *testing.T) {
	svc, _, productRepo := buildSaleSvc(time.Now())
	p := seedProduct(productRepo, "Retired", 5, 3, 10)
	p.IsDeleted = true

	_, err := svc.Sell(context.Background(), p.ID, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSell_NonPositiveQuantity(t *testing.T) {
	svc, _, productRepo := buildSaleSvc(time.Now())
	p := seedProduct(productRepo, "Coffee", 5, 3, 10)

	_, err := svc.Sell(context.Background(), p.ID, 0)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Sell(context.Background(), p.ID, -2)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestRecent_ReturnsLastTwoDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	svc, saleRepo, productRepo := buildSaleSvc(now)
	p := seedProduct(productRepo, "Coffee", 5, 3, 100)

	// Recorded at the frozen now, so well within the window.
	_, err := svc.Sell(context.Background(), p.ID, 2)
	require.NoError(t, err)
	// The SQL repository preloads the product; the stub stores rows as-is.
	saleRepo.sales[0].Product = p

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Coffee", recent[0].Product)

	// Push the stored sale outside the 48h window; it must drop out.
	saleRepo.sales[0].SoldAt = now.Add(-72 * time.Hour)
	recent, err = svc.Recent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recent)
}
