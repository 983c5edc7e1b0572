package repository

import (
	"context"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PeriodTotal is one row of a time-grouped ledger rollup. Label carries the
// calendar key ("2024-03-01" for days, "2024-03" for months).
type PeriodTotal struct {
	Label    string
	Quantity int64
	Profit   decimal.Decimal
	Revenue  decimal.Decimal
}

// SaleRepository is the query surface over the append-only sales ledger.
// Sales are only ever inserted; there is no update or delete.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// Between returns all sales with sold_at in [from, to], product preloaded,
	// in chronological order.
	Between(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	// RecentSince returns sales newer than t, most recent first.
	RecentSince(ctx context.Context, t time.Time) ([]model.Sale, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	// DailyTotals groups the whole ledger by calendar day, most recent day
	// first, limited to the given number of days.
	DailyTotals(ctx context.Context, limit int) ([]PeriodTotal, error)
	// MonthlyTotals groups the whole ledger by year-month, ascending by label.
	MonthlyTotals(ctx context.Context) ([]PeriodTotal, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	if err := r.db.WithContext(ctx).Preload("Product").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) Between(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sold_at >= ? AND sold_at <= ?", from, to).
		Order("sold_at asc").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) RecentSince(ctx context.Context, t time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sold_at >= ?", t).
		Order("sold_at desc").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

// periodRow matches the raw rollup projection. COALESCE covers ledger rows
// written before revenue tracking existed.
type periodRow struct {
	Label    string
	Quantity int64
	Profit   decimal.Decimal
	Revenue  decimal.Decimal
}

func (r *saleRepo) DailyTotals(ctx context.Context, limit int) ([]PeriodTotal, error) {
	var rows []periodRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(sold_at, 'YYYY-MM-DD')   AS label,
		       SUM(quantity)                    AS quantity,
		       SUM(profit)                      AS profit,
		       SUM(COALESCE(revenue, 0))        AS revenue
		FROM sales
		GROUP BY label
		ORDER BY label DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPeriodTotals(rows), nil
}

func (r *saleRepo) MonthlyTotals(ctx context.Context) ([]PeriodTotal, error) {
	var rows []periodRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(sold_at, 'YYYY-MM')      AS label,
		       SUM(quantity)                    AS quantity,
		       SUM(profit)                      AS profit,
		       SUM(COALESCE(revenue, 0))        AS revenue
		FROM sales
		GROUP BY label
		ORDER BY label ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPeriodTotals(rows), nil
}

func toPeriodTotals(rows []periodRow) []PeriodTotal {
	totals := make([]PeriodTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, PeriodTotal(row))
	}
	return totals
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
