package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"
	"github.com/IAmPiHi/StockSystem/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records sales against the append-only ledger.
type SaleService interface {
	// Sell validates stock, then — in one transaction — decrements the
	// product's stock and appends exactly one immutable ledger row with
	// profit and revenue fixed from the product's current price and cost.
	Sell(ctx context.Context, productID uuid.UUID, quantity int) (*dto.SaleResponse, error)
	// Recent lists the last two days of sales, most recent first.
	Recent(ctx context.Context) ([]dto.SaleResponse, error)
}

// recentWindow is how far back the sales listing and dashboard look.
const recentWindow = 48 * time.Hour

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

// NewSaleService wires the sale flow. dispatcher may be nil (no async
// receipts); now may be nil (wall clock).
func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	dispatcher *worker.Dispatcher,
	now func() time.Time,
) SaleService {
	if now == nil {
		now = time.Now
	}
	return &saleService{repo: repo, products: products, dispatcher: dispatcher, now: now}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *saleService) Sell(ctx context.Context, productID uuid.UUID, quantity int) (*dto.SaleResponse, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if p.IsDeleted {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	if p.Stock <= 0 || quantity > p.Stock {
		return nil, ErrOutOfStock
	}

	qty := decimal.NewFromInt(int64(quantity))
	sale := model.Sale{
		ProductID: p.ID,
		Quantity:  quantity,
		Profit:    p.Price.Sub(p.Cost).Mul(qty),
		Revenue:   decimal.NullDecimal{Decimal: p.Price.Mul(qty), Valid: true},
		SoldAt:    s.now(),
	}

	// Stock decrement and ledger append commit together or not at all. The
	// decrement is re-guarded in SQL, so a concurrent sale that drained the
	// stock after the check above rolls the whole thing back.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.products.DecrementStockTx(tx, p.ID, quantity); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOutOfStock
			}
			return err
		}
		return s.repo.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt — best effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJob{SaleID: sale.ID.String()})
	}

	return &dto.SaleResponse{
		ID:       sale.ID.String(),
		Product:  p.Name,
		Quantity: sale.Quantity,
		Profit:   sale.Profit,
		Revenue:  sale.Revenue.Decimal,
		SoldAt:   sale.SoldAt.Format(time.RFC3339),
	}, nil
}

func (s *saleService) Recent(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.RecentSince(ctx, s.now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	result := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		sl := &sales[i]
		result = append(result, dto.SaleResponse{
			ID:       sl.ID.String(),
			Product:  sl.ProductName(),
			Quantity: sl.Quantity,
			Profit:   sl.Profit,
			Revenue:  sl.RevenueOrZero(),
			SoldAt:   sl.SoldAt.Format(time.RFC3339),
		})
	}
	return result, nil
}
