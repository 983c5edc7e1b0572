package service_test

import (
	"context"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. DecrementStockTx applies
// the same stock >= qty guard as the SQL implementation.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, categoryID *uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsDeleted {
			continue
		}
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsDeleted = true
	p.Stock = 0
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return gorm.ErrRecordNotFound
	}
	p.Stock -= qty
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo is an in-memory append-only SaleRepository.
type stubSaleRepo struct {
	sales   []*model.Sale
	daily   []repository.PeriodTotal
	monthly []repository.PeriodTotal
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) Between(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if !s.SoldAt.Before(from) && !s.SoldAt.After(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) RecentSince(_ context.Context, t time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for i := len(r.sales) - 1; i >= 0; i-- {
		if r.sales[i].SoldAt.After(t) {
			out = append(out, *r.sales[i])
		}
	}
	return out, nil
}

func (r *stubSaleRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DailyTotals(_ context.Context, limit int) ([]repository.PeriodTotal, error) {
	if len(r.daily) > limit {
		return r.daily[:limit], nil
	}
	return r.daily, nil
}

func (r *stubSaleRepo) MonthlyTotals(_ context.Context) ([]repository.PeriodTotal, error) {
	return r.monthly, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubCategoryRepo is an in-memory CategoryRepository.
type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) FindOrCreateDefault(ctx context.Context) (*model.Category, error) {
	if c, err := r.FindByName(ctx, repository.DefaultCategoryName); err == nil {
		return c, nil
	}
	c := &model.Category{Name: repository.DefaultCategoryName}
	_ = r.Create(ctx, c)
	return c, nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduct(r *stubProductRepo, name string, price, cost float64, stock int) *model.Product {
	p := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		Image:      "default.jpg",
		Cost:       decimal.NewFromFloat(cost),
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
		CategoryID: uuid.New(),
	}
	r.products[p.ID] = p
	return p
}
