package repository

import (
	"context"

	"github.com/IAmPiHi/StockSystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindByName matches soft-deleted products too: restock-by-name must be
	// able to revive a hidden product.
	FindByName(ctx context.Context, name string) (*model.Product, error)
	// List returns visible (not soft-deleted) products, optionally filtered
	// by category.
	List(ctx context.Context, categoryID *uuid.UUID) ([]model.Product, error)
	Save(ctx context.Context, p *model.Product) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	// SoftDelete hides the product and zeroes its stock in one update.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx runs inside the caller's transaction. The decrement is
	// guarded in SQL so stock can never go negative, regardless of what the
	// caller checked beforehand. Returns gorm.ErrRecordNotFound when the
	// guard rejects the update.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, categoryID *uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("is_deleted = false")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Order("name asc").Find(&products).Error
	return products, err
}

func (r *productRepo) Save(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "stock": 0}).Error
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) DB() *gorm.DB { return r.db }
