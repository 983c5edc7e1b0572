package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	// AddOrRestock creates a new product, or — when the name already exists,
	// hidden or not — accumulates incoming stock onto it, reviving a
	// soft-deleted product in the process.
	AddOrRestock(ctx context.Context, req dto.AddProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, categoryID *uuid.UUID) ([]dto.ProductResponse, error)
	// Delete removes the product row when it has no ledger history, and soft
	// deletes (hide + zero stock) when sales reference it.
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteProductResponse, error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	sales      repository.SaleRepository
}

func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	sales repository.SaleRepository,
) ProductService {
	return &productService{repo: repo, categories: categories, sales: sales}
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Image:      p.Image,
		Cost:       p.Cost,
		Price:      p.Price,
		Stock:      p.Stock,
		CategoryID: p.CategoryID.String(),
		IsDeleted:  p.IsDeleted,
	}
}

func (s *productService) AddOrRestock(ctx context.Context, req dto.AddProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is empty", ErrValidation)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		return s.restock(ctx, existing, req)
	}

	// Brand-new product: cost and price are mandatory here, never later.
	if req.Cost == nil || req.Price == nil {
		return nil, fmt.Errorf("%w: a new product requires cost and price", ErrValidation)
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:       name,
		Cost:       *req.Cost,
		Price:      *req.Price,
		Stock:      req.Stock,
		CategoryID: categoryID,
	}
	if req.Image != nil && *req.Image != "" {
		p.Image = *req.Image
	} else {
		p.Image = "default.jpg"
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Info().Str("product", p.Name).Int("stock", p.Stock).Msg("product created")
	return toProductResponse(p), nil
}

// restock updates an existing product in place. Incoming stock is ADDED to
// whatever stock value is there — even right after a revival, where the stock
// was zeroed at soft-delete time. Replacing instead of adding would change
// historical report totals.
func (s *productService) restock(ctx context.Context, p *model.Product, req dto.AddProductRequest) (*dto.ProductResponse, error) {
	revived := false
	if p.IsDeleted {
		p.IsDeleted = false
		revived = true
	}

	p.Stock += req.Stock

	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.Image != nil && *req.Image != "" {
		p.Image = *req.Image
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	log.Info().Str("product", p.Name).Int("added", req.Stock).Bool("revived", revived).
		Msg("product restocked")

	resp := toProductResponse(p)
	resp.Revived = revived
	return resp, nil
}

// resolveCategory maps an optional request category to a concrete row,
// falling back to the seeded default category.
func (s *productService) resolveCategory(ctx context.Context, raw *string) (uuid.UUID, error) {
	if raw == nil || *raw == "" {
		c, err := s.categories.FindOrCreateDefault(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid category id", ErrValidation)
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return uuid.Nil, err
	}
	return c.ID, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *productService) List(ctx context.Context, categoryID *uuid.UUID) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}
	return result, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	saleCount, err := s.sales.CountByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// No ledger history: the row can go away entirely. With history, the row
	// must stay for referential integrity; it is hidden and its stock zeroed.
	if saleCount == 0 {
		if err := s.repo.HardDelete(ctx, id); err != nil {
			return nil, err
		}
		log.Info().Str("product", p.Name).Msg("product hard-deleted")
		return &dto.DeleteProductResponse{ID: id.String(), Outcome: dto.DeleteOutcomeHard}, nil
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return nil, err
	}
	log.Info().Str("product", p.Name).Int64("sales", saleCount).Msg("product soft-deleted")
	return &dto.DeleteProductResponse{ID: id.String(), Outcome: dto.DeleteOutcomeSoft}, nil
}
