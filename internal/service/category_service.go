package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
// Categories are create-and-list only; nothing in the product lifecycle ever
// removes one.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.CategoryResponse{}, fmt.Errorf("%w: category name is empty", ErrValidation)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, ErrDuplicateCategory
	}

	c := &model.Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return result, nil
}
