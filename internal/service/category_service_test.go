package service_test

import (
	"context"
	"testing"

	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", resp.Name)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateCategory_TrimsName(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "  Snacks  "})
	require.NoError(t, err)
	assert.Equal(t, "Snacks", resp.Name)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Beverages"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Beverages"})
	assert.ErrorIs(t, err, service.ErrDuplicateCategory)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc := service.NewCategoryService(newStubCategoryRepo())

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestListCategories(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	for _, name := range []string{"Beverages", "Snacks"} {
		_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
