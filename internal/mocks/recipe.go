package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.IRecipeService     = (*MockRecipeService)(nil)
	_ service.IIngredientService = (*MockIngredientService)(nil)
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, owner uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.Called(ctx, id, owner).Error(0)
}

// Rescale mocks the Rescale method
func (m *MockRecipeService) Rescale(ctx context.Context, recipeID uint, newServings int, owner uuid.UUID) error {
	return m.Called(ctx, recipeID, newServings, owner).Error(0)
}

// RescaleAllDefault mocks the RescaleAllDefault method
func (m *MockRecipeService) RescaleAllDefault(ctx context.Context, newServings int, owner uuid.UUID) error {
	return m.Called(ctx, newServings, owner).Error(0)
}

// MockIngredientService is a mock implementation of the ingredient service
type MockIngredientService struct {
	mock.Mock
}

// CreateIngredient mocks the CreateIngredient method
func (m *MockIngredientService) CreateIngredient(ctx context.Context, owner uuid.UUID, name string) (*models.Ingredient, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

// ListIngredients mocks the ListIngredients method
func (m *MockIngredientService) ListIngredients(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ingredient), args.Error(1)
}

// DeleteIngredient mocks the DeleteIngredient method
func (m *MockIngredientService) DeleteIngredient(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.Called(ctx, id, owner).Error(0)
}
