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
	_ service.IMealPlanService    = (*MockMealPlanService)(nil)
	_ service.IGroceryListService = (*MockGroceryListService)(nil)
)

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

// CreateMealPlan mocks the CreateMealPlan method
func (m *MockMealPlanService) CreateMealPlan(ctx context.Context, owner uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

// GetMealPlan mocks the GetMealPlan method
func (m *MockMealPlanService) GetMealPlan(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

// ListMealPlans mocks the ListMealPlans method
func (m *MockMealPlanService) ListMealPlans(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MealPlan), args.Error(1)
}

// DeleteMealPlan mocks the DeleteMealPlan method
func (m *MockMealPlanService) DeleteMealPlan(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.Called(ctx, id, owner).Error(0)
}

// MockGroceryListService is a mock implementation of the grocery list service
type MockGroceryListService struct {
	mock.Mock
}

func groceryList(args mock.Arguments) (*models.GroceryList, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroceryList), args.Error(1)
}

// GenerateFromMealPlan mocks the GenerateFromMealPlan method
func (m *MockGroceryListService) GenerateFromMealPlan(ctx context.Context, mealPlanID uint, name, date string, owner uuid.UUID) (*models.GroceryList, error) {
	return groceryList(m.Called(ctx, mealPlanID, name, date, owner))
}

// GenerateFromRecipes mocks the GenerateFromRecipes method
func (m *MockGroceryListService) GenerateFromRecipes(ctx context.Context, recipeIDs []uint, name, date string, owner uuid.UUID) (*models.GroceryList, error) {
	return groceryList(m.Called(ctx, recipeIDs, name, date, owner))
}

// SaveList mocks the SaveList method
func (m *MockGroceryListService) SaveList(ctx context.Context, list *models.GroceryList) (*models.GroceryList, error) {
	return groceryList(m.Called(ctx, list))
}

// GetList mocks the GetList method
func (m *MockGroceryListService) GetList(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error) {
	return groceryList(m.Called(ctx, id, owner))
}

// ListLists mocks the ListLists method
func (m *MockGroceryListService) ListLists(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GroceryList), args.Error(1)
}

// DeleteList mocks the DeleteList method
func (m *MockGroceryListService) DeleteList(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.Called(ctx, id, owner).Error(0)
}
