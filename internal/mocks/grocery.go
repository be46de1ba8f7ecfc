package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

var _ service.IGroceryService = (*MockGroceryService)(nil)

// MockGroceryService is a mock implementation of the grocery service
type MockGroceryService struct {
	mock.Mock
}

func groceryItems(args mock.Arguments) ([]*models.GroceryItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GroceryItem), args.Error(1)
}

// AggregateFromRecipes mocks the AggregateFromRecipes method
func (m *MockGroceryService) AggregateFromRecipes(ctx context.Context, recipeIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return groceryItems(m.Called(ctx, recipeIDs, date, owner))
}

// AggregateFromMealPlans mocks the AggregateFromMealPlans method
func (m *MockGroceryService) AggregateFromMealPlans(ctx context.Context, mealPlanIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return groceryItems(m.Called(ctx, mealPlanIDs, date, owner))
}

// MergeOrAdd mocks the MergeOrAdd method
func (m *MockGroceryService) MergeOrAdd(ctx context.Context, candidate *models.GroceryItem) (*models.GroceryItem, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroceryItem), args.Error(1)
}

// MarkPurchased mocks the MarkPurchased method
func (m *MockGroceryService) MarkPurchased(ctx context.Context, ids []uint, owner uuid.UUID) error {
	return m.Called(ctx, ids, owner).Error(0)
}

// MarkUnpurchased mocks the MarkUnpurchased method
func (m *MockGroceryService) MarkUnpurchased(ctx context.Context, ids []uint, owner uuid.UUID) error {
	return m.Called(ctx, ids, owner).Error(0)
}

// ListActive mocks the ListActive method
func (m *MockGroceryService) ListActive(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return groceryItems(m.Called(ctx, owner))
}

// ListPurchased mocks the ListPurchased method
func (m *MockGroceryService) ListPurchased(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return groceryItems(m.Called(ctx, owner))
}

// UpdateItem mocks the UpdateItem method
func (m *MockGroceryService) UpdateItem(ctx context.Context, id uint, owner uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error) {
	args := m.Called(ctx, id, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroceryItem), args.Error(1)
}

// DeleteItem mocks the DeleteItem method
func (m *MockGroceryService) DeleteItem(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.Called(ctx, id, owner).Error(0)
}
