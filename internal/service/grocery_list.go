package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"go.uber.org/zap"
)

// GroceryListService builds and stores named grocery list snapshots. Unlike
// GroceryService it never touches the active shopping list.
type GroceryListService struct {
	uow    UnitOfWork
	clock  Clock
	logger *zap.Logger
}

var _ IGroceryListService = (*GroceryListService)(nil)

// NewGroceryListService creates a new GroceryListService instance
func NewGroceryListService(uow UnitOfWork, opts ...Option) *GroceryListService {
	o := buildOptions(opts)
	return &GroceryListService{uow: uow, clock: o.clock, logger: o.logger.Named("grocerylist")}
}

// GenerateFromMealPlan returns an unsaved list aggregating every entry of the
// meal plan.
func (s *GroceryListService) GenerateFromMealPlan(ctx context.Context, mealPlanID uint, name, date string, owner uuid.UUID) (*models.GroceryList, error) {
	plans, err := loadMealPlans(ctx, s.uow.Stores().MealPlans, []uint{mealPlanID}, owner)
	if err != nil {
		return nil, err
	}
	fold := newLineFold()
	fold.addMealPlan(plans[0])

	list := s.newList(name, date, owner, fold)
	id := mealPlanID
	list.MealPlanID = &id
	return list, nil
}

// GenerateFromRecipes returns an unsaved list aggregating the given recipes.
func (s *GroceryListService) GenerateFromRecipes(ctx context.Context, recipeIDs []uint, name, date string, owner uuid.UUID) (*models.GroceryList, error) {
	if len(recipeIDs) == 0 {
		return nil, invalidf("at least one recipe is required")
	}
	recipes, err := loadRecipes(ctx, s.uow.Stores().Recipes, recipeIDs, owner)
	if err != nil {
		return nil, err
	}
	fold := newLineFold()
	for _, r := range recipes {
		fold.addRecipe(r)
	}
	return s.newList(name, date, owner, fold), nil
}

func (s *GroceryListService) newList(name, date string, owner uuid.UUID, fold *lineFold) *models.GroceryList {
	if strings.TrimSpace(date) == "" {
		date = today(s.clock)
	}
	return &models.GroceryList{
		OwnerID: owner,
		Name:    strings.TrimSpace(name),
		Date:    date,
		Entries: fold.listEntries(),
	}
}

// SaveList persists a new list. Lists without entries are rejected.
func (s *GroceryListService) SaveList(ctx context.Context, list *models.GroceryList) (*models.GroceryList, error) {
	if list == nil {
		return nil, invalidf("grocery list is required")
	}
	if list.OwnerID == uuid.Nil {
		return nil, invalidf("grocery list has no owner")
	}
	if strings.TrimSpace(list.Name) == "" {
		return nil, invalidf("grocery list name is required")
	}
	if len(list.Entries) == 0 {
		return nil, invalidf("grocery list has no entries")
	}
	for _, e := range list.Entries {
		if strings.TrimSpace(e.IngredientName) == "" {
			return nil, invalidf("grocery list entry name is required")
		}
		if math.IsNaN(e.Quantity) || math.IsInf(e.Quantity, 0) || e.Quantity < 0 {
			return nil, invalidf("quantity %v must be a non-negative number", e.Quantity)
		}
	}

	var saved *models.GroceryList
	err := s.uow.WithinOwner(ctx, list.OwnerID, func(tx Stores) error {
		if list.MealPlanID != nil {
			plan, err := tx.MealPlans.FindByID(ctx, *list.MealPlanID, list.OwnerID)
			if err != nil {
				return fmt.Errorf("failed to load meal plan %d: %w", *list.MealPlanID, err)
			}
			if plan == nil {
				return notFoundf("meal plan %d", *list.MealPlanID)
			}
		}

		list.ID = 0
		if strings.TrimSpace(list.Date) == "" {
			list.Date = today(s.clock)
		}
		if err := tx.GroceryLists.Create(ctx, list); err != nil {
			return fmt.Errorf("failed to save grocery list: %w", err)
		}
		var err error
		saved, err = tx.GroceryLists.FindByID(ctx, list.ID, list.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to reload grocery list %d: %w", list.ID, err)
		}
		if saved == nil {
			return notFoundf("grocery list %d", list.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("saved grocery list", zapOwner(saved.OwnerID), zap.Uint("list_id", saved.ID), zap.Int("entries", len(saved.Entries)))
	return saved, nil
}

// GetList retrieves a saved grocery list by ID
func (s *GroceryListService) GetList(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error) {
	list, err := s.uow.Stores().GroceryLists.FindByID(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load grocery list %d: %w", id, err)
	}
	if list == nil {
		return nil, notFoundf("grocery list %d", id)
	}
	return list, nil
}

// ListLists returns the owner's saved grocery lists
func (s *GroceryListService) ListLists(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error) {
	lists, err := s.uow.Stores().GroceryLists.FindAllByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery lists: %w", err)
	}
	return lists, nil
}

// DeleteList deletes a saved grocery list
func (s *GroceryListService) DeleteList(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		list, err := tx.GroceryLists.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load grocery list %d: %w", id, err)
		}
		if list == nil {
			return notFoundf("grocery list %d", id)
		}
		return tx.GroceryLists.Delete(ctx, id, owner)
	})
}
