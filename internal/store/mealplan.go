package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// MealPlanStore implements service.MealPlanStore
type MealPlanStore struct {
	db *gorm.DB
}

var _ service.MealPlanStore = (*MealPlanStore)(nil)

func (s *MealPlanStore) withTree(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Entries", orderByID).
		Preload("Entries.Recipe").
		Preload("Entries.Recipe.Ingredients", orderLines).
		Preload("Entries.Recipe.Ingredients.Ingredient")
}

// FindByID loads the plan with entries, recipes, lines and ingredients
func (s *MealPlanStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	found, err := first(s.withTree(ctx).Where("id = ? AND owner_id = ?", id, owner), &plan)
	if err != nil || !found {
		return nil, err
	}
	return &plan, nil
}

// FindAllByOwner loads every plan of owner ordered by id
func (s *MealPlanStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error) {
	var plans []*models.MealPlan
	if err := s.withTree(ctx).Where("owner_id = ?", owner).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Create inserts the plan and its entries
func (s *MealPlanStore) Create(ctx context.Context, plan *models.MealPlan) error {
	return s.db.WithContext(ctx).Create(plan).Error
}

// Delete removes the plan and its entries
func (s *MealPlanStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	db := s.db.WithContext(ctx)
	res := db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.MealPlan{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.Error
	}
	return db.Where("meal_plan_id = ?", id).Delete(&models.MealPlanEntry{}).Error
}
