package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// RecipeStore implements service.RecipeStore
type RecipeStore struct {
	db *gorm.DB
}

var _ service.RecipeStore = (*RecipeStore)(nil)

func (s *RecipeStore) withLines(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", orderLines).
		Preload("Ingredients.Ingredient")
}

// FindByID loads a recipe with its ordered lines and their ingredients
func (s *RecipeStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	found, err := first(s.withLines(ctx).Where("id = ? AND owner_id = ?", id, owner), &recipe)
	if err != nil || !found {
		return nil, err
	}
	return &recipe, nil
}

// FindAllByOwner loads every recipe of owner ordered by id
func (s *RecipeStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := s.withLines(ctx).Where("owner_id = ?", owner).Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Create inserts the recipe and its lines. Lines must reference existing
// ingredients by IngredientID.
func (s *RecipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Create(recipe).Error
}

// Save writes the serving count and line quantities
func (s *RecipeStore) Save(ctx context.Context, recipe *models.Recipe) error {
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Recipe{}).
		Where("id = ? AND owner_id = ?", recipe.ID, recipe.OwnerID).
		Update("servings", recipe.Servings).Error; err != nil {
		return err
	}
	for _, line := range recipe.Ingredients {
		if err := db.Model(&models.RecipeIngredient{}).
			Where("id = ? AND recipe_id = ?", line.ID, recipe.ID).
			Update("quantity", line.Quantity).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe and its lines
func (s *RecipeStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	db := s.db.WithContext(ctx)
	res := db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.Recipe{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.Error
	}
	return db.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error
}

// CountMealPlanUsage counts the meal plan entries pointing at the recipe
func (s *RecipeStore) CountMealPlanUsage(ctx context.Context, recipeID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.MealPlanEntry{}).Where("recipe_id = ?", recipeID).Count(&n).Error
	return n, err
}
