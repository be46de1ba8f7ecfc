package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// IngredientStore implements service.IngredientStore
type IngredientStore struct {
	db *gorm.DB
}

var _ service.IngredientStore = (*IngredientStore)(nil)

// FindByID returns one of the owner's ingredients
func (s *IngredientStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	found, err := first(s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner), &ingredient)
	if err != nil || !found {
		return nil, err
	}
	return &ingredient, nil
}

// FindByName looks an ingredient up by trimmed, case-insensitive name
func (s *IngredientStore) FindByName(ctx context.Context, name string, owner uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	q := s.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(TRIM(name)) = ?", owner, strings.ToLower(strings.TrimSpace(name))).
		Order("id ASC")
	found, err := first(q, &ingredient)
	if err != nil || !found {
		return nil, err
	}
	return &ingredient, nil
}

// FindAllByOwner returns the owner's catalogue ordered by name
func (s *IngredientStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	if err := s.db.WithContext(ctx).Where("owner_id = ?", owner).Order("name ASC").Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Create inserts the ingredient
func (s *IngredientStore) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return s.db.WithContext(ctx).Create(ingredient).Error
}

// Delete removes the ingredient
func (s *IngredientStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).Delete(&models.Ingredient{}).Error
}

// CountRecipeUsage counts the recipe lines referencing the ingredient
func (s *IngredientStore) CountRecipeUsage(ctx context.Context, ingredientID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", ingredientID).Count(&n).Error
	return n, err
}
