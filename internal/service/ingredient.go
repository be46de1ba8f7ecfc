package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"go.uber.org/zap"
)

// IngredientService manages the owner's ingredient catalogue
type IngredientService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

var _ IIngredientService = (*IngredientService)(nil)

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(uow UnitOfWork, opts ...Option) *IngredientService {
	o := buildOptions(opts)
	return &IngredientService{uow: uow, logger: o.logger.Named("ingredient")}
}

// CreateIngredient adds name to the catalogue. Names are unique per owner
// ignoring case.
func (s *IngredientService) CreateIngredient(ctx context.Context, owner uuid.UUID, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("ingredient name is required")
	}

	var created *models.Ingredient
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		existing, err := tx.Ingredients.FindByName(ctx, name, owner)
		if err != nil {
			return fmt.Errorf("failed to look up ingredient %q: %w", name, err)
		}
		if existing != nil {
			return conflictf("ingredient %q already exists", existing.Name)
		}
		created = &models.Ingredient{OwnerID: owner, Name: name}
		if err := tx.Ingredients.Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create ingredient %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("created ingredient", zapOwner(owner), zap.Uint("ingredient_id", created.ID))
	return created, nil
}

// ListIngredients returns the owner's catalogue
func (s *IngredientService) ListIngredients(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error) {
	ingredients, err := s.uow.Stores().Ingredients.FindAllByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// DeleteIngredient removes an ingredient no recipe line uses
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		ingredient, err := tx.Ingredients.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load ingredient %d: %w", id, err)
		}
		if ingredient == nil {
			return notFoundf("ingredient %d", id)
		}
		used, err := tx.Ingredients.CountRecipeUsage(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count recipe usage of ingredient %d: %w", id, err)
		}
		if used > 0 {
			return conflictf("ingredient %d is used by %d recipe lines", id, used)
		}
		return tx.Ingredients.Delete(ctx, id, owner)
	})
}
