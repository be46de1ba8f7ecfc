package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/types"
	"go.uber.org/zap"
)

// RecipeService handles recipe operations
type RecipeService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(uow UnitOfWork, opts ...Option) *RecipeService {
	o := buildOptions(opts)
	return &RecipeService{
		uow:    uow,
		logger: o.logger.Named("recipe"),
	}
}

// CreateRecipe creates a new recipe, resolving each line's ingredient by id
// or by name and adding unknown names to the owner's catalogue.
func (s *RecipeService) CreateRecipe(ctx context.Context, owner uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if req == nil {
		return nil, invalidf("recipe request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("recipe name is required")
	}
	if err := ValidateServings(req.Servings); err != nil {
		return nil, err
	}

	var created *models.Recipe
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		recipe := &models.Recipe{
			OwnerID:     owner,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Servings:    req.Servings,
		}
		for i, in := range req.Ingredients {
			ingredient, err := resolveIngredient(ctx, tx.Ingredients, owner, in)
			if err != nil {
				return err
			}
			id := ingredient.ID
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				IngredientID: &id,
				Quantity:     in.Quantity,
				Unit:         in.Unit,
				Note:         in.Note,
				Position:     i,
			})
		}
		if err := tx.Recipes.Create(ctx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		var err error
		created, err = tx.Recipes.FindByID(ctx, recipe.ID, owner)
		if err != nil {
			return fmt.Errorf("failed to reload recipe %d: %w", recipe.ID, err)
		}
		if created == nil {
			return notFoundf("recipe %d", recipe.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created recipe", zapOwner(owner), zap.Uint("recipe_id", created.ID))
	return created, nil
}

func resolveIngredient(ctx context.Context, store IngredientStore, owner uuid.UUID, in types.RecipeIngredientInput) (*models.Ingredient, error) {
	if in.IngredientID != nil {
		ingredient, err := store.FindByID(ctx, *in.IngredientID, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingredient %d: %w", *in.IngredientID, err)
		}
		if ingredient == nil {
			return nil, notFoundf("ingredient %d", *in.IngredientID)
		}
		return ingredient, nil
	}

	name := strings.TrimSpace(in.IngredientName)
	if name == "" {
		return nil, invalidf("ingredient line needs an ingredient id or name")
	}
	ingredient, err := store.FindByName(ctx, name, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}
	if ingredient != nil {
		return ingredient, nil
	}

	ingredient = &models.Ingredient{OwnerID: owner, Name: name}
	if err := store.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to create ingredient %q: %w", name, err)
	}
	return ingredient, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.uow.Stores().Recipes.FindByID(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %d: %w", id, err)
	}
	if recipe == nil {
		return nil, notFoundf("recipe %d", id)
	}
	return recipe, nil
}

// ListRecipes returns every recipe of the owner
func (s *RecipeService) ListRecipes(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error) {
	recipes, err := s.uow.Stores().Recipes.FindAllByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// DeleteRecipe deletes a recipe that no meal plan references
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		recipe, err := tx.Recipes.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load recipe %d: %w", id, err)
		}
		if recipe == nil {
			return notFoundf("recipe %d", id)
		}

		used, err := tx.Recipes.CountMealPlanUsage(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count meal plan usage of recipe %d: %w", id, err)
		}
		if used > 0 {
			return conflictf("recipe %d is used by %d meal plan entries", id, used)
		}
		if err := tx.Recipes.Delete(ctx, id, owner); err != nil {
			return fmt.Errorf("failed to delete recipe %d: %w", id, err)
		}
		return nil
	})
}

// Rescale sets the serving count of one recipe and scales its lines.
func (s *RecipeService) Rescale(ctx context.Context, recipeID uint, newServings int, owner uuid.UUID) error {
	if err := ValidateServings(newServings); err != nil {
		return err
	}
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		recipe, err := tx.Recipes.FindByID(ctx, recipeID, owner)
		if err != nil {
			return fmt.Errorf("failed to load recipe %d: %w", recipeID, err)
		}
		if recipe == nil {
			return notFoundf("recipe %d", recipeID)
		}
		if err := Rescale(recipe, newServings); err != nil {
			return fmt.Errorf("recipe %d: %w", recipeID, err)
		}
		if err := tx.Recipes.Save(ctx, recipe); err != nil {
			return fmt.Errorf("failed to save recipe %d: %w", recipeID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("rescaled recipe", zapOwner(owner), zap.Uint("recipe_id", recipeID), zap.Int("servings", newServings))
	return nil
}

// RescaleAllDefault rescales every recipe of the owner to newServings in one
// transaction. Recipes without a usable serving count are skipped and logged.
func (s *RecipeService) RescaleAllDefault(ctx context.Context, newServings int, owner uuid.UUID) error {
	if err := ValidateServings(newServings); err != nil {
		return err
	}

	var count int
	var skippedIDs []uint
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		recipes, err := tx.Recipes.FindAllByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}
		skipped, err := RescaleAll(recipes, newServings)
		if err != nil {
			return err
		}
		unscaled := make(map[*models.Recipe]bool, len(skipped))
		for _, r := range skipped {
			unscaled[r] = true
			skippedIDs = append(skippedIDs, r.ID)
		}
		for _, r := range recipes {
			if unscaled[r] {
				continue
			}
			if err := tx.Recipes.Save(ctx, r); err != nil {
				return fmt.Errorf("failed to save recipe %d: %w", r.ID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(skippedIDs) > 0 {
		s.logger.Warn("skipped recipes without servings", zapOwner(owner), zap.Uints("recipe_ids", skippedIDs))
	}
	s.logger.Info("rescaled all recipes", zapOwner(owner), zap.Int("recipes", count), zap.Int("servings", newServings))
	return nil
}
