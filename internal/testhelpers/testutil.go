package testhelpers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/stretchr/testify/require"
)

// Line describes one ingredient line of a fixture recipe.
type Line struct {
	Name     string
	Quantity float64
	Unit     string
	Note     *string
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string { return &s }

// CreateTestIngredient returns the owner's ingredient called name, creating it
// when missing.
func CreateTestIngredient(t *testing.T, stores service.Stores, owner uuid.UUID, name string) *models.Ingredient {
	t.Helper()
	ctx := context.Background()
	ing, err := stores.Ingredients.FindByName(ctx, name, owner)
	require.NoError(t, err)
	if ing != nil {
		return ing
	}
	ing = &models.Ingredient{OwnerID: owner, Name: name}
	require.NoError(t, stores.Ingredients.Create(ctx, ing))
	return ing
}

// CreateTestRecipe stores a recipe with the given lines in order
func CreateTestRecipe(t *testing.T, stores service.Stores, owner uuid.UUID, name string, servings int, lines ...Line) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{OwnerID: owner, Name: name, Servings: servings}
	for i, l := range lines {
		ing := CreateTestIngredient(t, stores, owner, l.Name)
		id := ing.ID
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: &id,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
			Note:         l.Note,
			Position:     i,
		})
	}
	require.NoError(t, stores.Recipes.Create(context.Background(), recipe))
	return recipe
}

// CreateTestMealPlan stores a plan with one entry per recipe id, dated in order
func CreateTestMealPlan(t *testing.T, stores service.Stores, owner uuid.UUID, name string, dates []string, recipeIDs ...uint) *models.MealPlan {
	t.Helper()
	require.Len(t, dates, len(recipeIDs))
	plan := &models.MealPlan{OwnerID: owner, Name: name}
	for i, rid := range recipeIDs {
		id := rid
		plan.Entries = append(plan.Entries, models.MealPlanEntry{RecipeID: &id, Date: dates[i]})
	}
	require.NoError(t, stores.MealPlans.Create(context.Background(), plan))
	return plan
}

// CreateTestGroceryItem stores an active grocery item
func CreateTestGroceryItem(t *testing.T, stores service.Stores, owner uuid.UUID, name, unit string, quantity float64, note *string, dateAdded string) *models.GroceryItem {
	t.Helper()
	item := &models.GroceryItem{
		OwnerID:   owner,
		ItemName:  name,
		Unit:      unit,
		Quantity:  quantity,
		Note:      note,
		DateAdded: dateAdded,
	}
	require.NoError(t, stores.GroceryItems.Save(context.Background(), item))
	return item
}
