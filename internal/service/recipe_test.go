package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store/memory"
	"github.com/pageza/grocerly/backend/internal/testhelpers"
	"github.com/pageza/grocerly/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeResolvesIngredients(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewRecipeService(db)
	owner := uuid.New()

	flour := testhelpers.CreateTestIngredient(t, db.Stores(), owner, "Flour")
	flourID := flour.ID

	recipe, err := svc.CreateRecipe(ctx, owner, &types.CreateRecipeRequest{
		Name:     " Pancakes ",
		Servings: 2,
		Ingredients: []types.RecipeIngredientInput{
			{IngredientID: &flourID, Quantity: 250, Unit: "g"},
			{IngredientName: "Egg", Quantity: 2, Unit: "pcs"},
			{IngredientName: "flour", Quantity: 10, Unit: "g", Note: testhelpers.StrPtr("for dusting")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", recipe.Name)
	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, flour.ID, *recipe.Ingredients[0].IngredientID)
	assert.Equal(t, "Egg", recipe.Ingredients[1].Ingredient.Name)
	assert.Equal(t, flour.ID, *recipe.Ingredients[2].IngredientID, "names resolve case-insensitively")

	catalogue, err := db.Stores().Ingredients.FindAllByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, catalogue, 2)
}

func TestCreateRecipeValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewRecipeService(memory.New())
	owner := uuid.New()
	missing := uint(999)

	for name, req := range map[string]*types.CreateRecipeRequest{
		"nil request":     nil,
		"blank name":      {Name: " ", Servings: 2},
		"zero servings":   {Name: "Soup", Servings: 0},
		"too many":        {Name: "Soup", Servings: 101},
		"nameless line":   {Name: "Soup", Servings: 2, Ingredients: []types.RecipeIngredientInput{{Quantity: 1, Unit: "g"}}},
		"unknown id line": {Name: "Soup", Servings: 2, Ingredients: []types.RecipeIngredientInput{{IngredientID: &missing, Quantity: 1, Unit: "g"}}},
	} {
		_, err := svc.CreateRecipe(ctx, owner, req)
		assert.Error(t, err, name)
		if name == "unknown id line" {
			assert.ErrorIs(t, err, service.ErrNotFound)
		} else {
			assert.ErrorIs(t, err, service.ErrInvalidArgument, name)
		}
	}

	recipes, err := svc.ListRecipes(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestRecipeServiceRescalePersists(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewRecipeService(db)
	owner := uuid.New()

	recipe := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Pancakes", 2,
		testhelpers.Line{Name: "Flour", Quantity: 250, Unit: "g"},
		testhelpers.Line{Name: "Egg", Quantity: 2, Unit: "pcs"},
		testhelpers.Line{Name: "Milk", Quantity: 0.5, Unit: "l"})

	require.NoError(t, svc.Rescale(ctx, recipe.ID, 4, owner))
	got, err := svc.GetRecipe(ctx, recipe.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Servings)
	assert.InDelta(t, 500, got.Ingredients[0].Quantity, 1e-9)
	assert.InDelta(t, 4, got.Ingredients[1].Quantity, 1e-9)
	assert.InDelta(t, 1, got.Ingredients[2].Quantity, 1e-9)

	assert.ErrorIs(t, svc.Rescale(ctx, recipe.ID, 0, owner), service.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Rescale(ctx, recipe.ID, 3, uuid.New()), service.ErrNotFound)
}

func TestRescaleAllDefault(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewRecipeService(db)
	owner := uuid.New()

	a := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "A", 2, testhelpers.Line{Name: "Rice", Quantity: 200, Unit: "g"})
	b := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "B", 4, testhelpers.Line{Name: "Beans", Quantity: 400, Unit: "g"})

	require.NoError(t, svc.RescaleAllDefault(ctx, 1, owner))
	for id, want := range map[uint]float64{a.ID: 100, b.ID: 100} {
		got, err := svc.GetRecipe(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Servings)
		assert.InDelta(t, want, got.Ingredients[0].Quantity, 1e-9)
	}

	// a recipe without servings is skipped, the others are still reset
	broken := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Broken", 0, testhelpers.Line{Name: "Salt", Quantity: 1, Unit: "g"})
	require.NoError(t, svc.RescaleAllDefault(ctx, 3, owner))

	got, err := svc.GetRecipe(ctx, a.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Servings)
	assert.InDelta(t, 300, got.Ingredients[0].Quantity, 1e-9)

	got, err = svc.GetRecipe(ctx, broken.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Servings)
	assert.InDelta(t, 1, got.Ingredients[0].Quantity, 1e-9)

	assert.ErrorIs(t, svc.RescaleAllDefault(ctx, 101, owner), service.ErrInvalidArgument)
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewRecipeService(db)
	owner := uuid.New()

	used := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Used", 1, testhelpers.Line{Name: "Rice", Quantity: 1, Unit: "cup"})
	free := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Free", 1)
	testhelpers.CreateTestMealPlan(t, db.Stores(), owner, "Week", []string{"04-03-2024"}, used.ID)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, used.ID, owner), service.ErrConflict)
	require.NoError(t, svc.DeleteRecipe(ctx, free.ID, owner))
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, free.ID, owner), service.ErrNotFound)

	_, err := svc.GetRecipe(ctx, free.ID, owner)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
