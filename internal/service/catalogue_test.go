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

func TestIngredientService(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewIngredientService(db)
	owner := uuid.New()

	salt, err := svc.CreateIngredient(ctx, owner, "  Salt ")
	require.NoError(t, err)
	assert.Equal(t, "Salt", salt.Name)

	_, err = svc.CreateIngredient(ctx, owner, "salt")
	assert.ErrorIs(t, err, service.ErrConflict)
	_, err = svc.CreateIngredient(ctx, owner, "")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	// another owner has a separate catalogue
	_, err = svc.CreateIngredient(ctx, uuid.New(), "Salt")
	require.NoError(t, err)

	list, err := svc.ListIngredients(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Brine", 1, testhelpers.Line{Name: "Salt", Quantity: 30, Unit: "g"})
	assert.ErrorIs(t, svc.DeleteIngredient(ctx, salt.ID, owner), service.ErrConflict)

	pepper, err := svc.CreateIngredient(ctx, owner, "Pepper")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteIngredient(ctx, pepper.ID, owner))
	assert.ErrorIs(t, svc.DeleteIngredient(ctx, pepper.ID, owner), service.ErrNotFound)
}

func TestMealPlanService(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := service.NewMealPlanService(db)
	owner := uuid.New()

	soup := testhelpers.CreateTestRecipe(t, db.Stores(), owner, "Soup", 2, testhelpers.Line{Name: "Leek", Quantity: 1, Unit: "pcs"})

	plan, err := svc.CreateMealPlan(ctx, owner, &types.CreateMealPlanRequest{
		Name: "Week 10",
		Entries: []types.MealPlanEntryInput{
			{RecipeID: soup.ID, Date: "04-03-2024"},
			{RecipeID: soup.ID, Date: "05-03-2024"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 2)
	require.NotNil(t, plan.Entries[0].Recipe)
	assert.Equal(t, "Soup", plan.Entries[0].Recipe.Name)

	_, err = svc.CreateMealPlan(ctx, owner, &types.CreateMealPlanRequest{
		Name:    "Broken",
		Entries: []types.MealPlanEntryInput{{RecipeID: 777, Date: "04-03-2024"}},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.CreateMealPlan(ctx, owner, &types.CreateMealPlanRequest{Name: ""})
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	plans, err := svc.ListMealPlans(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	_, err = svc.GetMealPlan(ctx, plan.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.DeleteMealPlan(ctx, plan.ID, owner))
	_, err = svc.GetMealPlan(ctx, plan.ID, owner)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
