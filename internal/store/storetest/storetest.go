// Package storetest holds the behaviour every service.UnitOfWork
// implementation must share. Store packages run it from their tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty unit of work.
type Factory func(t *testing.T) service.UnitOfWork

func strPtr(s string) *string { return &s }

// Run executes the contract against units of work built by newUOW.
func Run(t *testing.T, newUOW Factory) {
	t.Run("grocery items", func(t *testing.T) { testGroceryItems(t, newUOW(t)) })
	t.Run("merge candidates", func(t *testing.T) { testMergeCandidates(t, newUOW(t)) })
	t.Run("recipes", func(t *testing.T) { testRecipes(t, newUOW(t)) })
	t.Run("meal plans", func(t *testing.T) { testMealPlans(t, newUOW(t)) })
	t.Run("ingredients", func(t *testing.T) { testIngredients(t, newUOW(t)) })
	t.Run("grocery lists", func(t *testing.T) { testGroceryLists(t, newUOW(t)) })
	t.Run("rollback", func(t *testing.T) { testRollback(t, newUOW(t)) })
}

func testGroceryItems(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	items := uow.Stores().GroceryItems
	owner, other := uuid.New(), uuid.New()

	milk := &models.GroceryItem{OwnerID: owner, ItemName: "Milk", Unit: "l", Quantity: 1, DateAdded: "01-02-2024"}
	require.NoError(t, items.Save(ctx, milk))
	require.NotZero(t, milk.ID)

	foreign := &models.GroceryItem{OwnerID: other, ItemName: "Milk", Unit: "l", Quantity: 3, DateAdded: "01-02-2024"}
	require.NoError(t, items.Save(ctx, foreign))

	got, err := items.FindByID(ctx, milk.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Milk", got.ItemName)
	assert.Nil(t, got.Note)

	got, err = items.FindByID(ctx, foreign.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, got, "items of other owners are invisible")

	gotAll, err := items.FindByIDs(ctx, []uint{milk.ID, foreign.ID, 9999}, owner)
	require.NoError(t, err)
	require.Len(t, gotAll, 1)
	assert.Equal(t, milk.ID, gotAll[0].ID)

	date := "02-02-2024"
	milk.MarkPurchased(date)
	require.NoError(t, items.Save(ctx, milk))

	active, err := items.FindActiveByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, active)

	purchased, err := items.FindPurchasedByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, purchased, 1)
	require.NotNil(t, purchased[0].DatePurchased)
	assert.Equal(t, date, *purchased[0].DatePurchased)

	require.NoError(t, items.Delete(ctx, milk.ID, owner))
	got, err = items.FindByID(ctx, milk.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, items.Delete(ctx, foreign.ID, owner))
	still, err := items.FindByID(ctx, foreign.ID, other)
	require.NoError(t, err)
	assert.NotNil(t, still, "delete is owner scoped")
}

func testMergeCandidates(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	items := uow.Stores().GroceryItems
	owner := uuid.New()

	seed := []*models.GroceryItem{
		{OwnerID: owner, ItemName: "  Flour ", Unit: "G", Quantity: 100},
		{OwnerID: owner, ItemName: "flour", Unit: "g", Quantity: 50, Note: strPtr("Organic")},
		{OwnerID: owner, ItemName: "flour", Unit: "g", Quantity: 20, Note: strPtr("sifted")},
		{OwnerID: owner, ItemName: "flour", Unit: "kg", Quantity: 1},
		{OwnerID: owner, ItemName: "flour", Unit: "g", Quantity: 5, Purchased: true, DatePurchased: strPtr("01-01-2024")},
		{OwnerID: uuid.New(), ItemName: "flour", Unit: "g", Quantity: 7},
	}
	for _, item := range seed {
		require.NoError(t, items.Save(ctx, item))
	}

	ids := func(found []*models.GroceryItem) []uint {
		out := make([]uint, 0, len(found))
		for _, f := range found {
			out = append(out, f.ID)
		}
		return out
	}

	found, err := items.FindMergeCandidates(ctx, "FLOUR", " g", nil, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{seed[0].ID, seed[1].ID, seed[2].ID}, ids(found))

	found, err = items.FindMergeCandidates(ctx, "flour", "g", strPtr(" organic "), owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{seed[0].ID, seed[1].ID}, ids(found))

	found, err = items.FindMergeCandidates(ctx, "sugar", "g", nil, owner)
	require.NoError(t, err)
	assert.Empty(t, found)

	// names are folded with full Unicode case rules and any surrounding whitespace
	eclair := &models.GroceryItem{OwnerID: owner, ItemName: "ÉCLAIR", Unit: "pcs", Quantity: 2}
	milk := &models.GroceryItem{OwnerID: owner, ItemName: "Milk\t", Unit: "L\n", Quantity: 1, Note: strPtr("\tFresh ")}
	require.NoError(t, items.Save(ctx, eclair))
	require.NoError(t, items.Save(ctx, milk))

	found, err = items.FindMergeCandidates(ctx, "éclair", "PCS", nil, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{eclair.ID}, ids(found))

	found, err = items.FindMergeCandidates(ctx, "milk", "l", strPtr("fresh"), owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{milk.ID}, ids(found))

	// renaming an item moves it to its new key
	eclair.ItemName = "Beignet"
	require.NoError(t, items.Save(ctx, eclair))
	found, err = items.FindMergeCandidates(ctx, "éclair", "pcs", nil, owner)
	require.NoError(t, err)
	assert.Empty(t, found)
	found, err = items.FindMergeCandidates(ctx, " BEIGNET", "pcs", nil, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{eclair.ID}, ids(found))
}

func seedRecipe(t *testing.T, stores service.Stores, owner uuid.UUID, name string, servings int, lines map[string]float64, order []string) *models.Recipe {
	t.Helper()
	ctx := context.Background()
	recipe := &models.Recipe{OwnerID: owner, Name: name, Servings: servings}
	for i, ingName := range order {
		ing, err := stores.Ingredients.FindByName(ctx, ingName, owner)
		require.NoError(t, err)
		if ing == nil {
			ing = &models.Ingredient{OwnerID: owner, Name: ingName}
			require.NoError(t, stores.Ingredients.Create(ctx, ing))
		}
		id := ing.ID
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: &id, Quantity: lines[ingName], Unit: "g", Position: i,
		})
	}
	require.NoError(t, stores.Recipes.Create(ctx, recipe))
	return recipe
}

func testRecipes(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	stores := uow.Stores()
	owner := uuid.New()

	recipe := seedRecipe(t, stores, owner, "Pancakes", 2,
		map[string]float64{"Flour": 250, "Egg": 2, "Salt": 0.5}, []string{"Flour", "Egg", "Salt"})
	require.NotZero(t, recipe.ID)

	got, err := stores.Recipes.FindByID(ctx, recipe.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "Flour", got.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "Salt", got.Ingredients[2].Ingredient.Name)

	missing, err := stores.Recipes.FindByID(ctx, recipe.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.Servings = 4
	for i := range got.Ingredients {
		got.Ingredients[i].Quantity *= 2
	}
	require.NoError(t, stores.Recipes.Save(ctx, got))

	reloaded, err := stores.Recipes.FindByID(ctx, recipe.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Servings)
	assert.InDelta(t, 500, reloaded.Ingredients[0].Quantity, 1e-9)
	assert.InDelta(t, 1, reloaded.Ingredients[2].Quantity, 1e-9)

	all, err := stores.Recipes.FindAllByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	n, err := stores.Recipes.CountMealPlanUsage(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, stores.Recipes.Delete(ctx, recipe.ID, owner))
	gone, err := stores.Recipes.FindByID(ctx, recipe.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testMealPlans(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	stores := uow.Stores()
	owner := uuid.New()

	recipe := seedRecipe(t, stores, owner, "Soup", 2, map[string]float64{"Carrot": 3}, []string{"Carrot"})
	rid := recipe.ID
	plan := &models.MealPlan{OwnerID: owner, Name: "Week", Entries: []models.MealPlanEntry{
		{RecipeID: &rid, Date: "01-03-2024"},
		{RecipeID: &rid, Date: "02-03-2024"},
	}}
	require.NoError(t, stores.MealPlans.Create(ctx, plan))

	got, err := stores.MealPlans.FindByID(ctx, plan.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Entries, 2)
	for _, e := range got.Entries {
		require.NotNil(t, e.Recipe)
		require.Len(t, e.Recipe.Ingredients, 1)
		require.NotNil(t, e.Recipe.Ingredients[0].Ingredient)
		assert.Equal(t, "Carrot", e.Recipe.Ingredients[0].Ingredient.Name)
	}

	n, err := stores.Recipes.CountMealPlanUsage(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := stores.MealPlans.FindAllByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, stores.MealPlans.Delete(ctx, plan.ID, owner))
	n, err = stores.Recipes.CountMealPlanUsage(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "entries go with their plan")
}

func testIngredients(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	stores := uow.Stores()
	owner := uuid.New()

	basil := &models.Ingredient{OwnerID: owner, Name: "basil"}
	require.NoError(t, stores.Ingredients.Create(ctx, basil))

	got, err := stores.Ingredients.FindByName(ctx, " BASIL ", owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, basil.ID, got.ID)

	got, err = stores.Ingredients.FindByName(ctx, "basil", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	recipe := seedRecipe(t, stores, owner, "Pesto", 1, map[string]float64{"basil": 30}, []string{"basil"})
	n, err := stores.Ingredients.CountRecipeUsage(ctx, basil.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, stores.Recipes.Delete(ctx, recipe.ID, owner))
	n, err = stores.Ingredients.CountRecipeUsage(ctx, basil.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, stores.Ingredients.Delete(ctx, basil.ID, owner))
	all, err := stores.Ingredients.FindAllByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testGroceryLists(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	stores := uow.Stores()
	owner := uuid.New()

	list := &models.GroceryList{OwnerID: owner, Name: "Saturday", Date: "06-04-2024", Entries: []models.GroceryListEntry{
		{IngredientName: "Milk", Unit: "l", Quantity: 1.5},
		{IngredientName: "Eggs", Unit: "pcs", Quantity: 6, Note: strPtr("free range")},
	}}
	require.NoError(t, stores.GroceryLists.Create(ctx, list))

	got, err := stores.GroceryLists.FindByID(ctx, list.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Milk", got.Entries[0].IngredientName)
	assert.Equal(t, "free range", *got.Entries[1].Note)

	all, err := stores.GroceryLists.FindAllByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, stores.GroceryLists.Delete(ctx, list.ID, owner))
	got, err = stores.GroceryLists.FindByID(ctx, list.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testRollback(t *testing.T, uow service.UnitOfWork) {
	ctx := context.Background()
	owner := uuid.New()
	boom := errors.New("boom")

	err := uow.WithinOwner(ctx, owner, func(tx service.Stores) error {
		item := &models.GroceryItem{OwnerID: owner, ItemName: "Bread", Quantity: 1}
		if err := tx.GroceryItems.Save(ctx, item); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	active, err := uow.Stores().GroceryItems.FindActiveByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, active, "failed work leaves no writes behind")

	err = uow.WithinOwner(ctx, owner, func(tx service.Stores) error {
		return tx.GroceryItems.Save(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Bread", Quantity: 1})
	})
	require.NoError(t, err)
	active, err = uow.Stores().GroceryItems.FindActiveByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
