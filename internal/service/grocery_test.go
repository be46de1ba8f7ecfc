package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store/memory"
	"github.com/pageza/grocerly/backend/internal/testhelpers"
	"github.com/pageza/grocerly/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

const fixedToday = "09-03-2024"

func newGroceryService(t *testing.T) (*service.GroceryService, *memory.DB) {
	t.Helper()
	db := memory.New()
	return service.NewGroceryService(db, service.WithClock(service.FixedClock(fixedNow))), db
}

func TestMergeOrAdd(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("same key merges into one item", func(t *testing.T) {
		svc, _ := newGroceryService(t)
		first, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Flour", Unit: "g", Quantity: 100})
		require.NoError(t, err)
		assert.Equal(t, fixedToday, first.DateAdded)
		assert.False(t, first.Purchased)

		second, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: " flour ", Unit: "G", Quantity: 50, Note: testhelpers.StrPtr("")})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 150.0, second.Quantity)
		assert.Equal(t, "Flour", second.ItemName, "stored name is kept")

		active, err := svc.ListActive(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})

	t.Run("different notes stay apart", func(t *testing.T) {
		svc, _ := newGroceryService(t)
		a, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Flour", Unit: "g", Quantity: 1, Note: testhelpers.StrPtr("sifted")})
		require.NoError(t, err)
		b, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Flour", Unit: "g", Quantity: 1, Note: testhelpers.StrPtr("organic")})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("caller supplied date is kept", func(t *testing.T) {
		svc, _ := newGroceryService(t)
		item, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Salt", Quantity: 1, DateAdded: "01-01-2020"})
		require.NoError(t, err)
		assert.Equal(t, "01-01-2020", item.DateAdded)
	})

	t.Run("never merges across owners or into purchased items", func(t *testing.T) {
		svc, db := newGroceryService(t)
		stores := db.Stores()
		foreign := testhelpers.CreateTestGroceryItem(t, stores, uuid.New(), "Milk", "l", 1, nil, fixedToday)
		bought := testhelpers.CreateTestGroceryItem(t, stores, owner, "Milk", "l", 1, nil, fixedToday)
		require.NoError(t, svc.MarkPurchased(ctx, []uint{bought.ID}, owner))

		added, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Milk", Unit: "l", Quantity: 2})
		require.NoError(t, err)
		assert.NotEqual(t, foreign.ID, added.ID)
		assert.NotEqual(t, bought.ID, added.ID)
		assert.Equal(t, 2.0, added.Quantity)
	})

	t.Run("legacy duplicates resolve to the lowest id", func(t *testing.T) {
		svc, db := newGroceryService(t)
		stores := db.Stores()
		low := testhelpers.CreateTestGroceryItem(t, stores, owner, "Eggs", "pcs", 6, nil, fixedToday)
		testhelpers.CreateTestGroceryItem(t, stores, owner, "eggs", "pcs", 12, nil, fixedToday)

		merged, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Eggs", Unit: "pcs", Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, low.ID, merged.ID)
		assert.Equal(t, 7.0, merged.Quantity)
	})

	t.Run("rejects invalid candidates", func(t *testing.T) {
		svc, _ := newGroceryService(t)
		for _, c := range []*models.GroceryItem{
			nil,
			{ItemName: "Milk", Quantity: 1},
			{OwnerID: owner, ItemName: "  ", Quantity: 1},
			{OwnerID: owner, ItemName: "Milk", Quantity: -1},
		} {
			_, err := svc.MergeOrAdd(ctx, c)
			assert.ErrorIs(t, err, service.ErrInvalidArgument)
		}
	})
}

func TestAggregateFromRecipesMergesIntoExistingItem(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	milk := testhelpers.CreateTestGroceryItem(t, stores, owner, "Milk", "l", 1, nil, "01-03-2024")
	recipe := testhelpers.CreateTestRecipe(t, stores, owner, "Porridge", 1,
		testhelpers.Line{Name: "Milk", Quantity: 0.5, Unit: "l"})

	items, err := svc.AggregateFromRecipes(ctx, []uint{recipe.ID}, fixedToday, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, milk.ID, items[0].ID)
	assert.InDelta(t, 1.5, items[0].Quantity, 1e-9)
	assert.Equal(t, "01-03-2024", items[0].DateAdded, "merge leaves dateAdded untouched")

	active, err := svc.ListActive(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAggregateFromRecipesIsDeterministic(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	run := func() []*models.GroceryItem {
		svc, db := newGroceryService(t)
		stores := db.Stores()
		pancakes := testhelpers.CreateTestRecipe(t, stores, owner, "Pancakes", 2,
			testhelpers.Line{Name: "Flour", Quantity: 250, Unit: "g"},
			testhelpers.Line{Name: "Egg", Quantity: 2, Unit: "pcs"},
			testhelpers.Line{Name: "Milk", Quantity: 0.5, Unit: "l"})
		bread := testhelpers.CreateTestRecipe(t, stores, owner, "Bread", 1,
			testhelpers.Line{Name: "Salt", Quantity: 5, Unit: "g"},
			testhelpers.Line{Name: "flour", Quantity: 500, Unit: "G"})

		items, err := svc.AggregateFromRecipes(ctx, []uint{pancakes.ID, bread.ID, pancakes.ID}, fixedToday, owner)
		require.NoError(t, err)
		return items
	}

	first, second := run(), run()
	require.Len(t, first, 4)
	require.Len(t, second, 4)

	wantNames := []string{"Flour", "Egg", "Milk", "Salt"}
	wantQty := []float64{1000, 4, 1, 5}
	for i := range first {
		assert.Equal(t, wantNames[i], first[i].ItemName)
		assert.InDelta(t, wantQty[i], first[i].Quantity, 1e-9)
		assert.Equal(t, first[i].ItemName, second[i].ItemName)
		assert.Equal(t, first[i].Unit, second[i].Unit)
		assert.InDelta(t, first[i].Quantity, second[i].Quantity, 1e-9)
		assert.Equal(t, fixedToday, first[i].DateAdded)
	}
}

func TestAggregateFromMealPlansCountsEveryEntry(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	soup := testhelpers.CreateTestRecipe(t, stores, owner, "Soup", 2,
		testhelpers.Line{Name: "Carrot", Quantity: 3, Unit: "pcs"},
		testhelpers.Line{Name: "Stock", Quantity: 1, Unit: "l", Note: testhelpers.StrPtr("low salt")})
	plan := testhelpers.CreateTestMealPlan(t, stores, owner, "Week", []string{"04-03-2024", "06-03-2024"}, soup.ID, soup.ID)

	items, err := svc.AggregateFromMealPlans(ctx, []uint{plan.ID}, "", owner)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 6.0, items[0].Quantity)
	assert.Equal(t, 2.0, items[1].Quantity)
	assert.Equal(t, "low salt", *items[1].Note)
	assert.Equal(t, fixedToday, items[0].DateAdded, "blank date defaults to today")
}

func TestAggregateFailsFastWithoutWrites(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	mine := testhelpers.CreateTestRecipe(t, stores, owner, "Toast", 1, testhelpers.Line{Name: "Bread", Quantity: 2, Unit: "slices"})
	theirs := testhelpers.CreateTestRecipe(t, stores, uuid.New(), "Theirs", 1, testhelpers.Line{Name: "Jam", Quantity: 1, Unit: "tbsp"})

	_, err := svc.AggregateFromRecipes(ctx, []uint{mine.ID, theirs.ID}, fixedToday, owner)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.AggregateFromMealPlans(ctx, []uint{424242}, fixedToday, owner)
	assert.ErrorIs(t, err, service.ErrNotFound)

	active, err := svc.ListActive(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, active, "no partial merge")
}

func TestAggregateEmptyIDs(t *testing.T) {
	svc, _ := newGroceryService(t)
	items, err := svc.AggregateFromRecipes(context.Background(), nil, fixedToday, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.AggregateFromMealPlans(context.Background(), []uint{}, fixedToday, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregateSkipsLinesWithoutIngredient(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	recipe := &models.Recipe{OwnerID: owner, Name: "Half filled", Servings: 1, Ingredients: []models.RecipeIngredient{
		{Quantity: 3, Unit: "g"},
	}}
	require.NoError(t, stores.Recipes.Create(ctx, recipe))

	items, err := svc.AggregateFromRecipes(ctx, []uint{recipe.ID}, fixedToday, owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListActiveOrdersByDateAddedDesc(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	older := testhelpers.CreateTestGroceryItem(t, stores, owner, "A", "", 1, nil, "28-02-2024")
	newer := testhelpers.CreateTestGroceryItem(t, stores, owner, "B", "", 1, nil, "01-03-2024")
	sameDay := testhelpers.CreateTestGroceryItem(t, stores, owner, "C", "", 1, nil, "01-03-2024")
	junk := testhelpers.CreateTestGroceryItem(t, stores, owner, "D", "", 1, nil, "soon")

	active, err := svc.ListActive(ctx, owner)
	require.NoError(t, err)
	var ids []uint
	for _, a := range active {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []uint{sameDay.ID, newer.ID, older.ID, junk.ID}, ids)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	stores := db.Stores()
	owner := uuid.New()

	milk := testhelpers.CreateTestGroceryItem(t, stores, owner, "Milk", "l", 1, nil, fixedToday)
	oats := testhelpers.CreateTestGroceryItem(t, stores, owner, "Oats", "g", 500, nil, fixedToday)

	qty := 2.5
	note := "barista"
	updated, err := svc.UpdateItem(ctx, milk.ID, owner, &types.UpdateGroceryItemRequest{Quantity: &qty, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Quantity)
	assert.Equal(t, "barista", *updated.Note)

	rename := "milk"
	unit := "L"
	_, err = svc.UpdateItem(ctx, oats.ID, owner, &types.UpdateGroceryItemRequest{ItemName: &rename, Unit: &unit})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.UpdateItem(ctx, milk.ID, uuid.New(), &types.UpdateGroceryItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, service.ErrNotFound)

	negative := -1.0
	_, err = svc.UpdateItem(ctx, milk.ID, owner, &types.UpdateGroceryItemRequest{Quantity: &negative})
	assert.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	svc, db := newGroceryService(t)
	owner := uuid.New()
	item := testhelpers.CreateTestGroceryItem(t, db.Stores(), owner, "Milk", "l", 1, nil, fixedToday)

	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID, uuid.New()), service.ErrNotFound)
	require.NoError(t, svc.DeleteItem(ctx, item.ID, owner))
	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID, owner), service.ErrNotFound)
}
