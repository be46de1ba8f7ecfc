package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/grocerly/backend/internal/api"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/router"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store"
	"github.com/pageza/grocerly/backend/internal/testhelpers"
)

var today = time.Date(2024, time.March, 9, 8, 0, 0, 0, time.UTC)

type client struct {
	t      *testing.T
	router *gin.Engine
	owner  uuid.UUID
}

func setup(t *testing.T) *client {
	gin.SetMode(gin.TestMode)
	uow := store.NewUnitOfWork(testhelpers.SetupSQLite(t), nil)
	opts := []service.Option{service.WithClock(service.FixedClock(today))}

	r := router.SetupRouter(router.Handlers{
		Grocery:      api.NewGroceryHandler(service.NewGroceryService(uow, opts...), nil),
		Recipes:      api.NewRecipeHandler(service.NewRecipeService(uow, opts...)),
		Ingredients:  api.NewIngredientHandler(service.NewIngredientService(uow, opts...)),
		MealPlans:    api.NewMealPlanHandler(service.NewMealPlanService(uow, opts...)),
		GroceryLists: api.NewGroceryListHandler(service.NewGroceryListService(uow, opts...), nil),
		Health:       api.NewHealthHandler(nil),
	}, nil, nil)
	return &client{t: t, router: r, owner: uuid.New()}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OwnerHeader, c.owner.String())
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (c *client) createRecipe(body map[string]any) uint {
	c.t.Helper()
	code, out := c.do(http.MethodPost, "/api/v1/recipes", body)
	require.Equal(c.t, http.StatusCreated, code, out)
	return uint(out["recipe"].(map[string]any)["id"].(float64))
}

func items(out map[string]any) []map[string]any {
	raw := out["items"].([]any)
	res := make([]map[string]any, len(raw))
	for i, r := range raw {
		res[i] = r.(map[string]any)
	}
	return res
}

func TestShoppingFlow(t *testing.T) {
	c := setup(t)

	code, out := c.do(http.MethodPost, "/api/v1/groceryitems", map[string]any{"item_name": "Milk", "unit": "l", "quantity": 1})
	require.Equal(t, http.StatusOK, code, out)
	milkID := out["item"].(map[string]any)["id"].(float64)

	porridge := c.createRecipe(map[string]any{
		"name":     "Porridge",
		"servings": 1,
		"ingredients": []map[string]any{
			{"ingredient_name": "milk", "quantity": 0.5, "unit": "L"},
			{"ingredient_name": "Oats", "quantity": 80, "unit": "g"},
		},
	})

	code, out = c.do(http.MethodPost, "/api/v1/groceryitems/generate-from-recipes", map[string]any{"ids": []uint{porridge}})
	require.Equal(t, http.StatusOK, code, out)
	got := items(out)
	require.Len(t, got, 2)
	assert.Equal(t, milkID, got[0]["id"])
	assert.InDelta(t, 1.5, got[0]["quantity"], 1e-9)
	assert.Equal(t, "09-03-2024", got[1]["date_added"])

	code, out = c.do(http.MethodGet, "/api/v1/groceryitems/active", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, items(out), 2)

	code, _ = c.do(http.MethodPost, "/api/v1/groceryitems/mark-purchased", map[string]any{"ids": []float64{milkID}})
	require.Equal(t, http.StatusNoContent, code)

	_, out = c.do(http.MethodGet, "/api/v1/groceryitems/purchased", nil)
	purchased := items(out)
	require.Len(t, purchased, 1)
	assert.Equal(t, "09-03-2024", purchased[0]["date_purchased"])

	code, _ = c.do(http.MethodPost, "/api/v1/groceryitems/undo-purchased", map[string]any{"ids": []float64{milkID}})
	require.Equal(t, http.StatusNoContent, code)
	_, out = c.do(http.MethodGet, "/api/v1/groceryitems/active", nil)
	assert.Len(t, items(out), 2)
}

func TestMealPlanToSavedList(t *testing.T) {
	c := setup(t)

	soup := c.createRecipe(map[string]any{
		"name":     "Soup",
		"servings": 2,
		"ingredients": []map[string]any{
			{"ingredient_name": "Carrot", "quantity": 3, "unit": "pcs"},
		},
	})
	code, out := c.do(http.MethodPost, "/api/v1/mealplans", map[string]any{
		"name": "Week 10",
		"entries": []map[string]any{
			{"recipe_id": soup, "date": "04-03-2024"},
			{"recipe_id": soup, "date": "06-03-2024"},
		},
	})
	require.Equal(t, http.StatusCreated, code, out)
	planID := uint(out["meal_plan"].(map[string]any)["id"].(float64))

	code, out = c.do(http.MethodPost, fmt.Sprintf("/api/v1/grocerylists/generate/mealplan/%d", planID),
		map[string]any{"name": "Weekly", "date": "09-03-2024"})
	require.Equal(t, http.StatusOK, code, out)
	preview := out["grocery_list"].(map[string]any)
	entries := preview["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, 6.0, entries[0].(map[string]any)["quantity"])

	code, out = c.do(http.MethodPost, "/api/v1/grocerylists", map[string]any{
		"name":         "Weekly",
		"date":         "09-03-2024",
		"meal_plan_id": planID,
		"entries":      entries,
	})
	require.Equal(t, http.StatusCreated, code, out)

	// a recipe used by a meal plan cannot be removed
	code, out = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", soup), nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, api.CodeConflict, out["code"])
}

func TestRescaleOverHTTP(t *testing.T) {
	c := setup(t)

	pancakes := c.createRecipe(map[string]any{
		"name":     "Pancakes",
		"servings": 2,
		"ingredients": []map[string]any{
			{"ingredient_name": "Flour", "quantity": 250, "unit": "g"},
			{"ingredient_name": "Egg", "quantity": 2, "unit": "pcs"},
			{"ingredient_name": "Milk", "quantity": 0.5, "unit": "l"},
		},
	})

	code, out := c.do(http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d/servings", pancakes), map[string]any{"servings": 4})
	require.Equal(t, http.StatusOK, code, out)
	lines := out["recipe"].(map[string]any)["ingredients"].([]any)
	want := []float64{500, 4, 1}
	for i, l := range lines {
		assert.InDelta(t, want[i], l.(map[string]any)["quantity"], 1e-9)
	}

	code, out = c.do(http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d/servings", pancakes), map[string]any{"servings": 101})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, api.CodeInvalidArgument, out["code"])
}
