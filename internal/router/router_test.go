package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/api"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := memory.New()
	return SetupRouter(Handlers{
		Grocery:      api.NewGroceryHandler(service.NewGroceryService(db), nil),
		Recipes:      api.NewRecipeHandler(service.NewRecipeService(db)),
		Ingredients:  api.NewIngredientHandler(service.NewIngredientService(db)),
		MealPlans:    api.NewMealPlanHandler(service.NewMealPlanService(db)),
		GroceryLists: api.NewGroceryListHandler(service.NewGroceryListService(db), nil),
		Health:       api.NewHealthHandler(map[string]api.Pinger{"store": func(context.Context) error { return nil }}),
	}, nil, nil)
}

func TestHealthRoute(t *testing.T) {
	router := newRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestV1RoutesRequireOwner(t *testing.T) {
	router := newRouter()
	for _, path := range []string{"/api/v1/groceryitems/active", "/api/v1/recipes", "/api/v1/ingredients", "/api/v1/mealplans", "/api/v1/grocerylists"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.OwnerHeader, uuid.NewString())
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}
