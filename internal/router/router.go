package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/grocerly/backend/internal/api"
	"github.com/pageza/grocerly/backend/internal/middleware"
)

// Handlers groups the route owners mounted under /api/v1
type Handlers struct {
	Grocery      *api.GroceryHandler
	Recipes      *api.RecipeHandler
	Ingredients  *api.IngredientHandler
	MealPlans    *api.MealPlanHandler
	GroceryLists *api.GroceryListHandler
	Health       *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, corsOrigins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(corsOrigins),
	)

	if h.Health != nil {
		router.GET("/health", h.Health.HealthCheck)
		router.GET("/api/health", h.Health.HealthCheck)
	}

	// every v1 route acts on one owner's data
	v1 := router.Group("/api/v1", middleware.Owner())
	for _, r := range []interface{ RegisterRoutes(*gin.RouterGroup) }{
		h.Grocery, h.Recipes, h.Ingredients, h.MealPlans, h.GroceryLists,
	} {
		r.RegisterRoutes(v1)
	}

	return router
}
