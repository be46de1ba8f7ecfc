package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
)

// GroceryListHandler serves saved grocery list snapshots
type GroceryListHandler struct {
	service service.IGroceryListService
	limiter *middleware.RateLimiter
}

func NewGroceryListHandler(svc service.IGroceryListService, limiter *middleware.RateLimiter) *GroceryListHandler {
	return &GroceryListHandler{service: svc, limiter: limiter}
}

func (h *GroceryListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/grocerylists")
	{
		lists.GET("", h.ListLists)
		lists.POST("", h.SaveList)
		lists.GET("/:id", h.GetList)
		lists.DELETE("/:id", h.DeleteList)

		generate := lists.Group("/generate")
		if h.limiter != nil {
			generate.Use(h.limiter.Middleware())
		}
		generate.POST("/mealplan/:id", h.GenerateFromMealPlan)
		generate.POST("/recipes", h.GenerateFromRecipes)
	}
}

// GenerateFromMealPlan previews a list for the meal plan without saving it
func (h *GroceryListHandler) GenerateFromMealPlan(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.GenerateListFromMealPlanRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	list, err := h.service.GenerateFromMealPlan(c.Request.Context(), id, req.Name, req.Date, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_list": list})
}

// GenerateFromRecipes previews a list for the recipes without saving it
func (h *GroceryListHandler) GenerateFromRecipes(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.GenerateListFromRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	list, err := h.service.GenerateFromRecipes(c.Request.Context(), req.RecipeIDs, req.Name, req.Date, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_list": list})
}

func (h *GroceryListHandler) SaveList(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.SaveGroceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	list := &models.GroceryList{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(req.Name),
		Date:       strings.TrimSpace(req.Date),
		MealPlanID: req.MealPlanID,
	}
	for _, e := range req.Entries {
		list.Entries = append(list.Entries, models.GroceryListEntry{
			IngredientID:   e.IngredientID,
			IngredientName: e.IngredientName,
			Unit:           e.Unit,
			Note:           e.Note,
			Quantity:       e.Quantity,
		})
	}

	saved, err := h.service.SaveList(c.Request.Context(), list)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"grocery_list": saved})
}

func (h *GroceryListHandler) ListLists(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	lists, err := h.service.ListLists(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_lists": lists})
}

func (h *GroceryListHandler) GetList(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.service.GetList(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_list": list})
}

func (h *GroceryListHandler) DeleteList(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteList(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
