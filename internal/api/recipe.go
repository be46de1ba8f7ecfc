package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
)

type RecipeHandler struct {
	service service.IRecipeService
}

func NewRecipeHandler(svc service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{service: svc}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/servings", h.RescaleAll)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.PUT("/:id/servings", h.Rescale)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	recipes, err := h.service.ListRecipes(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.service.GetRecipe(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	recipe, err := h.service.CreateRecipe(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteRecipe(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rescale sets one recipe's serving count and scales its quantities
func (h *RecipeHandler) Rescale(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.ServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.service.Rescale(c.Request.Context(), id, req.Servings, ownerID); err != nil {
		respondError(c, err)
		return
	}
	recipe, err := h.service.GetRecipe(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// RescaleAll applies one serving count to every recipe of the owner
func (h *RecipeHandler) RescaleAll(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.ServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := h.service.RescaleAllDefault(c.Request.Context(), req.Servings, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
