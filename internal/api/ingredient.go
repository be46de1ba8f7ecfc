package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
)

type IngredientHandler struct {
	service service.IIngredientService
}

func NewIngredientHandler(svc service.IIngredientService) *IngredientHandler {
	return &IngredientHandler{service: svc}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	ingredients, err := h.service.ListIngredients(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	ingredient, err := h.service.CreateIngredient(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ingredient": ingredient})
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteIngredient(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
