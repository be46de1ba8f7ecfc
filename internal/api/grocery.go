package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
)

// GroceryHandler serves the owner's active and purchased shopping list
type GroceryHandler struct {
	service service.IGroceryService
	limiter *middleware.RateLimiter
}

// NewGroceryHandler creates a GroceryHandler. A nil limiter leaves the
// generate endpoints unlimited.
func NewGroceryHandler(svc service.IGroceryService, limiter *middleware.RateLimiter) *GroceryHandler {
	return &GroceryHandler{service: svc, limiter: limiter}
}

func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/groceryitems")
	{
		items.GET("/active", h.ListActive)
		items.GET("/purchased", h.ListPurchased)
		items.POST("", h.AddItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/mark-purchased", h.MarkPurchased)
		items.POST("/undo-purchased", h.MarkUnpurchased)

		generate := items.Group("")
		if h.limiter != nil {
			generate.Use(h.limiter.Middleware())
		}
		generate.POST("/generate-from-recipes", h.GenerateFromRecipes)
		generate.POST("/generate-from-mealplans", h.GenerateFromMealPlans)
	}
}

func (h *GroceryHandler) ListActive(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.service.ListActive(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *GroceryHandler) ListPurchased(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.service.ListPurchased(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem merges a manual entry into the active list
func (h *GroceryHandler) AddItem(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.AddGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := h.service.MergeOrAdd(c.Request.Context(), &models.GroceryItem{
		OwnerID:   ownerID,
		ItemName:  req.ItemName,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		Note:      req.Note,
		DateAdded: strings.TrimSpace(req.DateAdded),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *GroceryHandler) UpdateItem(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *GroceryHandler) DeleteItem(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroceryHandler) MarkPurchased(c *gin.Context) {
	h.markBatch(c, h.service.MarkPurchased)
}

func (h *GroceryHandler) MarkUnpurchased(c *gin.Context) {
	h.markBatch(c, h.service.MarkUnpurchased)
}

func (h *GroceryHandler) markBatch(c *gin.Context, mark func(ctx context.Context, ids []uint, owner uuid.UUID) error) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := mark(c.Request.Context(), req.IDs, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroceryHandler) GenerateFromRecipes(c *gin.Context) {
	h.generate(c, h.service.AggregateFromRecipes)
}

func (h *GroceryHandler) GenerateFromMealPlans(c *gin.Context) {
	h.generate(c, h.service.AggregateFromMealPlans)
}

func (h *GroceryHandler) generate(c *gin.Context, aggregate func(ctx context.Context, ids []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error)) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	items, err := aggregate(c.Request.Context(), req.IDs, strings.TrimSpace(req.Date), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
