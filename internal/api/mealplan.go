package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/types"
)

type MealPlanHandler struct {
	service service.IMealPlanService
}

func NewMealPlanHandler(svc service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: svc}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/mealplans")
	{
		plans.GET("", h.ListMealPlans)
		plans.POST("", h.CreateMealPlan)
		plans.GET("/:id", h.GetMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
	}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	plans, err := h.service.ListMealPlans(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	plan, err := h.service.GetMealPlan(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var req types.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	plan, err := h.service.CreateMealPlan(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteMealPlan(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
