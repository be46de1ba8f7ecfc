package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/types"
	"go.uber.org/zap"
)

// MealPlanService handles meal plan operations
type MealPlanService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

var _ IMealPlanService = (*MealPlanService)(nil)

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(uow UnitOfWork, opts ...Option) *MealPlanService {
	o := buildOptions(opts)
	return &MealPlanService{uow: uow, logger: o.logger.Named("mealplan")}
}

// CreateMealPlan stores a plan whose entries all point at recipes of owner.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, owner uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error) {
	if req == nil {
		return nil, invalidf("meal plan request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("meal plan name is required")
	}

	var created *models.MealPlan
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		plan := &models.MealPlan{OwnerID: owner, Name: strings.TrimSpace(req.Name)}
		for _, in := range req.Entries {
			recipe, err := tx.Recipes.FindByID(ctx, in.RecipeID, owner)
			if err != nil {
				return fmt.Errorf("failed to load recipe %d: %w", in.RecipeID, err)
			}
			if recipe == nil {
				return notFoundf("recipe %d", in.RecipeID)
			}
			id := recipe.ID
			plan.Entries = append(plan.Entries, models.MealPlanEntry{RecipeID: &id, Date: in.Date})
		}
		if err := tx.MealPlans.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to create meal plan: %w", err)
		}

		var err error
		created, err = tx.MealPlans.FindByID(ctx, plan.ID, owner)
		if err != nil {
			return fmt.Errorf("failed to reload meal plan %d: %w", plan.ID, err)
		}
		if created == nil {
			return notFoundf("meal plan %d", plan.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created meal plan", zapOwner(owner), zap.Uint("meal_plan_id", created.ID), zap.Int("entries", len(created.Entries)))
	return created, nil
}

// GetMealPlan retrieves a fully loaded meal plan
func (s *MealPlanService) GetMealPlan(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error) {
	plan, err := s.uow.Stores().MealPlans.FindByID(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan %d: %w", id, err)
	}
	if plan == nil {
		return nil, notFoundf("meal plan %d", id)
	}
	return plan, nil
}

// ListMealPlans returns every meal plan of the owner
func (s *MealPlanService) ListMealPlans(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error) {
	plans, err := s.uow.Stores().MealPlans.FindAllByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

// DeleteMealPlan deletes a meal plan and its entries
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		plan, err := tx.MealPlans.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load meal plan %d: %w", id, err)
		}
		if plan == nil {
			return notFoundf("meal plan %d", id)
		}
		return tx.MealPlans.Delete(ctx, id, owner)
	})
}
