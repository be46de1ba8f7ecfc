package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/grocerly/backend/config"
	"github.com/pageza/grocerly/backend/internal/database"
	"github.com/pageza/grocerly/backend/internal/logging"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store"
	"github.com/pageza/grocerly/backend/internal/types"
)

type seedLine struct {
	name     string
	quantity float64
	unit     string
	note     string
}

type seedRecipe struct {
	name        string
	description string
	servings    int
	lines       []seedLine
}

var recipes = []seedRecipe{
	{"Pancakes", "Fluffy breakfast pancakes", 2, []seedLine{
		{"Flour", 250, "g", ""},
		{"Egg", 2, "pcs", ""},
		{"Milk", 0.5, "l", ""},
		{"Butter", 20, "g", "melted"},
	}},
	{"Tomato soup", "Weeknight soup with crusty bread", 4, []seedLine{
		{"Tomato", 800, "g", "ripe"},
		{"Onion", 1, "pcs", ""},
		{"Vegetable stock", 1, "l", "low salt"},
		{"Bread", 4, "slices", ""},
	}},
	{"Fried rice", "Leftover rice with vegetables", 2, []seedLine{
		{"Rice", 300, "g", "cooked"},
		{"Egg", 2, "pcs", ""},
		{"Onion", 1, "pcs", ""},
		{"Soy sauce", 2, "tbsp", ""},
	}},
}

func main() {
	ownerFlag := flag.String("owner", "", "Owner id to seed (random when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	owner := uuid.New()
	if *ownerFlag != "" {
		if owner, err = uuid.Parse(*ownerFlag); err != nil {
			logger.Fatal("invalid owner id", zap.String("owner", *ownerFlag), zap.Error(err))
		}
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	uow := store.NewUnitOfWork(db, nil)
	recipeService := service.NewRecipeService(uow, service.WithLogger(logger))
	mealPlanService := service.NewMealPlanService(uow, service.WithLogger(logger))
	ctx := context.Background()

	dates := []string{"06-01-2025", "07-01-2025", "08-01-2025"}
	plan := types.CreateMealPlanRequest{Name: "Sample week"}
	for i, r := range recipes {
		req := &types.CreateRecipeRequest{Name: r.name, Description: r.description, Servings: r.servings}
		for _, l := range r.lines {
			in := types.RecipeIngredientInput{IngredientName: l.name, Quantity: l.quantity, Unit: l.unit}
			if l.note != "" {
				note := l.note
				in.Note = &note
			}
			req.Ingredients = append(req.Ingredients, in)
		}

		created, err := recipeService.CreateRecipe(ctx, owner, req)
		if err != nil {
			logger.Fatal("failed to seed recipe", zap.String("recipe", r.name), zap.Error(err))
		}
		plan.Entries = append(plan.Entries, types.MealPlanEntryInput{RecipeID: created.ID, Date: dates[i%len(dates)]})
	}

	// the first recipe twice so generated lists show summed quantities
	plan.Entries = append(plan.Entries, types.MealPlanEntryInput{RecipeID: plan.Entries[0].RecipeID, Date: "09-01-2025"})
	created, err := mealPlanService.CreateMealPlan(ctx, owner, &plan)
	if err != nil {
		logger.Fatal("failed to seed meal plan", zap.Error(err))
	}

	logger.Info("seed complete",
		zap.String("owner", owner.String()),
		zap.Int("recipes", len(recipes)),
		zap.Uint("meal_plan_id", created.ID))
}
