package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"go.uber.org/zap"
)

// aggregatedLine is the running total for one merge key.
type aggregatedLine struct {
	IngredientID *uint
	Name         string
	Unit         string
	Note         *string
	Quantity     float64
}

// lineFold sums ingredient lines per merge key, keeping first-seen order.
type lineFold struct {
	index map[string]int
	lines []*aggregatedLine
}

func newLineFold() *lineFold {
	return &lineFold{index: make(map[string]int)}
}

// addRecipe folds every line of recipe that references an ingredient.
func (f *lineFold) addRecipe(recipe *models.Recipe) {
	if recipe == nil {
		return
	}
	for i := range recipe.Ingredients {
		f.addLine(&recipe.Ingredients[i])
	}
}

// addMealPlan folds the recipe of every entry, once per entry.
func (f *lineFold) addMealPlan(plan *models.MealPlan) {
	for i := range plan.Entries {
		f.addRecipe(plan.Entries[i].Recipe)
	}
}

func (f *lineFold) addLine(line *models.RecipeIngredient) {
	// partially filled lines carry no ingredient
	if line.Ingredient == nil {
		return
	}
	key := NewMergeKey(line.Ingredient.Name, line.Unit, line.Note).String()
	if i, ok := f.index[key]; ok {
		f.lines[i].Quantity += line.Quantity
		return
	}

	agg := &aggregatedLine{
		Name:     line.Ingredient.Name,
		Unit:     line.Unit,
		Quantity: line.Quantity,
	}
	if line.Ingredient.ID != 0 {
		id := line.Ingredient.ID
		agg.IngredientID = &id
	}
	if line.Note != nil {
		note := *line.Note
		agg.Note = &note
	}
	f.index[key] = len(f.lines)
	f.lines = append(f.lines, agg)
}

// groceryItems converts the fold into unsaved active grocery items.
func (f *lineFold) groceryItems(date string, owner uuid.UUID) []*models.GroceryItem {
	items := make([]*models.GroceryItem, 0, len(f.lines))
	for _, l := range f.lines {
		items = append(items, &models.GroceryItem{
			OwnerID:   owner,
			ItemName:  l.Name,
			Unit:      l.Unit,
			Quantity:  l.Quantity,
			Note:      l.Note,
			DateAdded: date,
		})
	}
	return items
}

// listEntries converts the fold into grocery list entries.
func (f *lineFold) listEntries() []models.GroceryListEntry {
	entries := make([]models.GroceryListEntry, 0, len(f.lines))
	for _, l := range f.lines {
		entries = append(entries, models.GroceryListEntry{
			IngredientID:   l.IngredientID,
			IngredientName: l.Name,
			Unit:           l.Unit,
			Note:           l.Note,
			Quantity:       l.Quantity,
		})
	}
	return entries
}

// loadRecipes resolves every id in order, duplicates included, failing on the
// first id the owner cannot see.
func loadRecipes(ctx context.Context, recipes RecipeStore, ids []uint, owner uuid.UUID) ([]*models.Recipe, error) {
	out := make([]*models.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := recipes.FindByID(ctx, id, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe %d: %w", id, err)
		}
		if recipe == nil {
			return nil, notFoundf("recipe %d", id)
		}
		out = append(out, recipe)
	}
	return out, nil
}

func loadMealPlans(ctx context.Context, plans MealPlanStore, ids []uint, owner uuid.UUID) ([]*models.MealPlan, error) {
	out := make([]*models.MealPlan, 0, len(ids))
	for _, id := range ids {
		plan, err := plans.FindByID(ctx, id, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to load meal plan %d: %w", id, err)
		}
		if plan == nil {
			return nil, notFoundf("meal plan %d", id)
		}
		out = append(out, plan)
	}
	return out, nil
}

// AggregateFromRecipes folds the ingredient lines of the given recipes into
// the owner's active grocery list and returns the touched items in fold order.
func (s *GroceryService) AggregateFromRecipes(ctx context.Context, recipeIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	if len(recipeIDs) == 0 {
		return []*models.GroceryItem{}, nil
	}

	var result []*models.GroceryItem
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		recipes, err := loadRecipes(ctx, tx.Recipes, recipeIDs, owner)
		if err != nil {
			return err
		}
		fold := newLineFold()
		for _, r := range recipes {
			fold.addRecipe(r)
		}
		result, err = s.mergeAll(ctx, tx.GroceryItems, fold.groceryItems(date, owner))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("aggregated grocery items from recipes",
		zapOwner(owner), zap.Int("recipes", len(recipeIDs)), zap.Int("items", len(result)))
	return result, nil
}

// AggregateFromMealPlans folds the recipes of every entry of the given meal
// plans into the owner's active grocery list.
func (s *GroceryService) AggregateFromMealPlans(ctx context.Context, mealPlanIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	if len(mealPlanIDs) == 0 {
		return []*models.GroceryItem{}, nil
	}

	var result []*models.GroceryItem
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		plans, err := loadMealPlans(ctx, tx.MealPlans, mealPlanIDs, owner)
		if err != nil {
			return err
		}
		fold := newLineFold()
		for _, p := range plans {
			fold.addMealPlan(p)
		}
		result, err = s.mergeAll(ctx, tx.GroceryItems, fold.groceryItems(date, owner))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("aggregated grocery items from meal plans",
		zapOwner(owner), zap.Int("meal_plans", len(mealPlanIDs)), zap.Int("items", len(result)))
	return result, nil
}

func (s *GroceryService) mergeAll(ctx context.Context, items GroceryItemStore, candidates []*models.GroceryItem) ([]*models.GroceryItem, error) {
	out := make([]*models.GroceryItem, 0, len(candidates))
	for _, c := range candidates {
		merged, err := s.resolver.MergeOrAdd(ctx, items, c)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}

	// several candidates may land on one stored item; report its final state
	latest := make(map[uint]*models.GroceryItem, len(out))
	for _, item := range out {
		latest[item.ID] = item
	}
	for i, item := range out {
		out[i] = latest[item.ID]
	}
	return out, nil
}
