package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
)

type recipeStore struct{ b *binding }

func (r recipeStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error) {
	var out *models.Recipe
	err := r.b.with(ctx, func(st *state) error {
		if rec := st.loadRecipe(id); rec != nil && rec.OwnerID == owner {
			out = rec
		}
		return nil
	})
	return out, err
}

func (r recipeStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error) {
	out := []*models.Recipe{}
	err := r.b.with(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.recipes) {
			if st.recipes[id].OwnerID == owner {
				out = append(out, st.loadRecipe(id))
			}
		}
		return nil
	})
	return out, err
}

func (r recipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.b.with(ctx, func(st *state) error {
		recipe.ID = st.nextID()
		stamp(&recipe.CreatedAt, &recipe.UpdatedAt)
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = st.nextID()
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		stored := recipe.Clone()
		for i := range stored.Ingredients {
			stored.Ingredients[i].Ingredient = nil
		}
		st.recipes[recipe.ID] = stored
		return nil
	})
}

func (r recipeStore) Save(ctx context.Context, recipe *models.Recipe) error {
	return r.b.with(ctx, func(st *state) error {
		stored, ok := st.recipes[recipe.ID]
		if !ok || stored.OwnerID != recipe.OwnerID {
			return nil
		}
		stored.Servings = recipe.Servings
		quantities := make(map[uint]float64, len(recipe.Ingredients))
		for _, line := range recipe.Ingredients {
			quantities[line.ID] = line.Quantity
		}
		for i := range stored.Ingredients {
			if q, ok := quantities[stored.Ingredients[i].ID]; ok {
				stored.Ingredients[i].Quantity = q
			}
		}
		stamp(&stored.CreatedAt, &stored.UpdatedAt)
		return nil
	})
}

func (r recipeStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return r.b.with(ctx, func(st *state) error {
		if rec, ok := st.recipes[id]; ok && rec.OwnerID == owner {
			delete(st.recipes, id)
		}
		return nil
	})
}

func (r recipeStore) CountMealPlanUsage(ctx context.Context, recipeID uint) (int64, error) {
	var n int64
	err := r.b.with(ctx, func(st *state) error {
		for _, p := range st.plans {
			for _, e := range p.Entries {
				if e.RecipeID != nil && *e.RecipeID == recipeID {
					n++
				}
			}
		}
		return nil
	})
	return n, err
}

type mealPlanStore struct{ b *binding }

func (m mealPlanStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error) {
	var out *models.MealPlan
	err := m.b.with(ctx, func(st *state) error {
		if p := st.loadPlan(id); p != nil && p.OwnerID == owner {
			out = p
		}
		return nil
	})
	return out, err
}

func (m mealPlanStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error) {
	out := []*models.MealPlan{}
	err := m.b.with(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.plans) {
			if st.plans[id].OwnerID == owner {
				out = append(out, st.loadPlan(id))
			}
		}
		return nil
	})
	return out, err
}

func (m mealPlanStore) Create(ctx context.Context, plan *models.MealPlan) error {
	return m.b.with(ctx, func(st *state) error {
		plan.ID = st.nextID()
		stamp(&plan.CreatedAt, &plan.UpdatedAt)
		for i := range plan.Entries {
			plan.Entries[i].ID = st.nextID()
			plan.Entries[i].MealPlanID = plan.ID
		}
		stored := clonePlan(plan)
		for i := range stored.Entries {
			stored.Entries[i].Recipe = nil
		}
		st.plans[plan.ID] = stored
		return nil
	})
}

func (m mealPlanStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return m.b.with(ctx, func(st *state) error {
		if p, ok := st.plans[id]; ok && p.OwnerID == owner {
			delete(st.plans, id)
		}
		return nil
	})
}

type groceryItemStore struct{ b *binding }

func (g groceryItemStore) filter(ctx context.Context, keep func(*models.GroceryItem) bool) ([]*models.GroceryItem, error) {
	out := []*models.GroceryItem{}
	err := g.b.with(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.items) {
			if item := st.items[id]; keep(item) {
				out = append(out, item.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (g groceryItemStore) FindActiveByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return g.filter(ctx, func(i *models.GroceryItem) bool { return i.OwnerID == owner && !i.Purchased })
}

func (g groceryItemStore) FindPurchasedByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return g.filter(ctx, func(i *models.GroceryItem) bool { return i.OwnerID == owner && i.Purchased })
}

func (g groceryItemStore) FindMergeCandidates(ctx context.Context, name, unit string, note *string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	want := service.NewMergeKey(name, unit, note)
	return g.filter(ctx, func(i *models.GroceryItem) bool {
		if i.OwnerID != owner || i.Purchased {
			return false
		}
		return want.Matches(service.MergeKey{Name: i.MergeName, Unit: i.MergeUnit, Note: i.MergeNote})
	})
}

func (g groceryItemStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryItem, error) {
	var out *models.GroceryItem
	err := g.b.with(ctx, func(st *state) error {
		if item, ok := st.items[id]; ok && item.OwnerID == owner {
			out = item.Clone()
		}
		return nil
	})
	return out, err
}

func (g groceryItemStore) FindByIDs(ctx context.Context, ids []uint, owner uuid.UUID) ([]*models.GroceryItem, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return g.filter(ctx, func(i *models.GroceryItem) bool { return want[i.ID] && i.OwnerID == owner })
}

func (g groceryItemStore) Save(ctx context.Context, item *models.GroceryItem) error {
	return g.b.with(ctx, func(st *state) error {
		if item.ID == 0 {
			item.ID = st.nextID()
		}
		item.SyncMergeColumns()
		stamp(&item.CreatedAt, &item.UpdatedAt)
		st.items[item.ID] = item.Clone()
		return nil
	})
}

func (g groceryItemStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return g.b.with(ctx, func(st *state) error {
		if item, ok := st.items[id]; ok && item.OwnerID == owner {
			delete(st.items, id)
		}
		return nil
	})
}

type ingredientStore struct{ b *binding }

func (s ingredientStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Ingredient, error) {
	var out *models.Ingredient
	err := s.b.with(ctx, func(st *state) error {
		if ing, ok := st.ingredients[id]; ok && ing.OwnerID == owner {
			out = &ing
		}
		return nil
	})
	return out, err
}

func (s ingredientStore) FindByName(ctx context.Context, name string, owner uuid.UUID) (*models.Ingredient, error) {
	var out *models.Ingredient
	err := s.b.with(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.ingredients) {
			ing := st.ingredients[id]
			if ing.OwnerID == owner && norm(ing.Name) == norm(name) {
				out = &ing
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (s ingredientStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error) {
	out := []*models.Ingredient{}
	err := s.b.with(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.ingredients) {
			if ing := st.ingredients[id]; ing.OwnerID == owner {
				out = append(out, &ing)
			}
		}
		return nil
	})
	sortIngredients(out)
	return out, err
}

func (s ingredientStore) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return s.b.with(ctx, func(st *state) error {
		ingredient.ID = st.nextID()
		stamp(&ingredient.CreatedAt, &ingredient.UpdatedAt)
		st.ingredients[ingredient.ID] = *ingredient
		return nil
	})
}

func (s ingredientStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.b.with(ctx, func(st *state) error {
		if ing, ok := st.ingredients[id]; ok && ing.OwnerID == owner {
			delete(st.ingredients, id)
		}
		return nil
	})
}

func (s ingredientStore) CountRecipeUsage(ctx context.Context, ingredientID uint) (int64, error) {
	var n int64
	err := s.b.with(ctx, func(st *state) error {
		for _, r := range st.recipes {
			for _, line := range r.Ingredients {
				if line.IngredientID != nil && *line.IngredientID == ingredientID {
					n++
				}
			}
		}
		return nil
	})
	return n, err
}

type groceryListStore struct{ b *binding }

func (s groceryListStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error) {
	var out *models.GroceryList
	err := s.b.with(ctx, func(st *state) error {
		if l, ok := st.lists[id]; ok && l.OwnerID == owner {
			out = cloneList(l)
		}
		return nil
	})
	return out, err
}

func (s groceryListStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error) {
	out := []*models.GroceryList{}
	err := s.b.with(ctx, func(st *state) error {
		ids := sortedIDs(st.lists)
		for i := len(ids) - 1; i >= 0; i-- {
			if l := st.lists[ids[i]]; l.OwnerID == owner {
				out = append(out, cloneList(l))
			}
		}
		return nil
	})
	return out, err
}

func (s groceryListStore) Create(ctx context.Context, list *models.GroceryList) error {
	return s.b.with(ctx, func(st *state) error {
		list.ID = st.nextID()
		stamp(&list.CreatedAt, &list.UpdatedAt)
		for i := range list.Entries {
			list.Entries[i].ID = st.nextID()
			list.Entries[i].GroceryListID = list.ID
		}
		st.lists[list.ID] = cloneList(list)
		return nil
	})
}

func (s groceryListStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.b.with(ctx, func(st *state) error {
		if l, ok := st.lists[id]; ok && l.OwnerID == owner {
			delete(st.lists, id)
		}
		return nil
	})
}
