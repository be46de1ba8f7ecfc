// Package memory is an in-memory implementation of the service stores with
// copy-on-write transactions. It backs the service tests and the sqlite-free
// local mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
)

type state struct {
	seq         uint
	ingredients map[uint]models.Ingredient
	recipes     map[uint]*models.Recipe
	plans       map[uint]*models.MealPlan
	items       map[uint]*models.GroceryItem
	lists       map[uint]*models.GroceryList
}

func newState() *state {
	return &state{
		ingredients: map[uint]models.Ingredient{},
		recipes:     map[uint]*models.Recipe{},
		plans:       map[uint]*models.MealPlan{},
		items:       map[uint]*models.GroceryItem{},
		lists:       map[uint]*models.GroceryList{},
	}
}

func (s *state) nextID() uint {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := &state{
		seq:         s.seq,
		ingredients: make(map[uint]models.Ingredient, len(s.ingredients)),
		recipes:     make(map[uint]*models.Recipe, len(s.recipes)),
		plans:       make(map[uint]*models.MealPlan, len(s.plans)),
		items:       make(map[uint]*models.GroceryItem, len(s.items)),
		lists:       make(map[uint]*models.GroceryList, len(s.lists)),
	}
	for id, v := range s.ingredients {
		c.ingredients[id] = v
	}
	for id, v := range s.recipes {
		c.recipes[id] = v.Clone()
	}
	for id, v := range s.plans {
		c.plans[id] = clonePlan(v)
	}
	for id, v := range s.items {
		c.items[id] = v.Clone()
	}
	for id, v := range s.lists {
		c.lists[id] = cloneList(v)
	}
	return c
}

// DB holds the shared state. All access goes through one mutex; WithinOwner
// holds it for the whole transaction.
type DB struct {
	mu sync.Mutex
	st *state
}

var _ service.UnitOfWork = (*DB)(nil)

// New creates an empty in-memory database
func New() *DB {
	return &DB{st: newState()}
}

// Stores returns stores that lock the database per call.
func (db *DB) Stores() service.Stores {
	return bind(&binding{db: db})
}

// WithinOwner runs fn against a private copy of the state and publishes it
// only when fn succeeds.
func (db *DB) WithinOwner(ctx context.Context, _ uuid.UUID, fn func(tx service.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := db.st.clone()
	if err := fn(bind(&binding{tx: tx})); err != nil {
		return err
	}
	db.st = tx
	return nil
}

type binding struct {
	db *DB
	tx *state
}

func (b *binding) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return fn(b.db.st)
}

func bind(b *binding) service.Stores {
	return service.Stores{
		Recipes:      recipeStore{b},
		MealPlans:    mealPlanStore{b},
		GroceryItems: groceryItemStore{b},
		Ingredients:  ingredientStore{b},
		GroceryLists: groceryListStore{b},
	}
}

func sortedIDs[T any](m map[uint]T) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func norm(s string) string {
	return models.NormalizeMergePart(s)
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// loadRecipe returns a copy of the recipe with ordered lines and their
// ingredients attached.
func (s *state) loadRecipe(id uint) *models.Recipe {
	stored, ok := s.recipes[id]
	if !ok {
		return nil
	}
	r := stored.Clone()
	sort.SliceStable(r.Ingredients, func(i, j int) bool {
		a, b := r.Ingredients[i], r.Ingredients[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
	for i := range r.Ingredients {
		line := &r.Ingredients[i]
		line.Ingredient = nil
		if line.IngredientID == nil {
			continue
		}
		if ing, ok := s.ingredients[*line.IngredientID]; ok {
			line.Ingredient = &ing
		}
	}
	return r
}

func (s *state) loadPlan(id uint) *models.MealPlan {
	stored, ok := s.plans[id]
	if !ok {
		return nil
	}
	p := clonePlan(stored)
	for i := range p.Entries {
		e := &p.Entries[i]
		e.Recipe = nil
		if e.RecipeID != nil {
			e.Recipe = s.loadRecipe(*e.RecipeID)
		}
	}
	return p
}

func clonePlan(p *models.MealPlan) *models.MealPlan {
	c := *p
	c.Entries = make([]models.MealPlanEntry, len(p.Entries))
	for i, e := range p.Entries {
		if e.RecipeID != nil {
			id := *e.RecipeID
			e.RecipeID = &id
		}
		if e.Recipe != nil {
			e.Recipe = e.Recipe.Clone()
		}
		c.Entries[i] = e
	}
	return &c
}

func cloneList(l *models.GroceryList) *models.GroceryList {
	c := *l
	if l.MealPlanID != nil {
		id := *l.MealPlanID
		c.MealPlanID = &id
	}
	c.Entries = make([]models.GroceryListEntry, len(l.Entries))
	for i, e := range l.Entries {
		if e.IngredientID != nil {
			id := *e.IngredientID
			e.IngredientID = &id
		}
		if e.Note != nil {
			n := *e.Note
			e.Note = &n
		}
		c.Entries[i] = e
	}
	return &c
}

func sortIngredients(in []*models.Ingredient) {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Name != in[j].Name {
			return in[i].Name < in[j].Name
		}
		return in[i].ID < in[j].ID
	})
}
