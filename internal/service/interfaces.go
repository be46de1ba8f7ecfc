package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/types"
)

// Collaborator stores. Lookups return (nil, nil) when nothing matches and
// always scope by owner; returned values are copies the caller may mutate
// before handing them back to Save.

// RecipeStore persists recipes with their ordered ingredient lines.
type RecipeStore interface {
	FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error)
	FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	// Save persists the serving count and every line quantity of an existing recipe.
	Save(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
	CountMealPlanUsage(ctx context.Context, recipeID uint) (int64, error)
}

// MealPlanStore resolves meal plans as fully loaded value trees
// (entries -> recipe -> lines -> ingredient).
type MealPlanStore interface {
	FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error)
	FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error)
	Create(ctx context.Context, plan *models.MealPlan) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
}

// GroceryItemStore persists shopping list items.
type GroceryItemStore interface {
	FindActiveByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error)
	FindPurchasedByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error)
	// FindMergeCandidates returns the owner's active items whose key matches
	// NewMergeKey(name, unit, note), ordered by id. Keys are compared after
	// models.NormalizeMergePart, never with SQL case folding.
	FindMergeCandidates(ctx context.Context, name, unit string, note *string, owner uuid.UUID) ([]*models.GroceryItem, error)
	FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryItem, error)
	// FindByIDs silently drops ids that are unknown or owned by someone else.
	FindByIDs(ctx context.Context, ids []uint, owner uuid.UUID) ([]*models.GroceryItem, error)
	// Save inserts items with a zero ID and updates the rest.
	Save(ctx context.Context, item *models.GroceryItem) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
}

// IngredientStore persists the ingredient catalogue.
type IngredientStore interface {
	FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.Ingredient, error)
	FindByName(ctx context.Context, name string, owner uuid.UUID) (*models.Ingredient, error)
	FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error)
	Create(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
	CountRecipeUsage(ctx context.Context, ingredientID uint) (int64, error)
}

// GroceryListStore persists saved grocery list snapshots.
type GroceryListStore interface {
	FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error)
	FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error)
	Create(ctx context.Context, list *models.GroceryList) error
	Delete(ctx context.Context, id uint, owner uuid.UUID) error
}

// Stores bundles the collaborator stores bound to one session or transaction.
type Stores struct {
	Recipes      RecipeStore
	MealPlans    MealPlanStore
	GroceryItems GroceryItemStore
	Ingredients  IngredientStore
	GroceryLists GroceryListStore
}

// UnitOfWork hands out stores and the owner-scoped transaction every
// read-then-write sequence runs in. WithinOwner serialises calls for the
// same owner and rolls back every write when fn returns an error.
type UnitOfWork interface {
	Stores() Stores
	WithinOwner(ctx context.Context, owner uuid.UUID, fn func(tx Stores) error) error
}

// IGroceryService defines the interface for shopping list operations
type IGroceryService interface {
	AggregateFromRecipes(ctx context.Context, recipeIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error)
	AggregateFromMealPlans(ctx context.Context, mealPlanIDs []uint, date string, owner uuid.UUID) ([]*models.GroceryItem, error)
	MergeOrAdd(ctx context.Context, candidate *models.GroceryItem) (*models.GroceryItem, error)
	MarkPurchased(ctx context.Context, ids []uint, owner uuid.UUID) error
	MarkUnpurchased(ctx context.Context, ids []uint, owner uuid.UUID) error
	ListActive(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error)
	ListPurchased(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error)
	UpdateItem(ctx context.Context, id uint, owner uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error)
	DeleteItem(ctx context.Context, id uint, owner uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, owner uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uint, owner uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, owner uuid.UUID) ([]*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint, owner uuid.UUID) error
	Rescale(ctx context.Context, recipeID uint, newServings int, owner uuid.UUID) error
	RescaleAllDefault(ctx context.Context, newServings int, owner uuid.UUID) error
}

// IIngredientService defines the interface for ingredient catalogue operations
type IIngredientService interface {
	CreateIngredient(ctx context.Context, owner uuid.UUID, name string) (*models.Ingredient, error)
	ListIngredients(ctx context.Context, owner uuid.UUID) ([]*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uint, owner uuid.UUID) error
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	CreateMealPlan(ctx context.Context, owner uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error)
	GetMealPlan(ctx context.Context, id uint, owner uuid.UUID) (*models.MealPlan, error)
	ListMealPlans(ctx context.Context, owner uuid.UUID) ([]*models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id uint, owner uuid.UUID) error
}

// IGroceryListService defines the interface for saved grocery list operations
type IGroceryListService interface {
	GenerateFromMealPlan(ctx context.Context, mealPlanID uint, name, date string, owner uuid.UUID) (*models.GroceryList, error)
	GenerateFromRecipes(ctx context.Context, recipeIDs []uint, name, date string, owner uuid.UUID) (*models.GroceryList, error)
	SaveList(ctx context.Context, list *models.GroceryList) (*models.GroceryList, error)
	GetList(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error)
	ListLists(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error)
	DeleteList(ctx context.Context, id uint, owner uuid.UUID) error
}
