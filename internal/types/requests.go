package types

// GenerateRequest is the body of the generate-from-recipes and
// generate-from-mealplans endpoints.
type GenerateRequest struct {
	IDs  []uint `json:"ids" binding:"required"`
	Date string `json:"date" binding:"omitempty,datetime=02-01-2006"`
}

// IDsRequest carries a batch of grocery item ids.
type IDsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// AddGroceryItemRequest represents a manual grocery item entry
type AddGroceryItemRequest struct {
	ItemName  string  `json:"item_name" binding:"required,max=255"`
	Unit      string  `json:"unit" binding:"max=50"`
	Quantity  float64 `json:"quantity" binding:"gte=0"`
	Note      *string `json:"note" binding:"omitempty,max=255"`
	DateAdded string  `json:"date_added" binding:"omitempty,datetime=02-01-2006"`
}

// UpdateGroceryItemRequest holds the editable fields of a grocery item.
// Nil fields are left untouched.
type UpdateGroceryItemRequest struct {
	ItemName  *string  `json:"item_name" binding:"omitempty,min=1,max=255"`
	Unit      *string  `json:"unit" binding:"omitempty,max=50"`
	Quantity  *float64 `json:"quantity" binding:"omitempty,gte=0"`
	Note      *string  `json:"note" binding:"omitempty,max=255"`
	DateAdded *string  `json:"date_added" binding:"omitempty,datetime=02-01-2006"`
}

// RecipeIngredientInput is one ingredient line of a recipe create request.
// IngredientID wins over IngredientName when both are set.
type RecipeIngredientInput struct {
	IngredientID   *uint   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name" binding:"max=255"`
	Quantity       float64 `json:"quantity" binding:"gte=0"`
	Unit           string  `json:"unit" binding:"required,max=50"`
	Note           *string `json:"note" binding:"omitempty,max=255"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string                  `json:"name" binding:"required,max=255"`
	Description string                  `json:"description"`
	Servings    int                     `json:"servings" binding:"required,min=1,max=100"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"dive"`
}

// ServingsRequest is the body of the rescale endpoints.
type ServingsRequest struct {
	Servings int `json:"servings" binding:"required"`
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// MealPlanEntryInput binds a recipe to a date inside a meal plan request.
type MealPlanEntryInput struct {
	RecipeID uint   `json:"recipe_id" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=02-01-2006"`
}

// CreateMealPlanRequest represents the request body for creating a meal plan
type CreateMealPlanRequest struct {
	Name    string               `json:"name" binding:"required,max=255"`
	Entries []MealPlanEntryInput `json:"entries" binding:"dive"`
}

// GenerateListFromRecipesRequest replaces the loosely typed
// {recipeIds, name, date} payload of the grocery list generator.
type GenerateListFromRecipesRequest struct {
	RecipeIDs []uint `json:"recipeIds" binding:"required"`
	Name      string `json:"name" binding:"required,max=255"`
	Date      string `json:"date" binding:"required,datetime=02-01-2006"`
}

// GenerateListFromMealPlanRequest carries the list name and date for a
// meal-plan driven grocery list.
type GenerateListFromMealPlanRequest struct {
	Name string `form:"name" json:"name" binding:"required,max=255"`
	Date string `form:"date" json:"date" binding:"required,datetime=02-01-2006"`
}

// GroceryListEntryInput is one line of a grocery list save request.
type GroceryListEntryInput struct {
	IngredientID   *uint   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name" binding:"required,max=255"`
	Unit           string  `json:"unit" binding:"max=50"`
	Note           *string `json:"note" binding:"omitempty,max=255"`
	Quantity       float64 `json:"quantity" binding:"gte=0"`
}

// SaveGroceryListRequest represents the request body for saving a grocery list
type SaveGroceryListRequest struct {
	Name       string                  `json:"name" binding:"required,max=255"`
	Date       string                  `json:"date" binding:"omitempty,datetime=02-01-2006"`
	MealPlanID *uint                   `json:"meal_plan_id"`
	Entries    []GroceryListEntryInput `json:"entries" binding:"dive"`
}
