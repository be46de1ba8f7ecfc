package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a catalogued ingredient an owner can reference from recipes.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Recipe holds the serving count and the ordered ingredient lines it scales.
type Recipe struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	OwnerID     uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"-"`
	Name        string             `gorm:"size:255;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Servings    int                `gorm:"not null;default:1" json:"servings"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one quantity line of a recipe.
type RecipeIngredient struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	RecipeID     uint        `gorm:"not null;index" json:"-"`
	IngredientID *uint       `gorm:"index" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     float64     `gorm:"not null;default:0" json:"quantity"`
	Unit         string      `gorm:"size:50;not null" json:"unit"`
	Note         *string     `gorm:"size:255" json:"note"`
	Position     int         `gorm:"not null;default:0" json:"position"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// Clone returns a copy of the recipe whose ingredient lines can be mutated
// without touching the original.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = make([]RecipeIngredient, len(r.Ingredients))
	for i, line := range r.Ingredients {
		if line.Ingredient != nil {
			ing := *line.Ingredient
			line.Ingredient = &ing
		}
		if line.IngredientID != nil {
			id := *line.IngredientID
			line.IngredientID = &id
		}
		if line.Note != nil {
			n := *line.Note
			line.Note = &n
		}
		c.Ingredients[i] = line
	}
	return &c
}
