package models

import (
	"time"

	"github.com/google/uuid"
)

// GroceryList is a named, dated snapshot of aggregated ingredients.
type GroceryList struct {
	ID         uint               `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	OwnerID    uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"-"`
	Name       string             `gorm:"size:255;not null" json:"name"`
	Date       string             `gorm:"size:10" json:"date"`
	Completed  bool               `gorm:"not null;default:false" json:"completed"`
	MealPlanID *uint              `json:"meal_plan_id,omitempty"`
	Entries    []GroceryListEntry `gorm:"foreignKey:GroceryListID;constraint:OnDelete:CASCADE" json:"entries"`
}

func (GroceryList) TableName() string {
	return "grocery_lists"
}

// GroceryListEntry is one aggregated line of a saved grocery list.
type GroceryListEntry struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	GroceryListID  uint    `gorm:"not null;index" json:"-"`
	IngredientID   *uint   `json:"ingredient_id,omitempty"`
	IngredientName string  `gorm:"size:255;not null" json:"ingredient_name"`
	Unit           string  `gorm:"size:50" json:"unit"`
	Note           *string `gorm:"size:255" json:"note,omitempty"`
	Quantity       float64 `gorm:"not null;default:0" json:"quantity"`
}

func (GroceryListEntry) TableName() string {
	return "grocery_list_entries"
}
