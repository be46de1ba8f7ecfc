package models

import (
	"time"

	"github.com/google/uuid"
)

// MealPlan groups dated recipe entries.
type MealPlan struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	OwnerID   uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"-"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Entries   []MealPlanEntry `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"entries"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// MealPlanEntry binds a recipe to a calendar date (DD-MM-YYYY).
type MealPlanEntry struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	MealPlanID uint    `gorm:"not null;index" json:"-"`
	RecipeID   *uint   `gorm:"index" json:"recipe_id"`
	Recipe     *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Date       string  `gorm:"size:10;not null" json:"date"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}
