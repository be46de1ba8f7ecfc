package database

import (
	"fmt"

	"github.com/pageza/grocerly/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table the service owns, parents before children.
func Models() []any {
	return []any{
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.MealPlan{},
		&models.MealPlanEntry{},
		&models.GroceryItem{},
		&models.GroceryList{},
		&models.GroceryListEntry{},
	}
}

// RunMigrations brings the schema up to date
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := backfillMergeColumns(db); err != nil {
		return fmt.Errorf("failed to backfill grocery merge columns: %w", err)
	}
	return nil
}

// backfillMergeColumns fills the normalized merge columns of grocery items
// written before those columns existed.
func backfillMergeColumns(db *gorm.DB) error {
	var batch []*models.GroceryItem
	return db.Where("merge_name = ?", "").FindInBatches(&batch, 500, func(_ *gorm.DB, _ int) error {
		for _, item := range batch {
			item.SyncMergeColumns()
			if item.MergeName == "" {
				continue
			}
			err := db.Model(item).UpdateColumns(map[string]any{
				"merge_name": item.MergeName,
				"merge_unit": item.MergeUnit,
				"merge_note": item.MergeNote,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}).Error
}
