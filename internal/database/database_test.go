package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pageza/grocerly/backend/config"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	db, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	// migrating twice is a no-op
	require.NoError(t, RunMigrations(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.GroceryItem{}, "idx_grocery_items_owner_active"))
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"}, nil)
	assert.Error(t, err)
}

func TestRunMigrationsBackfillsMergeColumns(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "backfill.db")}
	db, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	note := " Whole\t"
	item := &models.GroceryItem{ItemName: "ÉCLAIR ", Unit: "PCS", Quantity: 2, Note: &note}
	require.NoError(t, db.Create(item).Error)
	// rows written before the merge columns existed carry empty keys
	require.NoError(t, db.Exec("UPDATE grocery_items SET merge_name = '', merge_unit = '', merge_note = ''").Error)

	require.NoError(t, RunMigrations(db))

	var got models.GroceryItem
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Equal(t, "éclair", got.MergeName)
	assert.Equal(t, "pcs", got.MergeUnit)
	assert.Equal(t, "whole", got.MergeNote)
}
