package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// GroceryListStore implements service.GroceryListStore
type GroceryListStore struct {
	db *gorm.DB
}

var _ service.GroceryListStore = (*GroceryListStore)(nil)

// FindByID loads a saved list with its entries
func (s *GroceryListStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryList, error) {
	var list models.GroceryList
	q := s.db.WithContext(ctx).Preload("Entries", orderByID).Where("id = ? AND owner_id = ?", id, owner)
	found, err := first(q, &list)
	if err != nil || !found {
		return nil, err
	}
	return &list, nil
}

// FindAllByOwner loads the owner's lists, newest first
func (s *GroceryListStore) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryList, error) {
	var lists []*models.GroceryList
	err := s.db.WithContext(ctx).Preload("Entries", orderByID).
		Where("owner_id = ?", owner).Order("id DESC").Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Create inserts the list and its entries
func (s *GroceryListStore) Create(ctx context.Context, list *models.GroceryList) error {
	return s.db.WithContext(ctx).Create(list).Error
}

// Delete removes the list and its entries
func (s *GroceryListStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	db := s.db.WithContext(ctx)
	res := db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.GroceryList{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.Error
	}
	return db.Where("grocery_list_id = ?", id).Delete(&models.GroceryListEntry{}).Error
}
