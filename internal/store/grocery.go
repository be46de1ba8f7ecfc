package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// GroceryItemStore implements service.GroceryItemStore
type GroceryItemStore struct {
	db *gorm.DB
}

var _ service.GroceryItemStore = (*GroceryItemStore)(nil)

func (s *GroceryItemStore) find(ctx context.Context, query string, args ...any) ([]*models.GroceryItem, error) {
	var items []*models.GroceryItem
	if err := s.db.WithContext(ctx).Where(query, args...).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActiveByOwner returns the owner's unpurchased items
func (s *GroceryItemStore) FindActiveByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return s.find(ctx, "owner_id = ? AND purchased = ?", owner, false)
}

// FindPurchasedByOwner returns the owner's purchased items
func (s *GroceryItemStore) FindPurchasedByOwner(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	return s.find(ctx, "owner_id = ? AND purchased = ?", owner, true)
}

// FindMergeCandidates implements service.GroceryItemStore.
func (s *GroceryItemStore) FindMergeCandidates(ctx context.Context, name, unit string, note *string, owner uuid.UUID) ([]*models.GroceryItem, error) {
	key := service.NewMergeKey(name, unit, note)
	return s.find(ctx,
		"owner_id = ? AND purchased = ? AND merge_name = ? AND merge_unit = ? "+
			"AND (merge_note = '' OR merge_note = ? OR ? = '')",
		owner, false, key.Name, key.Unit, key.Note, key.Note,
	)
}

// FindByID returns one of the owner's items
func (s *GroceryItemStore) FindByID(ctx context.Context, id uint, owner uuid.UUID) (*models.GroceryItem, error) {
	var item models.GroceryItem
	found, err := first(s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

// FindByIDs returns the owner's items among ids
func (s *GroceryItemStore) FindByIDs(ctx context.Context, ids []uint, owner uuid.UUID) ([]*models.GroceryItem, error) {
	if len(ids) == 0 {
		return []*models.GroceryItem{}, nil
	}
	return s.find(ctx, "id IN ? AND owner_id = ?", ids, owner)
}

// Save inserts or updates the item
func (s *GroceryItemStore) Save(ctx context.Context, item *models.GroceryItem) error {
	db := s.db.WithContext(ctx)
	if item.ID == 0 {
		return db.Create(item).Error
	}
	return db.Save(item).Error
}

// Delete removes the item
func (s *GroceryItemStore) Delete(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).Delete(&models.GroceryItem{}).Error
}
