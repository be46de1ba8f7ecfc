package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/types"
	"go.uber.org/zap"
)

// GroceryService handles shopping list aggregation, merging and purchase state
type GroceryService struct {
	uow      UnitOfWork
	resolver *MergeResolver
	clock    Clock
	logger   *zap.Logger
}

// Ensure GroceryService implements IGroceryService
var _ IGroceryService = (*GroceryService)(nil)

// NewGroceryService creates a new GroceryService instance
func NewGroceryService(uow UnitOfWork, opts ...Option) *GroceryService {
	o := buildOptions(opts)
	return &GroceryService{
		uow:      uow,
		resolver: NewMergeResolver(o.clock),
		clock:    o.clock,
		logger:   o.logger.Named("grocery"),
	}
}

func zapOwner(owner uuid.UUID) zap.Field {
	return zap.String("owner_id", owner.String())
}

// MergeOrAdd adds a manual or generated item to the candidate owner's list,
// merging it into an existing active item with the same key.
func (s *GroceryService) MergeOrAdd(ctx context.Context, candidate *models.GroceryItem) (*models.GroceryItem, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	var result *models.GroceryItem
	err := s.uow.WithinOwner(ctx, candidate.OwnerID, func(tx Stores) error {
		var err error
		result, err = s.resolver.MergeOrAdd(ctx, tx.GroceryItems, candidate)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("merged grocery item",
		zapOwner(candidate.OwnerID), zap.Uint("item_id", result.ID), zap.Float64("quantity", result.Quantity))
	return result, nil
}

// ListActive returns the owner's unpurchased items, most recently added first.
func (s *GroceryService) ListActive(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	items, err := s.uow.Stores().GroceryItems.FindActiveByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list active grocery items: %w", err)
	}
	sortByDateDesc(items, func(g *models.GroceryItem) string { return g.DateAdded })
	return items, nil
}

// ListPurchased returns the owner's purchased items, most recently purchased first.
func (s *GroceryService) ListPurchased(ctx context.Context, owner uuid.UUID) ([]*models.GroceryItem, error) {
	items, err := s.uow.Stores().GroceryItems.FindPurchasedByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchased grocery items: %w", err)
	}
	sortByDateDesc(items, func(g *models.GroceryItem) string {
		if g.DatePurchased == nil {
			return ""
		}
		return *g.DatePurchased
	})
	return items, nil
}

// sortByDateDesc orders items by a DD-MM-YYYY date, newest first, then by id
// descending. Unparsable dates sort last.
func sortByDateDesc(items []*models.GroceryItem, date func(*models.GroceryItem) string) {
	parsed := make(map[uint]time.Time, len(items))
	for _, item := range items {
		if t, err := time.Parse(models.DateLayout, strings.TrimSpace(date(item))); err == nil {
			parsed[item.ID] = t
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := parsed[items[i].ID]
		tj, jok := parsed[items[j].ID]
		switch {
		case iok && !jok:
			return true
		case !iok && jok:
			return false
		case iok && jok && !ti.Equal(tj):
			return ti.After(tj)
		}
		return items[i].ID > items[j].ID
	})
}

// UpdateItem edits an item in place. Renaming an active item onto the key of
// another active item is rejected.
func (s *GroceryService) UpdateItem(ctx context.Context, id uint, owner uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error) {
	if req == nil {
		return nil, invalidf("update request is required")
	}
	if req.ItemName != nil && strings.TrimSpace(*req.ItemName) == "" {
		return nil, invalidf("grocery item name is required")
	}
	if req.Quantity != nil && (math.IsNaN(*req.Quantity) || math.IsInf(*req.Quantity, 0) || *req.Quantity < 0) {
		return nil, invalidf("quantity %v must be a non-negative number", *req.Quantity)
	}

	var item *models.GroceryItem
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		var err error
		item, err = tx.GroceryItems.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load grocery item %d: %w", id, err)
		}
		if item == nil {
			return notFoundf("grocery item %d", id)
		}

		if req.ItemName != nil {
			item.ItemName = *req.ItemName
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Note != nil {
			note := *req.Note
			item.Note = &note
		}
		if req.DateAdded != nil {
			item.DateAdded = *req.DateAdded
		}

		if !item.Purchased {
			if err := s.ensureNoActiveDuplicate(ctx, tx.GroceryItems, item); err != nil {
				return err
			}
		}
		return tx.GroceryItems.Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GroceryService) ensureNoActiveDuplicate(ctx context.Context, items GroceryItemStore, item *models.GroceryItem) error {
	found, err := items.FindMergeCandidates(ctx, item.ItemName, item.Unit, item.Note, item.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to find merge candidates: %w", err)
	}
	key := NewMergeKey(item.ItemName, item.Unit, item.Note)
	for _, other := range found {
		if other.ID == item.ID {
			continue
		}
		if key.Matches(NewMergeKey(other.ItemName, other.Unit, other.Note)) {
			return conflictf("grocery item %d already lists %q", other.ID, other.ItemName)
		}
	}
	return nil
}

// DeleteItem removes one of the owner's items.
func (s *GroceryService) DeleteItem(ctx context.Context, id uint, owner uuid.UUID) error {
	return s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		item, err := tx.GroceryItems.FindByID(ctx, id, owner)
		if err != nil {
			return fmt.Errorf("failed to load grocery item %d: %w", id, err)
		}
		if item == nil {
			return notFoundf("grocery item %d", id)
		}
		if err := tx.GroceryItems.Delete(ctx, id, owner); err != nil {
			return fmt.Errorf("failed to delete grocery item %d: %w", id, err)
		}
		return nil
	})
}
