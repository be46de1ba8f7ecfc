package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
)

// MergeResolver folds a candidate grocery item into the owner's active list.
type MergeResolver struct {
	clock Clock
}

// NewMergeResolver creates a MergeResolver stamping new items with clock's today.
func NewMergeResolver(clock Clock) *MergeResolver {
	if clock == nil {
		clock = systemClock{}
	}
	return &MergeResolver{clock: clock}
}

// MergeOrAdd increments the quantity of the active item matching candidate or
// inserts candidate as a new active item. It performs exactly one write.
// Callers must run it inside UnitOfWork.WithinOwner.
func (r *MergeResolver) MergeOrAdd(ctx context.Context, items GroceryItemStore, candidate *models.GroceryItem) (*models.GroceryItem, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	key := NewMergeKey(candidate.ItemName, candidate.Unit, candidate.Note)
	found, err := items.FindMergeCandidates(ctx, candidate.ItemName, candidate.Unit, candidate.Note, candidate.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge candidates: %w", err)
	}

	if match := firstMatch(found, key, candidate.OwnerID); match != nil {
		match.Quantity += candidate.Quantity
		if err := items.Save(ctx, match); err != nil {
			return nil, fmt.Errorf("failed to update grocery item %d: %w", match.ID, err)
		}
		return match, nil
	}

	added := candidate.Clone()
	added.ID = 0
	if strings.TrimSpace(added.DateAdded) == "" {
		added.DateAdded = today(r.clock)
	}
	added.MarkActive()
	if err := items.Save(ctx, added); err != nil {
		return nil, fmt.Errorf("failed to add grocery item: %w", err)
	}
	return added, nil
}

// firstMatch picks the matching active item with the lowest id. Stores
// already filter, the checks here keep purchased or foreign rows from ever
// being merged into.
func firstMatch(found []*models.GroceryItem, key MergeKey, owner uuid.UUID) *models.GroceryItem {
	var match *models.GroceryItem
	for _, item := range found {
		if item.OwnerID != owner || item.Purchased {
			continue
		}
		if !key.Matches(NewMergeKey(item.ItemName, item.Unit, item.Note)) {
			continue
		}
		if match == nil || item.ID < match.ID {
			match = item
		}
	}
	return match
}

func validateCandidate(c *models.GroceryItem) error {
	if c == nil {
		return invalidf("grocery item is required")
	}
	if c.OwnerID == uuid.Nil {
		return invalidf("grocery item has no owner")
	}
	if strings.TrimSpace(c.ItemName) == "" {
		return invalidf("grocery item name is required")
	}
	if math.IsNaN(c.Quantity) || math.IsInf(c.Quantity, 0) || c.Quantity < 0 {
		return invalidf("quantity %v must be a non-negative number", c.Quantity)
	}
	return nil
}
