package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarkPurchased moves the owner's items with the given ids to the purchased
// state stamped with today. Unknown and foreign ids are skipped. Marking an
// already purchased item refreshes its date.
func (s *GroceryService) MarkPurchased(ctx context.Context, ids []uint, owner uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	date := today(s.clock)

	var marked int
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		items, err := tx.GroceryItems.FindByIDs(ctx, ids, owner)
		if err != nil {
			return fmt.Errorf("failed to load grocery items: %w", err)
		}
		for _, item := range items {
			if item.OwnerID != owner {
				continue
			}
			item.MarkPurchased(date)
			if err := tx.GroceryItems.Save(ctx, item); err != nil {
				return fmt.Errorf("failed to mark grocery item %d purchased: %w", item.ID, err)
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("marked grocery items purchased",
		zapOwner(owner), zap.Int("requested", len(ids)), zap.Int("marked", marked))
	return nil
}

// MarkUnpurchased moves the owner's items with the given ids back to the
// active list. Unknown and foreign ids are skipped, as are items already
// active. When the active list already holds an item with the same merge key,
// the reverted quantity is folded into it and the purchased row is deleted.
func (s *GroceryService) MarkUnpurchased(ctx context.Context, ids []uint, owner uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	var reverted, folded int
	err := s.uow.WithinOwner(ctx, owner, func(tx Stores) error {
		items, err := tx.GroceryItems.FindByIDs(ctx, ids, owner)
		if err != nil {
			return fmt.Errorf("failed to load grocery items: %w", err)
		}
		for _, item := range items {
			if item.OwnerID != owner || !item.Purchased {
				continue
			}

			found, err := tx.GroceryItems.FindMergeCandidates(ctx, item.ItemName, item.Unit, item.Note, owner)
			if err != nil {
				return fmt.Errorf("failed to find merge candidates: %w", err)
			}
			key := NewMergeKey(item.ItemName, item.Unit, item.Note)
			if match := firstMatch(found, key, owner); match != nil {
				match.Quantity += item.Quantity
				if err := tx.GroceryItems.Save(ctx, match); err != nil {
					return fmt.Errorf("failed to update grocery item %d: %w", match.ID, err)
				}
				if err := tx.GroceryItems.Delete(ctx, item.ID, owner); err != nil {
					return fmt.Errorf("failed to delete grocery item %d: %w", item.ID, err)
				}
				folded++
				continue
			}

			item.MarkActive()
			if err := tx.GroceryItems.Save(ctx, item); err != nil {
				return fmt.Errorf("failed to mark grocery item %d active: %w", item.ID, err)
			}
			reverted++
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("marked grocery items unpurchased",
		zapOwner(owner), zap.Int("requested", len(ids)), zap.Int("reverted", reverted), zap.Int("folded", folded))
	return nil
}
