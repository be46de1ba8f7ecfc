package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store/memory"
	"github.com/pageza/grocerly/backend/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStores(t *testing.T) {
	storetest.Run(t, func(t *testing.T) service.UnitOfWork {
		return memory.New()
	})
}

func TestReturnedValuesAreCopies(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	owner := uuid.New()
	items := db.Stores().GroceryItems

	item := &models.GroceryItem{OwnerID: owner, ItemName: "Eggs", Quantity: 6}
	require.NoError(t, items.Save(ctx, item))

	got, err := items.FindByID(ctx, item.ID, owner)
	require.NoError(t, err)
	got.Quantity = 100

	again, err := items.FindByID(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 6.0, again.Quantity)
}

func TestCancelledContext(t *testing.T) {
	db := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Stores().GroceryItems.FindActiveByOwner(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)

	err = db.WithinOwner(ctx, uuid.New(), func(service.Stores) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
