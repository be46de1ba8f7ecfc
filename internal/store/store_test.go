package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/lock"
	"github.com/pageza/grocerly/backend/internal/models"
	"github.com/pageza/grocerly/backend/internal/service"
	"github.com/pageza/grocerly/backend/internal/store"
	"github.com/pageza/grocerly/backend/internal/store/storetest"
	"github.com/pageza/grocerly/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStores(t *testing.T) {
	storetest.Run(t, func(t *testing.T) service.UnitOfWork {
		return store.NewUnitOfWork(testhelpers.SetupSQLite(t), lock.NewLocal())
	})
}

func TestPostgresStores(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	storetest.Run(t, func(t *testing.T) service.UnitOfWork {
		// every case uses fresh owners, so one database serves them all
		return store.NewUnitOfWork(db, nil)
	})
}

func TestConcurrentMergeOrAddSameOwner(t *testing.T) {
	uow := store.NewUnitOfWork(testhelpers.SetupSQLite(t), lock.NewLocal())
	svc := service.NewGroceryService(uow)
	owner := uuid.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: "Milk", Unit: "l", Quantity: 0.5})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	active, err := svc.ListActive(ctx, owner)
	require.NoError(t, err)
	require.Len(t, active, 1, "concurrent merges never duplicate a key")
	assert.InDelta(t, 5.0, active[0].Quantity, 1e-9)
}

func TestMergeOrAddFoldsSpellingsOnSQLite(t *testing.T) {
	cases := []struct{ first, second string }{
		{"ÉCLAIR", "éclair"},
		{"Milk\t", "milk"},
		{" Straße", "straße"},
	}
	for _, tc := range cases {
		t.Run(tc.second, func(t *testing.T) {
			uow := store.NewUnitOfWork(testhelpers.SetupSQLite(t), lock.NewLocal())
			svc := service.NewGroceryService(uow)
			owner := uuid.New()
			ctx := context.Background()

			_, err := svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: tc.first, Unit: "pcs", Quantity: 1})
			require.NoError(t, err)
			_, err = svc.MergeOrAdd(ctx, &models.GroceryItem{OwnerID: owner, ItemName: tc.second, Unit: "PCS ", Quantity: 2})
			require.NoError(t, err)

			active, err := svc.ListActive(ctx, owner)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.InDelta(t, 3.0, active[0].Quantity, 1e-9)
			assert.Equal(t, tc.first, active[0].ItemName)
		})
	}
}
