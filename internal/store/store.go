// Package store implements the service collaborator stores on gorm.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/lock"
	"github.com/pageza/grocerly/backend/internal/service"
	"gorm.io/gorm"
)

// UnitOfWork runs owner-scoped work inside a gorm transaction guarded by a
// Locker.
type UnitOfWork struct {
	db     *gorm.DB
	locker lock.Locker
}

var _ service.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a UnitOfWork. A nil locker falls back to an
// in-process lock.
func NewUnitOfWork(db *gorm.DB, locker lock.Locker) *UnitOfWork {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &UnitOfWork{db: db, locker: locker}
}

// Stores returns stores that run each call in its own statement.
func (u *UnitOfWork) Stores() service.Stores {
	return newStores(u.db)
}

// WithinOwner implements service.UnitOfWork.
func (u *UnitOfWork) WithinOwner(ctx context.Context, owner uuid.UUID, fn func(tx service.Stores) error) error {
	release, err := u.locker.Acquire(ctx, owner.String())
	if err != nil {
		return err
	}
	defer release()

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStores(tx))
	})
}

func newStores(db *gorm.DB) service.Stores {
	return service.Stores{
		Recipes:      &RecipeStore{db: db},
		MealPlans:    &MealPlanStore{db: db},
		GroceryItems: &GroceryItemStore{db: db},
		Ingredients:  &IngredientStore{db: db},
		GroceryLists: &GroceryListStore{db: db},
	}
}

// first runs q.First and maps a missing row to a nil error and found=false.
func first(q *gorm.DB, dest any) (bool, error) {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
