// Package catalog lists menu items and stores.
package catalog

import (
	"context"
	"io"

	"pizzastore/internal/apperr"
	"pizzastore/models"
	"pizzastore/repository"
)

// Service browses the menu and stores.
type Service struct {
	Items  repository.ItemRepositoryI
	Stores repository.StoreRepositoryI
}

// ViewMenu prints the menu rows selected by q and returns how many matched.
func (s *Service) ViewMenu(ctx context.Context, w io.Writer, q repository.MenuQuery) (int, error) {
	switch q.Type {
	case "", models.ItemEntree, models.ItemSides, models.ItemDrinks:
	default:
		return 0, apperr.Validation("view menu", "unknown item type %q", q.Type)
	}
	if q.MaxPrice != nil && q.MaxPrice.IsNegative() {
		return 0, apperr.Validation("view menu", "maximum price cannot be negative")
	}
	return s.Items.PrintMenu(ctx, w, q)
}

// ViewStores prints every store and returns the count.
func (s *Service) ViewStores(ctx context.Context, w io.Writer) (int, error) {
	return s.Stores.PrintAll(ctx, w)
}

// StoreExists reports whether a store with id exists.
func (s *Service) StoreExists(ctx context.Context, id int) (bool, error) {
	return s.Stores.Exists(ctx, id)
}
