package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzastore/internal/apperr"
	"pizzastore/internal/testutil"
	"pizzastore/models"
	"pizzastore/repository"
)

func newCatalog(t *testing.T, name string) *Service {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	testutil.SeedItem(t, d, "Margherita", "entree", "9.5")
	testutil.SeedItem(t, d, "Wings", "sides", "6.75")
	testutil.SeedItem(t, d, "Soda", "drinks", "1.25")
	testutil.SeedStore(t, d, 1)
	exec := repository.NewExecutor(d, 0)
	return &Service{Items: repository.NewItemRepository(exec), Stores: repository.NewStoreRepository(exec)}
}

func TestViewMenu(t *testing.T) {
	s := newCatalog(t, "catmenu")
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := s.ViewMenu(ctx, &buf, repository.MenuQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "Type   | Item       | Price | Description")

	buf.Reset()
	n, err = s.ViewMenu(ctx, &buf, repository.MenuQuery{Type: models.ItemSides})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "Wings")

	buf.Reset()
	limit := decimal.RequireFromString("2")
	n, err = s.ViewMenu(ctx, &buf, repository.MenuQuery{MaxPrice: &limit, Sort: repository.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.ViewMenu(ctx, &buf, repository.MenuQuery{Type: "dessert"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	neg := decimal.NewFromInt(-1)
	_, err = s.ViewMenu(ctx, &buf, repository.MenuQuery{MaxPrice: &neg})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestViewStores(t *testing.T) {
	s := newCatalog(t, "catstores")
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := s.ViewStores(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "Riverside")

	ok, err := s.StoreExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.StoreExists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
