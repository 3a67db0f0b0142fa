package repository

import (
	"context"
	"io"

	"pizzastore/models"
)

// UserRepositoryI defines operations on User rows.
type UserRepositoryI interface {
	Create(ctx context.Context, u models.User) error
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Exists(ctx context.Context, login string) (bool, error)
	RoleOf(ctx context.Context, login string) (models.Role, error)
	UpdatePassword(ctx context.Context, login, password string) error
	UpdatePhone(ctx context.Context, login, phone string) error
	UpdateFavorites(ctx context.Context, login, favorites string) error
	PrintProfile(ctx context.Context, w io.Writer, login string) (int, error)
}

// ItemRepositoryI defines read operations on the menu.
type ItemRepositoryI interface {
	Names(ctx context.Context) ([]string, error)
	Price(ctx context.Context, name string) (string, bool, error)
	PrintMenu(ctx context.Context, w io.Writer, q MenuQuery) (int, error)
}

// StoreRepositoryI defines read operations on stores.
type StoreRepositoryI interface {
	GetByID(ctx context.Context, id int) (*models.Store, error)
	Exists(ctx context.Context, id int) (bool, error)
	PrintAll(ctx context.Context, w io.Writer) (int, error)
}

// OrderRepositoryI defines operations on FoodOrder and ItemsInOrder rows.
type OrderRepositoryI interface {
	PlaceOrder(ctx context.Context, o NewOrder) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Exists(ctx context.Context, id int64) (bool, error)
	OwnedBy(ctx context.Context, id int64, login string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	PrintIDs(ctx context.Context, w io.Writer, f OrderFilter) (int, error)
	PrintDetail(ctx context.Context, w io.Writer, id int64) error
}

var (
	_ UserRepositoryI  = (*UserRepository)(nil)
	_ ItemRepositoryI  = (*ItemRepository)(nil)
	_ StoreRepositoryI = (*StoreRepository)(nil)
	_ OrderRepositoryI = (*OrderRepository)(nil)
)
