package db

import (
	"context"
	"fmt"
)

type seedItem struct {
	name, kind, price, description, ingredients string
}

var seedItems = []seedItem{
	{"Cheese Pizza", "entree", "10.99", "Classic mozzarella pie", "dough,tomato sauce,mozzarella"},
	{"Pepperoni Pizza", "entree", "12.49", "Loaded with pepperoni", "dough,tomato sauce,mozzarella,pepperoni"},
	{"Veggie Pizza", "entree", "11.75", "Peppers, onions and olives", "dough,tomato sauce,mozzarella,peppers,onions,olives"},
	{"Garlic Bread", "sides", "4.50", "Toasted with garlic butter", "bread,garlic,butter"},
	{"Wings", "sides", "8.25", "Six spicy wings", "chicken,hot sauce"},
	{"Coke", "drinks", "1.99", "20oz bottle", "carbonated water,sugar"},
	{"Lemonade", "drinks", "2.25", "Fresh squeezed", "lemon,water,sugar"},
}

var seedStores = []struct {
	id                                  int
	address, city, state, isOpen, score string
}{
	{1, "100 Main St", "Riverside", "CA", "yes", "4.5"},
	{2, "25 University Ave", "Riverside", "CA", "yes", "4.1"},
	{3, "9 Market St", "Irvine", "CA", "no", "3.8"},
}

var seedUsers = []struct {
	login, password, role, phone string
}{
	{"guest", "guest", "customer", "555-0100"},
	{"driver", "driver", "driver", "555-0101"},
	{"manager", "manager", "manager", "555-0102"},
}

// Seed inserts a demo catalog, stores, one user per role and one historical
// order so that new orders have an identifier to follow. Existing rows are
// left untouched.
func Seed(ctx context.Context, d *DB) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range seedItems {
		if _, err := tx.ExecContext(ctx, d.Dialect.Rebind(`INSERT INTO Items (itemName, typeOfItem, price, description, ingredients)
VALUES (?, ?, ?, ?, ?) ON CONFLICT (itemName) DO NOTHING`), it.name, it.kind, it.price, it.description, it.ingredients); err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
	}
	for _, s := range seedStores {
		if _, err := tx.ExecContext(ctx, d.Dialect.Rebind(`INSERT INTO Store (storeID, address, city, state, isOpen, reviewScore)
VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (storeID) DO NOTHING`), s.id, s.address, s.city, s.state, s.isOpen, s.score); err != nil {
			return fmt.Errorf("seed store %d: %w", s.id, err)
		}
	}
	for _, u := range seedUsers {
		if _, err := tx.ExecContext(ctx, d.Dialect.Rebind(`INSERT INTO Users (login, password, role, favoriteItems, phoneNum)
VALUES (?, ?, ?, NULL, ?) ON CONFLICT (login) DO NOTHING`), u.login, u.password, u.role, u.phone); err != nil {
			return fmt.Errorf("seed user %s: %w", u.login, err)
		}
	}
	if _, err := tx.ExecContext(ctx, d.Dialect.Rebind(`INSERT INTO FoodOrder (orderID, login, storeID, totalPrice, orderTimestamp, orderStatus)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, ?) ON CONFLICT (orderID) DO NOTHING`), 1, "manager", 1, "10.99", "complete"); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	if _, err := tx.ExecContext(ctx, d.Dialect.Rebind(`INSERT INTO ItemsInOrder (orderID, itemName, quantity)
VALUES (?, ?, ?) ON CONFLICT (orderID, itemName) DO NOTHING`), 1, "Cheese Pizza", 1); err != nil {
		return fmt.Errorf("seed order line: %w", err)
	}
	return tx.Commit()
}
