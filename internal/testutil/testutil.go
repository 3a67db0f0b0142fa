package testutil

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"pizzastore/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *db.DB {
	t.Helper()
	// Shared cache so that every connection of the pool sees the same database.
	d, err := db.Open(context.Background(), "sqlite", "file:"+name+"?mode=memory&cache=shared", true)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedUser inserts a user row.
func SeedUser(t *testing.T, d *db.DB, login, password, role string) {
	t.Helper()
	exec(t, d, `INSERT INTO Users (login, password, role, favoriteItems, phoneNum) VALUES (?, ?, ?, NULL, ?)`,
		login, password, role, "555-0199")
}

// SeedItem inserts a menu item with the given price text.
func SeedItem(t *testing.T, d *db.DB, name, kind, price string) {
	t.Helper()
	exec(t, d, `INSERT INTO Items (itemName, typeOfItem, price, description, ingredients) VALUES (?, ?, ?, ?, ?)`,
		name, kind, price, name+" description", "")
}

// SeedStore inserts a store.
func SeedStore(t *testing.T, d *db.DB, id int) {
	t.Helper()
	exec(t, d, `INSERT INTO Store (storeID, address, city, state, isOpen, reviewScore) VALUES (?, ?, ?, ?, ?, ?)`,
		id, "1 Test Way", "Riverside", "CA", "yes", "4.0")
}

// SeedOrder inserts an order header without line items.
func SeedOrder(t *testing.T, d *db.DB, id int64, login string, storeID int, total, status string) {
	t.Helper()
	exec(t, d, `INSERT INTO FoodOrder (orderID, login, storeID, totalPrice, orderTimestamp, orderStatus) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, ?)`,
		id, login, storeID, total, status)
}

// SeedOrderAt inserts an order header with an explicit timestamp.
func SeedOrderAt(t *testing.T, d *db.DB, id int64, login string, storeID int, at time.Time) {
	t.Helper()
	exec(t, d, `INSERT INTO FoodOrder (orderID, login, storeID, totalPrice, orderTimestamp, orderStatus) VALUES (?, ?, ?, ?, ?, ?)`,
		id, login, storeID, "1.00", at.UTC().Format("2006-01-02 15:04:05"), "complete")
}

// SeedLine inserts a line item.
func SeedLine(t *testing.T, d *db.DB, orderID int64, item string, qty int) {
	t.Helper()
	exec(t, d, `INSERT INTO ItemsInOrder (orderID, itemName, quantity) VALUES (?, ?, ?)`, orderID, item, qty)
}

// GenerateJWTHS256 returns a signed session token with the claims used by the app.
func GenerateJWTHS256(t *testing.T, secret, name, kind string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"name": name,
		"kind": kind,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func exec(t *testing.T, d *db.DB, query string, args ...any) {
	t.Helper()
	if _, err := d.Exec(d.Dialect.Rebind(query), args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
