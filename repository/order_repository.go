package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pizzastore/internal/apperr"
	"pizzastore/models"
)

// ErrNoPriorOrder is returned by PlaceOrder when FoodOrder is empty: new
// identifiers are derived from the current maximum, so there is nothing to
// increment.
var ErrNoPriorOrder = &apperr.Error{
	Kind: apperr.KindNotFound,
	Op:   "next order id",
	Msg:  "no previous order to derive the next order ID from",
}

// NewOrder is an order ready to be written: one header and its line items.
// Lines must name distinct items.
type NewOrder struct {
	Login   string
	StoreID int
	Total   decimal.Decimal
	Lines   []models.LineItem
}

// OrderFilter selects the order IDs to print. An empty Login lists every
// order; Recent > 0 keeps only that many of the newest orders.
type OrderFilter struct {
	Login  string
	Recent int
}

// OrderRepository reads and writes FoodOrder and ItemsInOrder rows.
type OrderRepository struct {
	exec *Executor
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(exec *Executor) *OrderRepository {
	return &OrderRepository{exec: exec}
}

// PlaceOrder derives the next order ID from the current maximum and writes
// the header and every line item in one transaction. Nothing is written
// unless every statement succeeds. A failure after the header insert is
// reported as a consistency error wrapping the backend cause.
func (r *OrderRepository) PlaceOrder(ctx context.Context, o NewOrder) (int64, error) {
	if len(o.Lines) == 0 {
		return 0, apperr.Validation("place order", "an order needs at least one item")
	}
	var id int64
	err := r.exec.InTx(ctx, func(tx *Executor) error {
		next, err := nextOrderID(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.ExecuteWrite(ctx,
			`INSERT INTO FoodOrder (orderID, login, storeID, totalPrice, orderTimestamp, orderStatus) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, ?)`,
			next, o.Login, o.StoreID, o.Total.StringFixed(2), string(models.OrderStatusIncomplete)); err != nil {
			return err
		}
		for _, line := range o.Lines {
			if _, err := tx.ExecuteWrite(ctx,
				`INSERT INTO ItemsInOrder (orderID, itemName, quantity) VALUES (?, ?, ?)`,
				next, line.ItemName, line.Quantity); err != nil {
				return apperr.Consistency("place order",
					fmt.Sprintf("writing %s for order %d failed; order rolled back", line.ItemName, next), err)
			}
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func nextOrderID(ctx context.Context, tx *Executor) (int64, error) {
	res, err := tx.ExecuteRead(ctx, `SELECT orderID FROM FoodOrder ORDER BY orderID DESC LIMIT 1`)
	if err != nil {
		return 0, err
	}
	last, ok := res.First()
	if !ok {
		return 0, ErrNoPriorOrder
	}
	n, err := strconv.ParseInt(strings.TrimSpace(last), 10, 64)
	if err != nil {
		return 0, apperr.Backend("next order id", "unexpected orderID value", err)
	}
	return n + 1, nil
}

// GetByID fetches an order header, or nil when it does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	res, err := r.exec.ExecuteRead(ctx,
		`SELECT orderID, login, storeID, totalPrice, orderTimestamp, orderStatus FROM FoodOrder WHERE orderID = ?`, id)
	if err != nil {
		return nil, err
	}
	if res.Len() == 0 {
		return nil, nil
	}
	row := res.Rows[0]
	storeID, err := strconv.Atoi(strings.TrimSpace(row[2].String))
	if err != nil {
		return nil, apperr.Backend("get order", "unexpected storeID value", err)
	}
	return &models.Order{
		ID:         id,
		Login:      strings.TrimSpace(row[1].String),
		StoreID:    storeID,
		TotalPrice: row[3].String,
		PlacedAt:   row[4].String,
		Status:     models.OrderStatus(strings.TrimSpace(row[5].String)),
	}, nil
}

// Exists reports whether an order with the id exists.
func (r *OrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.exec.ExecuteReadCount(ctx, `SELECT orderID FROM FoodOrder WHERE orderID = ?`, id)
	return n > 0, err
}

// OwnedBy reports whether the order exists and belongs to login.
func (r *OrderRepository) OwnedBy(ctx context.Context, id int64, login string) (bool, error) {
	n, err := r.exec.ExecuteReadCount(ctx, `SELECT orderID FROM FoodOrder WHERE orderID = ? AND login = ?`, id, login)
	return n > 0, err
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	n, err := r.exec.ExecuteWrite(ctx, `UPDATE FoodOrder SET orderStatus = ? WHERE orderID = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("update order status", "Order ID %d does not exist!", id)
	}
	return nil
}

// PrintIDs renders the order IDs selected by f.
func (r *OrderRepository) PrintIDs(ctx context.Context, w io.Writer, f OrderFilter) (int, error) {
	stmt := `SELECT orderID AS "Order ID" FROM FoodOrder`
	var args []any
	if f.Login != "" {
		stmt += " WHERE login = ?"
		args = append(args, f.Login)
	}
	if f.Recent > 0 {
		stmt += " ORDER BY orderTimestamp DESC, orderID DESC LIMIT ?"
		args = append(args, f.Recent)
	} else {
		stmt += " ORDER BY orderID"
	}
	return r.exec.ExecuteReadAndPrint(ctx, w, stmt, args...)
}

// PrintDetail renders the header of an order followed by its line items.
func (r *OrderRepository) PrintDetail(ctx context.Context, w io.Writer, id int64) error {
	if _, err := r.exec.ExecuteReadAndPrint(ctx, w,
		`SELECT orderID AS "Order ID", orderStatus AS "Status", orderTimestamp AS "Order Timestamp" FROM FoodOrder WHERE orderID = ?`, id); err != nil {
		return err
	}
	_, err := r.exec.ExecuteReadAndPrint(ctx, w,
		`SELECT itemName AS "Order Items", quantity AS "Quantity" FROM ItemsInOrder WHERE orderID = ? ORDER BY itemName`, id)
	return err
}
