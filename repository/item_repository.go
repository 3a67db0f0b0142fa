package repository

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"pizzastore/models"
)

// MenuSort orders the printed menu.
type MenuSort int

const (
	SortDefault MenuSort = iota
	SortPriceAsc
	SortPriceDesc
)

// MenuQuery filters the printed menu. An empty Type means every section;
// a nil MaxPrice means no price ceiling.
type MenuQuery struct {
	Type     models.ItemType
	MaxPrice *decimal.Decimal
	Sort     MenuSort
}

type ItemRepository struct {
	exec *Executor
}

func NewItemRepository(exec *Executor) *ItemRepository {
	return &ItemRepository{exec: exec}
}

// Names returns every item name on the menu.
func (r *ItemRepository) Names(ctx context.Context) ([]string, error) {
	res, err := r.exec.ExecuteRead(ctx, `SELECT itemName FROM Items`)
	if err != nil {
		return nil, err
	}
	names := res.Column(0)
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}

// Price returns the stored price text of an item; ok is false when the item
// does not exist or has no price.
func (r *ItemRepository) Price(ctx context.Context, name string) (string, bool, error) {
	res, err := r.exec.ExecuteRead(ctx, `SELECT price FROM Items WHERE itemName = ?`, name)
	if err != nil {
		return "", false, err
	}
	v, ok := res.First()
	return strings.TrimSpace(v), ok, nil
}

// PrintMenu renders the menu section selected by q and returns the row count.
func (r *ItemRepository) PrintMenu(ctx context.Context, w io.Writer, q MenuQuery) (int, error) {
	stmt := `SELECT typeOfItem AS "Type", itemName AS "Item", price AS "Price", description AS "Description", ingredients AS "Ingredients" FROM Items`
	var where []string
	var args []any
	if q.Type != "" {
		where = append(where, "typeOfItem = ?")
		args = append(args, string(q.Type))
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	switch q.Sort {
	case SortPriceAsc:
		stmt += " ORDER BY price ASC"
	case SortPriceDesc:
		stmt += " ORDER BY price DESC"
	}
	return r.exec.ExecuteReadAndPrint(ctx, w, stmt, args...)
}
