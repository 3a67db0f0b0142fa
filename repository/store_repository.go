package repository

import (
	"context"
	"io"
	"strconv"
	"strings"

	"pizzastore/internal/apperr"
	"pizzastore/models"
)

type StoreRepository struct {
	exec *Executor
}

func NewStoreRepository(exec *Executor) *StoreRepository {
	return &StoreRepository{exec: exec}
}

// GetByID returns the store or nil when it does not exist.
func (r *StoreRepository) GetByID(ctx context.Context, id int) (*models.Store, error) {
	res, err := r.exec.ExecuteRead(ctx,
		`SELECT storeID, address, city, state, isOpen, reviewScore FROM Store WHERE storeID = ?`, id)
	if err != nil {
		return nil, err
	}
	if res.Len() == 0 {
		return nil, nil
	}
	row := res.Rows[0]
	sid, err := strconv.Atoi(strings.TrimSpace(row[0].String))
	if err != nil {
		return nil, apperr.Backend("get store", "unexpected storeID value", err)
	}
	return &models.Store{
		ID:          sid,
		Address:     row[1].String,
		City:        row[2].String,
		State:       row[3].String,
		IsOpen:      strings.TrimSpace(row[4].String),
		ReviewScore: row[5].String,
	}, nil
}

// Exists reports whether a store with the id exists.
func (r *StoreRepository) Exists(ctx context.Context, id int) (bool, error) {
	n, err := r.exec.ExecuteReadCount(ctx, `SELECT storeID FROM Store WHERE storeID = ?`, id)
	return n > 0, err
}

// PrintAll renders every store.
func (r *StoreRepository) PrintAll(ctx context.Context, w io.Writer) (int, error) {
	return r.exec.ExecuteReadAndPrint(ctx, w,
		`SELECT storeID AS "Store ID", address AS "Address", city AS "City", state AS "State", isOpen AS "Open", reviewScore AS "Review Score" FROM Store ORDER BY storeID`)
}
