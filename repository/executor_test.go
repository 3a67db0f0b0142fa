package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzastore/internal/apperr"
	"pizzastore/internal/testutil"
)

func TestExecutor_ReadWriteCount(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "execrw")
	exec := NewExecutor(d, 0)
	ctx := context.Background()

	n, err := exec.ExecuteWrite(ctx, `INSERT INTO Users (login, password, role, favoriteItems, phoneNum) VALUES (?, ?, ?, ?, ?)`,
		"alice", "pw", "customer", nil, "555")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	res, err := exec.ExecuteRead(ctx, `SELECT login, favoriteItems FROM Users WHERE login = ?`, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "favoriteItems"}, res.Columns)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "alice", res.Rows[0][0].String)
	assert.False(t, res.Rows[0][1].Valid, "NULL stays null")

	first, ok := res.First()
	assert.True(t, ok)
	assert.Equal(t, "alice", first)

	count, err := exec.ExecuteReadCount(ctx, `SELECT login FROM Users WHERE login = ?`, "nobody")
	require.NoError(t, err)
	assert.Zero(t, count)

	n, err = exec.ExecuteWrite(ctx, `UPDATE Users SET phoneNum = ? WHERE login = ?`, "1", "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecutor_ReadAndPrint(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "execprint")
	testutil.SeedItem(t, d, "Soda", "drinks", "1.25")
	exec := NewExecutor(d, 0)

	var buf bytes.Buffer
	n, err := exec.ExecuteReadAndPrint(context.Background(), &buf, `SELECT itemName AS "Item", price AS "Price" FROM Items`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Item | Price | \nSoda | 1.25  | \n", buf.String())
}

func TestExecutor_BackendError(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "execerr")
	exec := NewExecutor(d, 0)

	_, err := exec.ExecuteRead(context.Background(), `SELECT nope FROM Missing`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrBackend))
	assert.Contains(t, err.Error(), "Missing")

	_, err = exec.ExecuteWrite(context.Background(), `INSERT INTO Missing VALUES (1)`)
	assert.True(t, errors.Is(err, apperr.ErrBackend))
}

func TestExecutor_InTxRollsBack(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "exectx")
	exec := NewExecutor(d, 0)
	ctx := context.Background()
	boom := errors.New("boom")

	err := exec.InTx(ctx, func(tx *Executor) error {
		if _, err := tx.ExecuteWrite(ctx, `INSERT INTO Store (storeID, address) VALUES (?, ?)`, 1, "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := exec.ExecuteReadCount(ctx, `SELECT storeID FROM Store`)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, exec.InTx(ctx, func(tx *Executor) error {
		_, err := tx.ExecuteWrite(ctx, `INSERT INTO Store (storeID, address) VALUES (?, ?)`, 1, "x")
		return err
	}))
	n, err = exec.ExecuteReadCount(ctx, `SELECT storeID FROM Store`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExecutor_NestedTxRejected(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "execnested")
	exec := NewExecutor(d, 0)
	ctx := context.Background()

	err := exec.InTx(ctx, func(tx *Executor) error {
		return tx.InTx(ctx, func(*Executor) error { return nil })
	})
	assert.Error(t, err)
}
