package order

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzastore/internal/apperr"
	"pizzastore/internal/auth"
	"pizzastore/internal/events"
	"pizzastore/internal/logging"
	"pizzastore/internal/testutil"
	"pizzastore/models"
	"pizzastore/repository"
)

type fakePublisher struct {
	got []events.OrderPlaced
	err error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, ev events.OrderPlaced) error {
	f.got = append(f.got, ev)
	return f.err
}

func newService(t *testing.T, name string) (*Service, *fakePublisher) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	testutil.SeedUser(t, d, "alice", "pw", "customer")
	testutil.SeedUser(t, d, "bob", "pw", "customer")
	testutil.SeedUser(t, d, "mgr", "pw", "manager")
	testutil.SeedUser(t, d, "dan", "pw", "driver")
	testutil.SeedStore(t, d, 1)
	testutil.SeedItem(t, d, "Margherita", "entree", "9.5")
	testutil.SeedItem(t, d, "Soda", "drinks", "1.25")
	testutil.SeedOrder(t, d, 7, "mgr", 1, "1.25", "complete")

	exec := repository.NewExecutor(d, 0)
	pub := &fakePublisher{}
	return &Service{
		Items:  repository.NewItemRepository(exec),
		Stores: repository.NewStoreRepository(exec),
		Orders: repository.NewOrderRepository(exec),
		Users:  repository.NewUserRepository(exec),
		Events: pub,
		Log:    logging.Discard(),
	}, pub
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	svc, pub := newService(t, "svcplace")
	ctx := context.Background()

	r, err := svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Margherita", 2}, {"Soda", 1}, {"Margherita", 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(8), r.OrderID)
	assert.Equal(t, "$29.75", r.Quote.Total.String())

	var buf bytes.Buffer
	require.NoError(t, svc.Orders.PrintDetail(ctx, &buf, 8))
	assert.Contains(t, buf.String(), "Order Items | Quantity | \nMargherita  | 3        | \nSoda        | 1        | \n")

	require.Len(t, pub.got, 1)
	assert.Equal(t, int64(8), pub.got[0].OrderID)
	assert.Equal(t, int64(2975), pub.got[0].TotalCents)
	assert.Equal(t, "alice", pub.got[0].Login)
}

func TestPlaceOrder_PublishFailureKeepsOrder(t *testing.T) {
	svc, pub := newService(t, "svcpubfail")
	pub.err = errors.New("broker down")

	r, err := svc.PlaceOrder(context.Background(), "alice", 1, []Pair{{"Soda", 2}})
	require.NoError(t, err)
	ok, err := svc.Orders.Exists(context.Background(), r.OrderID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	svc, pub := newService(t, "svcreject")
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "alice", 42, []Pair{{"Soda", 1}})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "unknown store")

	_, err = svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Soda", 1}, {"Calzone", 1}})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "unknown item")

	_, err = svc.PlaceOrder(ctx, "alice", 1, nil)
	assert.True(t, errors.Is(err, apperr.ErrValidation), "empty order")

	wrapsAlone := math.MaxInt64/950 + 1
	_, err = svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Margherita", wrapsAlone}})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "quantity that would wrap the total")

	margheritas := math.MaxInt64 / 950
	sodas := math.MaxInt64 / 125
	_, err = svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Margherita", margheritas}, {"Soda", sodas}})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "lines whose sum would wrap the total")

	_, err = svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Soda", MaxQuantity}, {"Soda", 1}})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "repeats past the quantity cap")

	ok, err := svc.Orders.Exists(ctx, 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, pub.got)
}

func TestViewOrders_AccessScenario(t *testing.T) {
	svc, _ := newService(t, "svcview")
	ctx := context.Background()

	r, err := svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Margherita", 3}, {"Soda", 1}})
	require.NoError(t, err)

	bob := &auth.Principal{Name: "bob", Kind: models.RoleCustomer}
	var buf bytes.Buffer
	_, err = svc.ViewOrders(ctx, &buf, bob, Scope{Kind: ScopeByID, ID: r.OrderID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDenied))
	assert.Empty(t, buf.String(), "nothing revealed on denial")

	mgr := &auth.Principal{Name: "mgr", Kind: models.RoleManager}
	n, err := svc.ViewOrders(ctx, &buf, mgr, Scope{Kind: ScopeByID, ID: r.OrderID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	out := buf.String()
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "Order Timestamp")
	assert.Contains(t, out, "Margherita  | 3        | ")
	assert.Contains(t, out, "Soda        | 1        | ")

	buf.Reset()
	alice := &auth.Principal{Name: "alice", Kind: models.RoleCustomer}
	_, err = svc.ViewOrders(ctx, &buf, alice, Scope{Kind: ScopeByID, ID: r.OrderID})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "incomplete")

	_, err = svc.ViewOrders(ctx, &buf, mgr, Scope{Kind: ScopeByID, ID: 999})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestViewOrders_ListScopes(t *testing.T) {
	svc, _ := newService(t, "svclist")
	ctx := context.Background()
	_, err := svc.PlaceOrder(ctx, "alice", 1, []Pair{{"Soda", 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svc.ViewOrders(ctx, &buf, &auth.Principal{Name: "alice", Kind: models.RoleCustomer}, Scope{Kind: ScopeAll})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, buf.String(), "7 ")

	buf.Reset()
	n, err = svc.ViewOrders(ctx, &buf, &auth.Principal{Name: "bob", Kind: models.RoleCustomer}, Scope{Kind: ScopeRecent})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())

	n, err = svc.ViewOrders(ctx, &buf, &auth.Principal{Name: "dan", Kind: models.RoleDriver}, Scope{Kind: ScopeAll})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpdateStatus_RoleGated(t *testing.T) {
	svc, _ := newService(t, "svcstatus")
	ctx := context.Background()

	cctx := auth.WithPrincipal(ctx, &auth.Principal{Name: "alice", Kind: models.RoleCustomer})
	err := svc.UpdateStatus(cctx, 7, "delivered")
	assert.True(t, errors.Is(err, apperr.ErrDenied))

	logger, hook := logtest.NewNullLogger()
	svc.Log = logger
	dctx := auth.WithPrincipal(ctx, &auth.Principal{Name: "dan", Kind: models.RoleDriver})
	require.NoError(t, svc.UpdateStatus(dctx, 7, " delivered "))
	o, err := svc.Orders.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatus("delivered"), o.Status)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "order status changed", entry.Message)
	assert.Equal(t, "complete", entry.Data["from"])
	assert.Equal(t, "delivered", entry.Data["to"])
	assert.Equal(t, "dan", entry.Data["by"])

	assert.True(t, errors.Is(svc.UpdateStatus(dctx, 7, "  "), apperr.ErrValidation))
	hook.Reset()
	assert.True(t, errors.Is(svc.UpdateStatus(dctx, 404, "x"), apperr.ErrNotFound))
	assert.Empty(t, hook.AllEntries(), "nothing logged for a missing order")
}
