package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzastore/internal/apperr"
	"pizzastore/internal/testutil"
	"pizzastore/models"
	"pizzastore/repository"
)

func TestCanViewAllAndScope(t *testing.T) {
	assert.True(t, CanViewAll(models.RoleManager))
	assert.True(t, CanViewAll(models.RoleDriver))
	assert.False(t, CanViewAll(models.RoleCustomer))

	login, restricted := OrderScope(&Principal{Name: "alice", Kind: models.RoleCustomer})
	assert.True(t, restricted)
	assert.Equal(t, "alice", login)

	login, restricted = OrderScope(&Principal{Name: "dan", Kind: models.RoleDriver})
	assert.False(t, restricted)
	assert.Empty(t, login)
}

func TestAuthorizeOrderView(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "guardview")
	testutil.SeedUser(t, d, "alice", "pw", "customer")
	testutil.SeedUser(t, d, "bob", "pw", "customer")
	testutil.SeedStore(t, d, 1)
	testutil.SeedOrder(t, d, 8, "alice", 1, "29.75", "incomplete")
	orders := repository.NewOrderRepository(repository.NewExecutor(d, 0))
	ctx := context.Background()

	assert.NoError(t, AuthorizeOrderView(ctx, &Principal{Name: "alice", Kind: models.RoleCustomer}, 8, orders))

	err := AuthorizeOrderView(ctx, &Principal{Name: "bob", Kind: models.RoleCustomer}, 8, orders)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDenied))

	assert.NoError(t, AuthorizeOrderView(ctx, &Principal{Name: "mgr", Kind: models.RoleManager}, 8, orders))
	assert.NoError(t, AuthorizeOrderView(ctx, &Principal{Name: "dan", Kind: models.RoleDriver}, 999, orders))
}

func TestRequireRole_WithDBRoleCheck(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "guardrole")
	testutil.SeedUser(t, d, "alice", "pw", "customer")
	users := repository.NewUserRepository(repository.NewExecutor(d, 0))
	ctx := context.Background()

	_, err := RequireRole(ctx, users, models.RoleDriver)
	assert.True(t, errors.Is(err, apperr.ErrAuth), "no principal")

	// Forged token claims driver, stored role is customer.
	pctx := WithPrincipal(ctx, &Principal{Name: "alice", Kind: models.RoleDriver})
	_, err = RequireRole(pctx, users, models.RoleDriver, models.RoleManager)
	assert.True(t, errors.Is(err, apperr.ErrDenied))

	require.NoError(t, users.UpdateRole(ctx, "alice", models.RoleDriver))
	p, err := RequireRole(pctx, users, models.RoleDriver, models.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)

	cctx := WithPrincipal(ctx, &Principal{Name: "alice", Kind: models.RoleCustomer})
	_, err = RequireRole(cctx, users, models.RoleManager)
	assert.True(t, errors.Is(err, apperr.ErrDenied))
}

func TestAuthenticator_Login(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "authlogin")
	testutil.SeedUser(t, d, "alice", "Secret", "customer")
	users := repository.NewUserRepository(repository.NewExecutor(d, 0))
	hashed, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), models.User{Login: "mgr", Password: hashed, Role: models.RoleManager, PhoneNum: "1"}))

	a := &Authenticator{Users: users, Secret: testSecret, TTL: time.Minute}
	ctx := context.Background()

	s, err := a.Login(ctx, "alice", "Secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, s.Role)
	p, err := a.Resume(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.Principal(), p)

	_, err = a.Login(ctx, "alice", "secret")
	assert.True(t, errors.Is(err, apperr.ErrAuth), "comparison is case-sensitive")
	_, err = a.Login(ctx, "nobody", "Secret")
	assert.True(t, errors.Is(err, apperr.ErrAuth))

	s, err = a.Login(ctx, "mgr", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, s.Role)
	_, err = a.Login(ctx, "mgr", hashed)
	assert.True(t, errors.Is(err, apperr.ErrAuth), "the hash itself is not a password")
}

func TestAuthenticator_ResumeExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	a := &Authenticator{Secret: testSecret, TTL: time.Hour, Now: func() time.Time { return past }}
	tok, err := issueJWT(Principal{Name: "alice", Kind: models.RoleCustomer}, a.Secret, a.TTL, past)
	require.NoError(t, err)

	_, err = a.Resume(tok)
	assert.True(t, errors.Is(err, apperr.ErrAuth))
}

func TestPasswordMatches(t *testing.T) {
	assert.True(t, PasswordMatches("pw", "pw"))
	assert.True(t, PasswordMatches("pw   ", "pw"), "CHAR padding is ignored")
	assert.False(t, PasswordMatches("pw", "PW"))
	assert.False(t, PasswordMatches("pw", ""))
}
