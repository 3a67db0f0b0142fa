package auth

import (
	"context"

	"pizzastore/internal/apperr"
	"pizzastore/models"
)

// RoleReader re-reads a login's stored role.
type RoleReader interface {
	RoleOf(ctx context.Context, login string) (models.Role, error)
}

// OwnershipChecker reports whether an order row exists for (orderID, login).
type OwnershipChecker interface {
	OwnedBy(ctx context.Context, orderID int64, login string) (bool, error)
}

// CanViewAll reports whether role may see every order.
func CanViewAll(role models.Role) bool {
	return role == models.RoleManager || role == models.RoleDriver
}

// OrderScope returns the login a listing must be restricted to. restricted is
// false for roles that see every order.
func OrderScope(p *Principal) (login string, restricted bool) {
	if CanViewAll(p.Kind) {
		return "", false
	}
	return p.Name, true
}

// AuthorizeOrderView allows drivers and managers through and requires a
// customer to own the order.
func AuthorizeOrderView(ctx context.Context, p *Principal, orderID int64, owns OwnershipChecker) error {
	if CanViewAll(p.Kind) {
		return nil
	}
	ok, err := owns.OwnedBy(ctx, orderID, p.Name)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Denied("view order", "You do not have access to order %d.", orderID)
	}
	return nil
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, apperr.Auth("require principal", "not logged in")
	}
	return p, nil
}

// RequireRole ensures the caller holds one of roles. The stored role is
// re-read so a stale or forged token cannot grant more than the backend says.
func RequireRole(ctx context.Context, users RoleReader, roles ...models.Role) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !hasRole(p.Kind, roles) {
		return nil, apperr.Denied("require role", "%s cannot perform this action", p.Kind)
	}
	if users == nil {
		return nil, apperr.Backend("require role", "users repository not configured", nil)
	}
	stored, err := users.RoleOf(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if !hasRole(stored, roles) {
		return nil, apperr.Denied("require role", "%s cannot perform this action", stored)
	}
	return p, nil
}

func hasRole(r models.Role, roles []models.Role) bool {
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}
