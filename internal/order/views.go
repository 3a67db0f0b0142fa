package order

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"pizzastore/internal/apperr"
	"pizzastore/internal/auth"
	"pizzastore/models"
	"pizzastore/repository"
)

// RecentLimit is how many orders the recent view lists.
const RecentLimit = 5

// ScopeKind selects what ViewOrders prints.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeRecent
	ScopeByID
)

// Scope is a ViewOrders request. ID is used only with ScopeByID.
type Scope struct {
	Kind ScopeKind
	ID   int64
}

// ViewOrders prints the orders visible to p. Customers only ever see their
// own orders; drivers and managers see every order. It returns the number of
// rows printed for list scopes.
func (s *Service) ViewOrders(ctx context.Context, w io.Writer, p *auth.Principal, scope Scope) (int, error) {
	login, _ := auth.OrderScope(p)
	switch scope.Kind {
	case ScopeAll:
		return s.Orders.PrintIDs(ctx, w, repository.OrderFilter{Login: login})
	case ScopeRecent:
		return s.Orders.PrintIDs(ctx, w, repository.OrderFilter{Login: login, Recent: RecentLimit})
	case ScopeByID:
		return s.viewOrder(ctx, w, p, scope.ID)
	default:
		return 0, fmt.Errorf("unknown order scope %d", scope.Kind)
	}
}

func (s *Service) viewOrder(ctx context.Context, w io.Writer, p *auth.Principal, id int64) (int, error) {
	ok, err := s.Orders.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound("view order", "Order ID %d does not exist!", id)
	}
	if err := auth.AuthorizeOrderView(ctx, p, id, s.Orders); err != nil {
		return 0, err
	}
	if err := s.Orders.PrintDetail(ctx, w, id); err != nil {
		return 0, err
	}
	return 1, nil
}

// UpdateStatus sets an order's status. Only drivers and managers may do this;
// the caller's role is re-read from the backend first.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	p, err := auth.RequireRole(ctx, s.Users, models.RoleDriver, models.RoleManager)
	if err != nil {
		return err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return apperr.Validation("update order status", "status is empty")
	}
	if utf8.RuneCountInString(status) > models.MaxStatusLen {
		return apperr.Validation("update order status", "status is longer than %d characters", models.MaxStatusLen)
	}
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.NotFound("update order status", "Order ID %d does not exist!", orderID)
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatus(status)); err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{
		"op": "update order status", "order_id": orderID, "by": p.Name,
		"from": string(o.Status), "to": status,
	}).Info("order status changed")
	return nil
}
