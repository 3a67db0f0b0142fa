package order

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"pizzastore/internal/apperr"
	"pizzastore/internal/events"
	"pizzastore/models"
	"pizzastore/repository"
)

// Receipt describes a committed order.
type Receipt struct {
	OrderID int64
	StoreID int
	Quote   Quote
}

// Service places and inspects orders.
type Service struct {
	Items  repository.ItemRepositoryI
	Stores repository.StoreRepositoryI
	Orders repository.OrderRepositoryI
	Users  repository.UserRepositoryI
	Events events.Publisher
	Log    logrus.FieldLogger
}

// LoadCatalog fetches the orderable item names once.
func (s *Service) LoadCatalog(ctx context.Context) (Catalog, error) {
	names, err := s.Items.Names(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(names), nil
}

// PlaceOrder validates the store and every selected item, prices the
// aggregated selections and writes the order. The order event is published
// after commit; a publish failure is logged and does not fail the order.
func (s *Service) PlaceOrder(ctx context.Context, login string, storeID int, pairs []Pair) (*Receipt, error) {
	store, err := s.Stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.Validation("place order", "Store ID %d does not exist!", storeID)
	}

	catalog, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if !catalog.Has(p.Item) {
			return nil, apperr.Validation("place order", "%s is not on the menu!", p.Item)
		}
	}
	sel, err := Aggregate(pairs)
	if err != nil {
		return nil, err
	}
	if sel.Len() == 0 {
		return nil, apperr.Validation("place order", "no items selected")
	}

	quote, err := Price(ctx, sel, s.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]models.LineItem, 0, sel.Len())
	for _, name := range sel.Items() {
		lines = append(lines, models.LineItem{ItemName: name, Quantity: sel.Quantity(name)})
	}
	id, err := s.Orders.PlaceOrder(ctx, repository.NewOrder{
		Login:   login,
		StoreID: storeID,
		Total:   quote.Total.Decimal(),
		Lines:   lines,
	})
	if err != nil {
		return nil, err
	}
	s.log().WithFields(logrus.Fields{"op": "place order", "login": login, "order_id": id, "store_city": store.City, "total": quote.Total.String()}).Info("order placed")

	s.publish(ctx, id, login, storeID, quote)
	return &Receipt{OrderID: id, StoreID: storeID, Quote: quote}, nil
}

func (s *Service) publish(ctx context.Context, id int64, login string, storeID int, q Quote) {
	if s.Events == nil {
		return
	}
	ev := events.OrderPlaced{
		OrderID:    id,
		Login:      login,
		StoreID:    storeID,
		TotalCents: int64(q.Total),
		PlacedAt:   time.Now().UTC(),
	}
	for _, l := range q.Lines {
		ev.Lines = append(ev.Lines, events.OrderLine{Item: l.Item, Quantity: l.Quantity})
	}
	if err := s.Events.PublishOrderPlaced(ctx, ev); err != nil {
		s.log().WithFields(logrus.Fields{"op": "publish order", "order_id": id, "err": err}).Warn("order event not published")
	}
}

func (s *Service) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
