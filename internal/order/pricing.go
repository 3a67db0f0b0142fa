package order

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"pizzastore/internal/apperr"
)

// Cents is a money amount in integer cents.
type Cents int64

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// String renders c as $D.CC. The cents are always two digits.
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// Decimal returns c in dollars as an exact decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// ToCents converts a stored price to cents, rounding price*100 half up.
func ToCents(price string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return 0, apperr.Validation("price", "price %q is not a number", price)
	}
	if d.IsNegative() {
		return 0, apperr.Validation("price", "price %q is negative", price)
	}
	c := d.Mul(hundred).Round(0)
	if c.GreaterThan(maxCents) {
		return 0, apperr.Validation("price", "price %q is too large", price)
	}
	return Cents(c.IntPart()), nil
}

// PriceLookup resolves an item's stored unit price. ok is false when the item
// has no price.
type PriceLookup interface {
	Price(ctx context.Context, name string) (price string, ok bool, err error)
}

// QuoteLine is one priced line of an order.
type QuoteLine struct {
	Item      string
	Quantity  int
	UnitCents Cents
	LineCents Cents
}

// Quote is a priced order.
type Quote struct {
	Lines []QuoteLine
	Total Cents
}

// Price resolves every selected item's price and sums unit cents times
// quantity. It stops at the first item whose price is missing or unparsable,
// and rejects an order whose line or total does not fit in Cents.
func Price(ctx context.Context, sel *Selections, lookup PriceLookup) (Quote, error) {
	var q Quote
	for _, name := range sel.Items() {
		raw, ok, err := lookup.Price(ctx, name)
		if err != nil {
			return Quote{}, err
		}
		if !ok {
			return Quote{}, apperr.Validation("price order", "no price for %s", name)
		}
		unit, err := ToCents(raw)
		if err != nil {
			return Quote{}, fmt.Errorf("%s: %w", name, err)
		}
		qty := sel.Quantity(name)
		if unit > 0 && Cents(qty) > math.MaxInt64/unit {
			return Quote{}, apperr.Validation("price order", "price of %d %s is too large", qty, name)
		}
		line := unit * Cents(qty)
		if q.Total > math.MaxInt64-line {
			return Quote{}, apperr.Validation("price order", "order total is too large")
		}
		q.Lines = append(q.Lines, QuoteLine{Item: name, Quantity: qty, UnitCents: unit, LineCents: line})
		q.Total += line
	}
	return q, nil
}
