// Package order places and inspects food orders: it folds interactive item
// selections into one quantity per item, prices them in integer cents, and
// hands the result to the repository for an atomic write.
package order

import (
	"strings"

	"pizzastore/internal/apperr"
)

// Pair is one interactive (item, quantity) entry.
type Pair struct {
	Item     string
	Quantity int
}

// MaxQuantity is the most of one item a single order may hold.
const MaxQuantity = 999

// Selections maps item name to summed quantity. Items keep the order in which
// they were first entered so listings and line-item writes are deterministic.
type Selections struct {
	qty   map[string]int
	order []string
}

// NewSelections returns an empty Selections.
func NewSelections() *Selections {
	return &Selections{qty: make(map[string]int)}
}

// Add accumulates qty onto name. Repeated entries of the same item add up and
// their sum may not exceed MaxQuantity.
func (s *Selections) Add(name string, qty int) error {
	if name == "" {
		return apperr.Validation("add item", "item name is empty")
	}
	if qty <= 0 {
		return apperr.Validation("add item", "quantity must be a positive number")
	}
	if qty > MaxQuantity-s.qty[name] {
		return apperr.Validation("add item", "You cannot order more than %d of %s.", MaxQuantity, name)
	}
	if _, ok := s.qty[name]; !ok {
		s.order = append(s.order, name)
	}
	s.qty[name] += qty
	return nil
}

// Quantity returns the summed quantity for name, 0 when absent.
func (s *Selections) Quantity(name string) int { return s.qty[name] }

// Items returns the distinct item names in first-entry order.
func (s *Selections) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct items.
func (s *Selections) Len() int { return len(s.order) }

// Map returns a copy of the item to quantity mapping.
func (s *Selections) Map() map[string]int {
	out := make(map[string]int, len(s.qty))
	for k, v := range s.qty {
		out[k] = v
	}
	return out
}

// Catalog is the set of orderable item names, fetched once per order.
type Catalog map[string]struct{}

// NewCatalog builds a catalog from stored names. Stored names may carry
// fixed-width padding, which is trimmed.
func NewCatalog(names []string) Catalog {
	c := make(Catalog, len(names))
	for _, n := range names {
		c[strings.TrimSpace(n)] = struct{}{}
	}
	return c
}

// Has reports whether name is on the menu. Matching is exact.
func (c Catalog) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Aggregate folds pairs into Selections.
func Aggregate(pairs []Pair) (*Selections, error) {
	sel := NewSelections()
	for _, p := range pairs {
		if err := sel.Add(p.Item, p.Quantity); err != nil {
			return nil, err
		}
	}
	return sel, nil
}
