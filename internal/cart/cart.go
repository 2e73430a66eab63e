// Package cart owns the shopping cart aggregate: an ordered set of line items
// keyed by product id, changed only through Reduce.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrTotalOverflow    = errors.New("total overflow")
	ErrUnknownCommand   = errors.New("unknown command")
)

// Product is a catalog entry as the cart sees it.
type Product struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
}

// Catalog resolves product ids. Implementations return ErrProductNotFound
// (possibly wrapped) for unknown ids.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (Product, error)
}

// LineItem name and price are copied from the catalog when the item is first
// added and never refreshed.
type LineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// State is an immutable snapshot. The zero value is an empty cart.
type State struct {
	items []LineItem
}

// newState builds a State without running Reduce's checks; items must
// already hold unique ids and positive quantities.
func newState(items ...LineItem) State {
	return State{items: append([]LineItem(nil), items...)}
}

// Items returns a copy in insertion order.
func (s State) Items() []LineItem {
	return append([]LineItem(nil), s.items...)
}

func (s State) Len() int { return len(s.items) }

func (s State) IsEmpty() bool { return len(s.items) == 0 }

func (s State) Item(id string) (LineItem, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Quantity is the number of units across all line items.
func (s State) Quantity() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalCents fits in int64 for every State produced by Reduce, which rejects
// commands that would overflow it.
func (s State) TotalCents() int64 {
	t, _ := sumCents(s.items)
	return t
}

// Total is the cart total in dollars.
func (s State) Total() decimal.Decimal {
	return decimal.New(s.TotalCents(), -2)
}

func (s State) TotalPrice() string {
	return FormatAmount(s.Total())
}

func (s State) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (it LineItem) SubtotalCents() int64 {
	return it.PriceCents * int64(it.Quantity)
}
