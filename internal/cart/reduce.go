package cart

import (
	"context"
	"fmt"
	"math"
	"strings"
)

const (
	CommandAddItem        = "add_item"
	CommandAdjustQuantity = "adjust_quantity"
)

// Command is one of AddItem or AdjustQuantity.
type Command interface {
	Name() string
	command()
}

type AddItem struct {
	ProductID string
}

type AdjustQuantity struct {
	ProductID string
	Delta     int
}

func (AddItem) Name() string        { return CommandAddItem }
func (AdjustQuantity) Name() string { return CommandAdjustQuantity }

func (AddItem) command()        {}
func (AdjustQuantity) command() {}

// Reduce applies cmd to s and returns the next state. s is never modified;
// on error the caller keeps s.
func Reduce(ctx context.Context, s State, catalog Catalog, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case AddItem:
		return addItem(ctx, s, catalog, c)
	case AdjustQuantity:
		return adjustQuantity(s, c)
	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func addItem(ctx context.Context, s State, catalog Catalog, c AddItem) (State, error) {
	id := strings.TrimSpace(c.ProductID)
	if id == "" {
		return s, ErrInvalidProductID
	}

	if i := s.index(id); i >= 0 {
		if s.items[i].Quantity == math.MaxInt {
			return s, ErrTotalOverflow
		}
		return s.withQuantity(i, s.items[i].Quantity+1)
	}

	p, err := catalog.GetProduct(ctx, id)
	if err != nil {
		return s, err
	}

	items := make([]LineItem, len(s.items), len(s.items)+1)
	copy(items, s.items)
	items = append(items, LineItem{
		ID:         id,
		Name:       p.Title,
		PriceCents: p.PriceCents,
		Quantity:   1,
	})
	return checked(s, items)
}

func adjustQuantity(s State, c AdjustQuantity) (State, error) {
	i := s.index(strings.TrimSpace(c.ProductID))
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrLineItemNotFound, c.ProductID)
	}

	q := s.items[i].Quantity
	if c.Delta > 0 && q > math.MaxInt-c.Delta {
		return s, ErrTotalOverflow
	}
	if c.Delta < 0 && q+c.Delta <= 0 {
		return s.without(i), nil
	}
	return s.withQuantity(i, q+c.Delta)
}

func (s State) withQuantity(i, qty int) (State, error) {
	items := s.Items()
	items[i].Quantity = qty
	return checked(s, items)
}

func (s State) without(i int) State {
	items := make([]LineItem, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	return State{items: items}
}

func checked(prev State, items []LineItem) (State, error) {
	if _, ok := sumCents(items); !ok {
		return prev, ErrTotalOverflow
	}
	return State{items: items}, nil
}
