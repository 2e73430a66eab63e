package catalog

import (
	"context"
	"errors"
)

var ErrInvalidProduct = errors.New("invalid product")

type Product struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
}

func (p Product) Validate() error {
	if p.ID == "" || p.Title == "" || p.PriceCents < 0 {
		return ErrInvalidProduct
	}
	return nil
}

// Store is read-only from the HTTP side; products change out of band.
type Store interface {
	Ping(ctx context.Context) error
	ListSortedByID(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}
