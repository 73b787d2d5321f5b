package book

import (
	"context"
)

// Gateway reads and creates books through a Store. It holds no state of its
// own and is safe to share whenever its Store is.
type Gateway struct {
	store Store
}

// NewGateway creates a new book gateway.
func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// FindAll returns every persisted book, or an empty slice when there are none.
func (g *Gateway) FindAll(ctx context.Context) ([]Book, error) {
	return g.store.RunNamedQuery(ctx, FindAllBooks)
}

// Create inserts b and returns it with its generated ID set.
func (g *Gateway) Create(ctx context.Context, b *Book) (*Book, error) {
	if err := g.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
