// Package cd provides read and create access to catalog CDs.
package cd

import "context"

type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// FindAll returns every persisted CD, or an empty slice when there are none.
func (g *Gateway) FindAll(ctx context.Context) ([]CD, error) {
	return g.store.RunNamedQuery(ctx, FindAllCDs)
}

// Create inserts c and returns it with its generated ID set.
func (g *Gateway) Create(ctx context.Context, c *CD) (*CD, error) {
	if err := g.store.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
