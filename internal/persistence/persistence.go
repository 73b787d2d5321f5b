// Package persistence defines the contract gateways use to read and write
// catalog entities, independent of the backing store.
package persistence

import "context"

// NamedQuery identifies a predefined query whose rows decode into T.
//
// Binding the row type to the query value means a query built for one entity
// cannot be run against a context for another.
type NamedQuery[T any] struct {
	Name string
	SQL  string
}

// Context is the unit of work a gateway runs against.
type Context[T any] interface {
	// RunNamedQuery executes q and returns every row it yields. The result is
	// never nil.
	RunNamedQuery(ctx context.Context, q NamedQuery[T]) ([]T, error)
	// Insert stores entity and populates its generated identifier.
	Insert(ctx context.Context, entity *T) error
}

type queryNameKey struct{}

// WithQueryName tags ctx with the name of the query about to run, so tracers
// further down can label what they observe.
func WithQueryName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, queryNameKey{}, name)
}

// QueryName returns the name set by WithQueryName, or "" when there is none.
func QueryName(ctx context.Context) string {
	name, _ := ctx.Value(queryNameKey{}).(string)
	return name
}
