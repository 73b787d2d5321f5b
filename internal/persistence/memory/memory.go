// Package memory is a process-local persistence.Context used by tests and dry
// runs. Rows live in insertion order and identifiers come from a per-table
// sequence starting at 1.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shopcatalog/internal/persistence"
)

// All is a query handler that returns every stored row.
func All[T any](rows []T) []T {
	return rows
}

type Table[T any] struct {
	lock    sync.Mutex
	name    string
	rows    []T
	nextID  int64
	key     func(*T) *int64
	clone   func(T) T
	queries map[string]func([]T) []T
	fail    *persistence.Error
}

// NewTable creates an empty table. key points at the entity's identifier
// field; clone copies reference fields so stored rows never alias caller
// memory (nil means values are stored as-is).
func NewTable[T any](name string, key func(*T) *int64, clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Table[T]{
		name:    name,
		key:     key,
		clone:   clone,
		queries: make(map[string]func([]T) []T),
	}
}

// Handle registers fn as the implementation of q. A nil fn behaves like All.
func (t *Table[T]) Handle(q persistence.NamedQuery[T], fn func([]T) []T) *Table[T] {
	if fn == nil {
		fn = All[T]
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.queries[q.Name] = fn
	return t
}

// FailNext makes the next RunNamedQuery or Insert fail with code, as if the
// store had rejected the call.
func (t *Table[T]) FailNext(code persistence.Code, err error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.fail = &persistence.Error{Code: code, Err: err}
}

func (t *Table[T]) RunNamedQuery(ctx context.Context, q persistence.NamedQuery[T]) ([]T, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := t.takeFailure(ctx, persistence.OpQuery, q.Name); err != nil {
		return nil, err
	}

	fn, ok := t.queries[q.Name]
	if !ok {
		return nil, &persistence.Error{
			Op:     persistence.OpQuery,
			Target: q.Name,
			Code:   persistence.Other,
			Err:    fmt.Errorf("named query %q is not registered on table %s", q.Name, t.name),
		}
	}

	selected := fn(t.rows)
	result := make([]T, 0, len(selected))
	for _, row := range selected {
		result = append(result, t.clone(row))
	}
	return result, nil
}

func (t *Table[T]) Insert(ctx context.Context, entity *T) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := t.takeFailure(ctx, persistence.OpInsert, t.name); err != nil {
		return err
	}

	t.nextID++
	*t.key(entity) = t.nextID
	t.rows = append(t.rows, t.clone(*entity))
	return nil
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.rows)
}

// takeFailure must be called with the lock held.
func (t *Table[T]) takeFailure(ctx context.Context, op, target string) error {
	if err := ctx.Err(); err != nil {
		return &persistence.Error{Op: op, Target: target, Code: persistence.Canceled, Err: err}
	}
	if t.fail == nil {
		return nil
	}
	failure := *t.fail
	t.fail = nil
	failure.Op = op
	failure.Target = target
	if failure.Err == nil {
		failure.Err = errors.New("injected failure")
	}
	return &failure
}
