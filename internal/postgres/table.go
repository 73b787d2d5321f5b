// Package postgres implements persistence.Context over pgx.
package postgres

import (
	"context"

	"shopcatalog/internal/persistence"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_dbtx.go -package=mocks shopcatalog/internal/postgres DBTX
//go:generate mockgen -destination=mocks/mock_row.go -package=mocks github.com/jackc/pgx/v5 Row

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so a Table can run
// either in autocommit mode or inside a caller-owned transaction.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Mapping describes how an entity type is written to its table. Reads are
// mapped by column name onto `db` struct tags.
type Mapping[T any] struct {
	Table string
	// Insert must end with RETURNING of the generated key.
	Insert string
	Values func(*T) []any
	Key    func(*T) *int64
}

type Table[T any] struct {
	db      DBTX
	mapping Mapping[T]
	log     zerolog.Logger
}

func NewTable[T any](db DBTX, mapping Mapping[T], log zerolog.Logger) *Table[T] {
	return &Table[T]{
		db:      db,
		mapping: mapping,
		log:     log.With().Str("table", mapping.Table).Logger(),
	}
}

func (t *Table[T]) RunNamedQuery(ctx context.Context, q persistence.NamedQuery[T]) ([]T, error) {
	ctx = persistence.WithQueryName(ctx, q.Name)

	rows, err := t.db.Query(ctx, q.SQL)
	if err != nil {
		return nil, wrapError(persistence.OpQuery, q.Name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, wrapError(persistence.OpQuery, q.Name, err)
	}
	if out == nil {
		out = []T{}
	}

	t.log.Debug().Str("query", q.Name).Int("rows", len(out)).Msg("named query executed")
	return out, nil
}

func (t *Table[T]) Insert(ctx context.Context, entity *T) error {
	ctx = persistence.WithQueryName(ctx, "insert:"+t.mapping.Table)

	var id int64
	err := t.db.QueryRow(ctx, t.mapping.Insert, t.mapping.Values(entity)...).Scan(&id)
	if err != nil {
		return wrapError(persistence.OpInsert, t.mapping.Table, err)
	}
	*t.mapping.Key(entity) = id

	t.log.Debug().Int64("id", id).Msg("row inserted")
	return nil
}
