package postgres

import (
	"context"
	"errors"
	"strings"

	"shopcatalog/internal/persistence"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the catalog tells apart.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateClassConnection     = "08"
)

// mapCode converts a SQLSTATE into a persistence.Code.
func mapCode(sqlState string) persistence.Code {
	switch {
	case sqlState == sqlStateUniqueViolation:
		return persistence.UniqueViolation
	case sqlState == sqlStateForeignKeyViolation:
		return persistence.ForeignKeyViolation
	case sqlState == sqlStateNotNullViolation:
		return persistence.NotNullViolation
	case sqlState == sqlStateCheckViolation:
		return persistence.CheckViolation
	case strings.HasPrefix(sqlState, sqlStateClassConnection):
		return persistence.Connection
	default:
		return persistence.Other
	}
}

// wrapError classifies err and wraps it in a *persistence.Error. The driver
// error is kept as-is so callers can still reach *pgconn.PgError.
func wrapError(op, target string, err error) error {
	perr := &persistence.Error{Op: op, Target: target, Code: persistence.Other, Err: err}

	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &pgErr):
		perr.Code = mapCode(pgErr.Code)
		perr.SQLState = pgErr.Code
		perr.Constraint = pgErr.ConstraintName
	case errors.As(err, &connErr):
		perr.Code = persistence.Connection
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		perr.Code = persistence.Canceled
	}
	return perr
}
