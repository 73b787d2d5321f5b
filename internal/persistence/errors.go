package persistence

import (
	"errors"
	"fmt"
)

// Code classifies a persistence failure.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	Connection          Code = "connection"
	Canceled            Code = "canceled"
)

// Operations reported in Error.Op.
const (
	OpQuery  = "query"
	OpInsert = "insert"
)

// Error is returned by every Context implementation when the store rejects a
// read or a write. The underlying failure stays reachable through Unwrap.
type Error struct {
	Op         string
	Target     string
	Code       Code
	SQLState   string
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("persistence: %s %s (%s, constraint %s): %v", e.Op, e.Target, e.Code, e.Constraint, e.Err)
	}
	return fmt.Sprintf("persistence: %s %s (%s): %v", e.Op, e.Target, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf reports the Code of the first *Error in err's chain, or Other.
func CodeOf(err error) Code {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	return Other
}

// IsPersistence reports whether err carries a *Error.
func IsPersistence(err error) bool {
	var perr *Error
	return errors.As(err, &perr)
}
