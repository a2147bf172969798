package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("record not found")

const sqlStateUniqueViolation = "23505"

// NotFoundError reports that a lookup by primary key matched no row.
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: id %d: %s", e.Table, e.ID, ErrNotFound)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConnectionError reports that the store could not be reached or the
// connection broke mid-statement. It is never retried here.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a statement the store rejected or whose result could not
// be mapped. Code holds the SQLSTATE when the driver supplies one.
type QueryError struct {
	Op    string
	Table string
	Query string
	Code  string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s (sqlstate %s): %v", e.Op, e.Table, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) && qe.Code != "" {
		return qe.Code == sqlStateUniqueViolation
	}
	return sqlState(err) == sqlStateUniqueViolation
}

// Classify wraps a driver error as a *ConnectionError or *QueryError.
// Errors that are already classified pass through untouched.
func Classify(op, table, query string, err error) error {
	if err == nil {
		return nil
	}

	var (
		connErr  *ConnectionError
		queryErr *QueryError
		nf       *NotFoundError
	)
	if errors.As(err, &connErr) || errors.As(err, &queryErr) || errors.As(err, &nf) {
		return err
	}

	if isConnectionFailure(err) {
		return &ConnectionError{Op: op, Err: err}
	}

	return &QueryError{
		Op:    op,
		Table: table,
		Query: query,
		Code:  sqlState(err),
		Err:   err,
	}
}

func isConnectionFailure(err error) bool {
	// context.DeadlineExceeded satisfies net.Error; a cancelled statement is
	// not a broken connection.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pgConnErr *pgconn.ConnectError
	if errors.As(err, &pgConnErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Class 08: connection exception.
	return strings.HasPrefix(sqlState(err), "08")
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
