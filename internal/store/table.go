package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"repolab/internal/logging"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// table runs the statements of one entity. The SQL text and the scan function
// are supplied per entity; nothing is derived by reflection.
type table[T any] struct {
	q          Querier
	log        *logging.Logger
	name       string
	selectAll  string
	selectByID string
	scan       func(rowScanner) (T, error)
}

func newTable[T any](q Querier, logger *logging.Logger, name, selectAll, selectByID string, scan func(rowScanner) (T, error)) table[T] {
	if logger == nil {
		logger = logging.Nop()
	}
	return table[T]{
		q:          q,
		log:        logger,
		name:       name,
		selectAll:  selectAll,
		selectByID: selectByID,
		scan:       scan,
	}
}

// all returns every row in store order. No rows is an empty, non-nil slice.
func (t table[T]) all(ctx context.Context) ([]T, error) {
	start := time.Now()

	items, err := t.queryAll(ctx)
	t.log.DBQuery(ctx, t.name, t.selectAll, int64(len(items)), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (t table[T]) queryAll(ctx context.Context) ([]T, error) {
	rows, err := t.q.QueryContext(ctx, t.selectAll)
	if err != nil {
		return nil, Classify("select", t.name, t.selectAll, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, Classify("scan", t.name, t.selectAll, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify("iterate", t.name, t.selectAll, err)
	}

	return items, nil
}

// find returns the row whose primary key is id, or a *NotFoundError.
func (t table[T]) find(ctx context.Context, id int64) (T, error) {
	start := time.Now()

	item, err := t.scan(t.q.QueryRowContext(ctx, t.selectByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		t.log.DBQuery(ctx, t.name, t.selectByID, 0, time.Since(start), nil)
		var zero T
		return zero, &NotFoundError{Table: t.name, ID: id}
	}
	if err != nil {
		err = Classify("select", t.name, t.selectByID, err)
		t.log.DBQuery(ctx, t.name, t.selectByID, 0, time.Since(start), err)
		var zero T
		return zero, err
	}

	t.log.DBQuery(ctx, t.name, t.selectByID, 1, time.Since(start), nil)
	return item, nil
}

// exec runs a write statement and returns the affected-row count.
func (t table[T]) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	start := time.Now()

	n, err := t.execAffected(ctx, op, query, args...)
	t.log.DBQuery(ctx, t.name, query, n, time.Since(start), err)
	if err != nil {
		return 0, err
	}

	if n == 0 && op != "insert" {
		t.log.WithContext(ctx).Warn().
			Str("table", t.name).
			Str("op", op).
			Msg("statement matched no rows")
	}

	return n, nil
}

func (t table[T]) execAffected(ctx context.Context, op, query string, args ...any) (int64, error) {
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, Classify(op, t.name, query, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, Classify(op, t.name, query, err)
	}

	return n, nil
}
