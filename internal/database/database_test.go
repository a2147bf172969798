package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repolab/internal/config"
	"repolab/internal/store"
)

func mockConfig(dsn string, timeout time.Duration) config.DatabaseConfig {
	return config.DatabaseConfig{Driver: "sqlmock", URL: dsn, ConnectTimeout: timeout}
}

func TestOpenWaitsForPing(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("open_waits", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("the database system is starting up"))
	mock.ExpectPing()

	db, err := open(context.Background(), mockConfig("open_waits", time.Second), nil, time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenGivesUpAfterTimeout(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("open_gives_up", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cause := errors.New("connection refused")
	mock.ExpectPing().WillReturnError(cause)

	db, err := open(context.Background(), mockConfig("open_gives_up", time.Nanosecond), nil, time.Millisecond)
	assert.Nil(t, db)

	var ce *store.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "ping", ce.Op)
	assert.ErrorIs(t, err, cause)
}

func TestOpenRespectsCancellation(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("open_cancelled", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = open(ctx, mockConfig("open_cancelled", time.Minute), nil, time.Millisecond)

	var ce *store.ConnectionError
	require.ErrorAs(t, err, &ce)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "nope", URL: "x", ConnectTimeout: time.Second}, nil)

	var ce *store.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "open", ce.Op)
}
