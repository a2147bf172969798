// Package database opens the connection the repositories run against.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"

	"repolab/internal/config"
	"repolab/internal/logging"
	"repolab/internal/store"
)

const (
	pingTimeout    = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Open establishes a database connection and waits until the instance responds
// or cfg.ConnectTimeout elapses. Only the initial ping is repeated; statements
// are never retried.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger) (*sql.DB, error) {
	return open(ctx, cfg, logger, initialBackoff)
}

func open(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger, backoff time.Duration) (*sql.DB, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, &store.ConnectionError{Op: "open", Err: fmt.Errorf("open database: %w", err)}
	}

	deadline := time.Now().Add(cfg.ConnectTimeout)
	var lastErr error

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			logger.WithContext(ctx).Debug().
				Str("driver", cfg.Driver).
				Int("attempts", attempt).
				Msg("Database reachable")
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		logger.WithContext(ctx).Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Database not ready, waiting")

		select {
		case <-ctx.Done():
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, &store.ConnectionError{Op: "ping", Err: lastErr}
}
