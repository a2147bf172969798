package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"repolab/internal/config"
	"repolab/internal/database"
	"repolab/internal/fixtures"
	"repolab/internal/logging"
	"repolab/internal/store"
)

// errNoRowsAffected makes update/delete of a missing id exit non-zero.
var errNoRowsAffected = errors.New("no rows affected")

// Runner holds the dependencies shared by every command.
type Runner struct {
	out      io.Writer
	logger   *logging.Logger
	envFiles []string

	db    *sql.DB
	seed  fixtures.Execer
	store *store.Store
}

// RunnerOpts configures a Runner. Store and Seeder are set by tests; when
// nil, the first command that needs them connects using config.Load.
type RunnerOpts struct {
	Output   io.Writer
	Logger   *logging.Logger
	EnvFiles []string
	Store    *store.Store
	Seeder   fixtures.Execer
}

// NewRunner creates a new Runner with the provided options
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.New(logging.Config{})
	}
	return &Runner{
		out:      opts.Output,
		logger:   opts.Logger,
		envFiles: opts.EnvFiles,
		store:    opts.Store,
		seed:     opts.Seeder,
	}
}

// connect loads configuration and opens the database on first use.
func (r *Runner) connect(ctx context.Context) error {
	if r.store != nil {
		return nil
	}

	cfg, err := config.Load(r.envFiles...)
	if err != nil {
		return err
	}

	r.logger = logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobalLogger(r.logger)

	db, err := database.Open(ctx, cfg.Database, r.logger)
	if err != nil {
		return err
	}

	r.db = db
	r.seed = db
	r.store = store.New(db, r.logger)
	return nil
}

func (r *Runner) repos(ctx context.Context) (*store.Store, error) {
	if err := r.connect(ctx); err != nil {
		return nil, err
	}
	return r.store, nil
}

// Close releases the database connection if this runner opened one.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// writeAffected prints the affected-row count of a write and fails when the
// statement matched nothing.
func (r *Runner) writeAffected(n int64) error {
	if err := r.writeJSON(map[string]int64{"rows_affected": n}); err != nil {
		return err
	}
	if n == 0 {
		return errNoRowsAffected
	}
	return nil
}
