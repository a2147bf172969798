// Package store maps rows of the music library and social network schemas to
// plain values and back. Each repository issues exactly one parameterized
// statement per call and keeps no state between calls.
package store

import (
	"context"
	"database/sql"

	"repolab/internal/logging"
)

// Querier is the connection capability repositories run statements against.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Reader is the read side shared by every repository.
type Reader[T any] interface {
	All(ctx context.Context) ([]T, error)
	Find(ctx context.Context, id int64) (T, error)
}

// Repository adds full-record writes to Reader. Update and Delete report the
// number of rows the statement touched; zero means the id did not exist.
type Repository[T any] interface {
	Reader[T]
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, item T) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

var (
	_ Reader[Artist]   = (*ArtistRepository)(nil)
	_ Reader[Album]    = (*AlbumRepository)(nil)
	_ Repository[User] = (*UserRepository)(nil)
	_ Repository[Post] = (*PostRepository)(nil)
)

// Store groups the repositories of both schemas over one connection.
type Store struct {
	Artists *ArtistRepository
	Albums  *AlbumRepository
	Users   *UserRepository
	Posts   *PostRepository
}

// New sets up a Store using the provided database handle. A nil logger
// disables query logging.
func New(q Querier, logger *logging.Logger) *Store {
	return &Store{
		Artists: NewArtistRepository(q, logger),
		Albums:  NewAlbumRepository(q, logger),
		Users:   NewUserRepository(q, logger),
		Posts:   NewPostRepository(q, logger),
	}
}
