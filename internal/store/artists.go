package store

import (
	"context"

	"repolab/internal/logging"
)

// Artist is a row of the artists table.
type Artist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

const (
	selectArtistsSQL = `
		SELECT id, name, genre
		FROM artists
		ORDER BY id ASC
	`
	selectArtistByIDSQL = `
		SELECT id, name, genre
		FROM artists
		WHERE id = $1
	`
)

func scanArtist(row rowScanner) (Artist, error) {
	var (
		id          int64
		name, genre string
	)
	if err := row.Scan(&id, &name, &genre); err != nil {
		return Artist{}, err
	}
	return Artist{ID: id, Name: name, Genre: genre}, nil
}

// ArtistRepository reads artists. It has no write operations.
type ArtistRepository struct {
	table table[Artist]
}

// NewArtistRepository creates a new artist repository
func NewArtistRepository(q Querier, logger *logging.Logger) *ArtistRepository {
	return &ArtistRepository{
		table: newTable(q, logger, "artists", selectArtistsSQL, selectArtistByIDSQL, scanArtist),
	}
}

// All lists every artist.
func (r *ArtistRepository) All(ctx context.Context) ([]Artist, error) {
	return r.table.all(ctx)
}

// Find retrieves an artist by ID
func (r *ArtistRepository) Find(ctx context.Context, id int64) (Artist, error) {
	return r.table.find(ctx, id)
}
