package store

import (
	"context"

	"repolab/internal/logging"
)

// Album is a row of the albums table. ArtistID is not checked against artists.
type Album struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	ArtistID    int64  `json:"artist_id"`
}

const (
	selectAlbumsSQL = `
		SELECT id, title, release_year, artist_id
		FROM albums
		ORDER BY id ASC
	`
	selectAlbumByIDSQL = `
		SELECT id, title, release_year, artist_id
		FROM albums
		WHERE id = $1
	`
)

func scanAlbum(row rowScanner) (Album, error) {
	var (
		id, artistID int64
		title        string
		releaseYear  int
	)
	if err := row.Scan(&id, &title, &releaseYear, &artistID); err != nil {
		return Album{}, err
	}
	return Album{ID: id, Title: title, ReleaseYear: releaseYear, ArtistID: artistID}, nil
}

// AlbumRepository reads albums.
type AlbumRepository struct {
	table table[Album]
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(q Querier, logger *logging.Logger) *AlbumRepository {
	return &AlbumRepository{
		table: newTable(q, logger, "albums", selectAlbumsSQL, selectAlbumByIDSQL, scanAlbum),
	}
}

// All lists every album.
func (r *AlbumRepository) All(ctx context.Context) ([]Album, error) {
	return r.table.all(ctx)
}

// Find retrieves an album by ID
func (r *AlbumRepository) Find(ctx context.Context, id int64) (Album, error) {
	return r.table.find(ctx, id)
}
