// Package fixtures resets the music library and social network tables to a
// known set of rows. Every scenario that touches a real database starts here.
package fixtures

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"repolab/internal/store"
)

//go:embed sql/*.sql
var seeds embed.FS

// Set names one fixture file.
type Set string

const (
	MusicLibrary  Set = "music"
	SocialNetwork Set = "social"
)

var files = map[Set]string{
	MusicLibrary:  "sql/music_library.sql",
	SocialNetwork: "sql/social_network.sql",
}

// Execer runs a statement without returning rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Sets lists every fixture set in load order.
func Sets() []Set {
	return []Set{MusicLibrary, SocialNetwork}
}

// Parse maps a CLI name to a Set.
func Parse(name string) (Set, error) {
	set := Set(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := files[set]; !ok {
		return "", fmt.Errorf("unknown fixture set %q (want one of: music, social)", name)
	}
	return set, nil
}

// SQL returns the seed script of set.
func SQL(set Set) (string, error) {
	path, ok := files[set]
	if !ok {
		return "", fmt.Errorf("unknown fixture set %q", set)
	}
	b, err := seeds.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read fixture %s: %w", path, err)
	}
	return string(b), nil
}

// Reset creates the tables of set if needed, empties them, restarts their id
// sequences and inserts the fixture rows.
func Reset(ctx context.Context, db Execer, set Set) error {
	script, err := SQL(set)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("reset %s fixtures: %w", set, store.Classify("seed", string(set), "", err))
	}

	return nil
}
