package store_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"repolab/internal/config"
	"repolab/internal/database"
	"repolab/internal/fixtures"
	"repolab/internal/store"
)

// openTestDB connects to TEST_DATABASE_URL and resets set; the test is skipped
// when no database is configured.
func openTestDB(t *testing.T, set fixtures.Set) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	driver := os.Getenv("TEST_DATABASE_DRIVER")
	if driver == "" {
		driver = "pgx"
	}

	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{Driver: driver, URL: dsn, ConnectTimeout: 10 * time.Second}, nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := fixtures.Reset(ctx, db, set); err != nil {
		t.Fatalf("reset fixtures: %v", err)
	}
	return db
}

func TestIntegrationArtists(t *testing.T) {
	db := openTestDB(t, fixtures.MusicLibrary)
	repo := store.NewArtistRepository(db, nil)
	ctx := context.Background()

	artists, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(artists) != 2 || artists[0].Name != "Pixies" || artists[0].Genre != "Rock" {
		t.Fatalf("unexpected artists: %#v", artists)
	}

	for _, a := range artists {
		got, err := repo.Find(ctx, a.ID)
		if err != nil {
			t.Fatalf("Find(%d) error: %v", a.ID, err)
		}
		if got != a {
			t.Fatalf("Find(%d) = %#v, want %#v", a.ID, got, a)
		}
	}

	if _, err := repo.Find(ctx, 1000); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIntegrationAlbums(t *testing.T) {
	db := openTestDB(t, fixtures.MusicLibrary)
	repo := store.NewAlbumRepository(db, nil)

	album, err := repo.Find(context.Background(), 3)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if album != (store.Album{ID: 3, Title: "Waterloo", ReleaseYear: 1974, ArtistID: 2}) {
		t.Fatalf("unexpected album: %#v", album)
	}
}

func TestIntegrationPostLifecycle(t *testing.T) {
	db := openTestDB(t, fixtures.SocialNetwork)
	repo := store.NewPostRepository(db, nil)
	ctx := context.Background()

	posts, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(posts) != 3 || posts[0].ID != 1 || posts[2].ID != 3 {
		t.Fatalf("unexpected seeded posts: %#v", posts)
	}

	post, err := repo.Find(ctx, 2)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if post != (store.Post{ID: 2, Title: "post_2", Content: "content_2", Views: 20, UserID: 1}) {
		t.Fatalf("unexpected post 2: %#v", post)
	}

	created := store.Post{Title: "new_title", Content: "new_content", Views: 40, UserID: 2}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	posts, err = repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	latest := posts[len(posts)-1]
	if latest.ID != 4 {
		t.Fatalf("expected new id 4, got %d", latest.ID)
	}
	created.ID = latest.ID
	if latest != created {
		t.Fatalf("created post = %#v, want %#v", latest, created)
	}

	updated := store.Post{ID: 1, Title: "updated_title", Content: "updated_content", Views: 100, UserID: 2}
	if n, err := repo.Update(ctx, updated); err != nil || n != 1 {
		t.Fatalf("Update = %d, %v", n, err)
	}
	if got, _ := repo.Find(ctx, 1); got != updated {
		t.Fatalf("after update Find(1) = %#v, want %#v", got, updated)
	}

	if n, err := repo.Update(ctx, store.Post{ID: 999, Title: "x"}); err != nil || n != 0 {
		t.Fatalf("Update of missing id = %d, %v; want 0, nil", n, err)
	}

	if n, err := repo.Delete(ctx, 2); err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if _, err := repo.Find(ctx, 2); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	remaining, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(remaining) != len(posts)-1 {
		t.Fatalf("expected %d posts, got %d", len(posts)-1, len(remaining))
	}
}

func TestIntegrationUserLifecycle(t *testing.T) {
	db := openTestDB(t, fixtures.SocialNetwork)
	repo := store.NewUserRepository(db, nil)
	ctx := context.Background()

	if err := repo.Create(ctx, store.User{EmailAddress: "new_user@email.com", Username: "new_user"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	users, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if latest := users[len(users)-1]; latest.EmailAddress != "new_user@email.com" || latest.Username != "new_user" {
		t.Fatalf("unexpected latest user: %#v", latest)
	}

	err = repo.Create(ctx, store.User{EmailAddress: "user_1@email.com", Username: "dup"})
	if !store.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	if n, err := repo.Delete(ctx, 1); err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	users, err = repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(users) != 2 || users[0].Username != "user_2" {
		t.Fatalf("unexpected users after delete: %#v", users)
	}
}
