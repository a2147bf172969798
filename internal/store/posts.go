package store

import (
	"context"

	"repolab/internal/logging"
)

// Post is a row of the posts table. UserID is not checked against users.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Views   int    `json:"views"`
	UserID  int64  `json:"user_id"`
}

const (
	selectPostsSQL = `
		SELECT id, title, content, views, user_id
		FROM posts
		ORDER BY id ASC
	`
	selectPostByIDSQL = `
		SELECT id, title, content, views, user_id
		FROM posts
		WHERE id = $1
	`
	insertPostSQL = `
		INSERT INTO posts (title, content, views, user_id)
		VALUES ($1, $2, $3, $4)
	`
	updatePostSQL = `
		UPDATE posts
		SET title = $1, content = $2, views = $3, user_id = $4
		WHERE id = $5
	`
	deletePostSQL = `
		DELETE FROM posts
		WHERE id = $1
	`
)

func scanPost(row rowScanner) (Post, error) {
	var (
		id, userID     int64
		title, content string
		views          int
	)
	if err := row.Scan(&id, &title, &content, &views, &userID); err != nil {
		return Post{}, err
	}
	return Post{ID: id, Title: title, Content: content, Views: views, UserID: userID}, nil
}

// PostRepository handles post data persistence
type PostRepository struct {
	table table[Post]
}

// NewPostRepository creates a new post repository
func NewPostRepository(q Querier, logger *logging.Logger) *PostRepository {
	return &PostRepository{
		table: newTable(q, logger, "posts", selectPostsSQL, selectPostByIDSQL, scanPost),
	}
}

// All lists every post.
func (r *PostRepository) All(ctx context.Context) ([]Post, error) {
	return r.table.all(ctx)
}

// Find retrieves a post by ID
func (r *PostRepository) Find(ctx context.Context, id int64) (Post, error) {
	return r.table.find(ctx, id)
}

// Create inserts post. post.ID is ignored; the store assigns one.
func (r *PostRepository) Create(ctx context.Context, post Post) error {
	_, err := r.table.exec(ctx, "insert", insertPostSQL, post.Title, post.Content, post.Views, post.UserID)
	return err
}

// Update overwrites every column of the post identified by post.ID.
func (r *PostRepository) Update(ctx context.Context, post Post) (int64, error) {
	return r.table.exec(ctx, "update", updatePostSQL, post.Title, post.Content, post.Views, post.UserID, post.ID)
}

// Delete removes the post with the given id.
func (r *PostRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.table.exec(ctx, "delete", deletePostSQL, id)
}
