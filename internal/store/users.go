package store

import (
	"context"

	"repolab/internal/logging"
)

// User is a row of the users table.
type User struct {
	ID           int64  `json:"id"`
	EmailAddress string `json:"email_address"`
	Username     string `json:"username"`
}

const (
	selectUsersSQL = `
		SELECT id, email_address, username
		FROM users
		ORDER BY id ASC
	`
	selectUserByIDSQL = `
		SELECT id, email_address, username
		FROM users
		WHERE id = $1
	`
	insertUserSQL = `
		INSERT INTO users (email_address, username)
		VALUES ($1, $2)
	`
	updateUserSQL = `
		UPDATE users
		SET email_address = $1, username = $2
		WHERE id = $3
	`
	deleteUserSQL = `
		DELETE FROM users
		WHERE id = $1
	`
)

func scanUser(row rowScanner) (User, error) {
	var (
		id              int64
		email, username string
	)
	if err := row.Scan(&id, &email, &username); err != nil {
		return User{}, err
	}
	return User{ID: id, EmailAddress: email, Username: username}, nil
}

// UserRepository handles user data persistence
type UserRepository struct {
	table table[User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(q Querier, logger *logging.Logger) *UserRepository {
	return &UserRepository{
		table: newTable(q, logger, "users", selectUsersSQL, selectUserByIDSQL, scanUser),
	}
}

// All lists every user.
func (r *UserRepository) All(ctx context.Context) ([]User, error) {
	return r.table.all(ctx)
}

// Find retrieves a user by ID
func (r *UserRepository) Find(ctx context.Context, id int64) (User, error) {
	return r.table.find(ctx, id)
}

// Create inserts user. user.ID is ignored; the store assigns one.
func (r *UserRepository) Create(ctx context.Context, user User) error {
	_, err := r.table.exec(ctx, "insert", insertUserSQL, user.EmailAddress, user.Username)
	return err
}

// Update overwrites every column of the user identified by user.ID.
func (r *UserRepository) Update(ctx context.Context, user User) (int64, error) {
	return r.table.exec(ctx, "update", updateUserSQL, user.EmailAddress, user.Username, user.ID)
}

// Delete removes the user with the given id.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.table.exec(ctx, "delete", deleteUserSQL, id)
}
