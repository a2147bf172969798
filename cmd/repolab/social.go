package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"repolab/internal/store"
)

func userFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
		&cli.StringFlag{Name: "username", Usage: "Username", Required: true},
	}
}

func userFromFlags(cmd *cli.Command) store.User {
	return store.User{
		ID:           cmd.Int64("id"),
		EmailAddress: cmd.String("email"),
		Username:     cmd.String("username"),
	}
}

// CreateUser inserts a user from flags.
func (r *Runner) CreateUser(ctx context.Context, cmd *cli.Command) error {
	s, err := r.repos(ctx)
	if err != nil {
		return err
	}
	if err := s.Users.Create(ctx, userFromFlags(cmd)); err != nil {
		return err
	}
	return r.writeAffected(1)
}

// UpdateUser overwrites every field of the user named by --id.
func (r *Runner) UpdateUser(ctx context.Context, cmd *cli.Command) error {
	s, err := r.repos(ctx)
	if err != nil {
		return err
	}
	n, err := s.Users.Update(ctx, userFromFlags(cmd))
	if err != nil {
		return err
	}
	return r.writeAffected(n)
}

func usersCommand(r *Runner) *cli.Command {
	pick := func(s *store.Store) store.Repository[store.User] { return s.Users }
	readers := readCommands(r, func(s *store.Store) store.Reader[store.User] { return s.Users })

	return &cli.Command{
		Name:  "users",
		Usage: "Read and write users",
		Commands: append(readers,
			&cli.Command{
				Name:   "create",
				Usage:  "Create a user",
				Flags:  userFlags(),
				Action: r.CreateUser,
			},
			&cli.Command{
				Name:   "update",
				Usage:  "Overwrite a user",
				Flags:  append([]cli.Flag{idFlag()}, userFlags()...),
				Action: r.UpdateUser,
			},
			deleteCommand(r, pick),
		),
	}
}

func postFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Post title", Required: true},
		&cli.StringFlag{Name: "content", Usage: "Post body", Required: true},
		&cli.IntFlag{Name: "views", Usage: "View count"},
		&cli.Int64Flag{Name: "user-id", Usage: "Author id", Required: true},
	}
}

func postFromFlags(cmd *cli.Command) store.Post {
	return store.Post{
		ID:      cmd.Int64("id"),
		Title:   cmd.String("title"),
		Content: cmd.String("content"),
		Views:   cmd.Int("views"),
		UserID:  cmd.Int64("user-id"),
	}
}

// CreatePost inserts a post from flags.
func (r *Runner) CreatePost(ctx context.Context, cmd *cli.Command) error {
	s, err := r.repos(ctx)
	if err != nil {
		return err
	}
	if err := s.Posts.Create(ctx, postFromFlags(cmd)); err != nil {
		return err
	}
	return r.writeAffected(1)
}

// UpdatePost overwrites every field of the post named by --id.
func (r *Runner) UpdatePost(ctx context.Context, cmd *cli.Command) error {
	s, err := r.repos(ctx)
	if err != nil {
		return err
	}
	n, err := s.Posts.Update(ctx, postFromFlags(cmd))
	if err != nil {
		return err
	}
	return r.writeAffected(n)
}

func postsCommand(r *Runner) *cli.Command {
	pick := func(s *store.Store) store.Repository[store.Post] { return s.Posts }
	readers := readCommands(r, func(s *store.Store) store.Reader[store.Post] { return s.Posts })

	return &cli.Command{
		Name:  "posts",
		Usage: "Read and write posts",
		Commands: append(readers,
			&cli.Command{
				Name:   "create",
				Usage:  "Create a post",
				Flags:  postFlags(),
				Action: r.CreatePost,
			},
			&cli.Command{
				Name:   "update",
				Usage:  "Overwrite a post",
				Flags:  append([]cli.Flag{idFlag()}, postFlags()...),
				Action: r.UpdatePost,
			},
			deleteCommand(r, pick),
		),
	}
}
