package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"repolab/internal/fixtures"
	"repolab/internal/store"
)

func idFlag() cli.Flag {
	return &cli.Int64Flag{Name: "id", Usage: "Primary key of the record", Required: true}
}

// Seed resets one or all fixture sets.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("fixture set is required (music, social or all)")
	}

	sets := fixtures.Sets()
	if !strings.EqualFold(name, "all") {
		set, err := fixtures.Parse(name)
		if err != nil {
			return err
		}
		sets = []fixtures.Set{set}
	}

	if err := r.connect(ctx); err != nil {
		return err
	}
	if r.seed == nil {
		return fmt.Errorf("no database to seed")
	}

	seeded := make([]string, 0, len(sets))
	for _, set := range sets {
		if err := fixtures.Reset(ctx, r.seed, set); err != nil {
			return err
		}
		r.logger.WithContext(ctx).Info().Str("set", string(set)).Msg("Fixtures reset")
		seeded = append(seeded, string(set))
	}

	return r.writeJSON(map[string][]string{"seeded": seeded})
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Reset tables to their fixture rows",
		ArgsUsage: "<music|social|all>",
		Action:    r.Seed,
	}
}

// readCommands builds the list/show pair every repository supports.
func readCommands[T any](r *Runner, pick func(*store.Store) store.Reader[T]) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list",
			Usage: "List every record",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				s, err := r.repos(ctx)
				if err != nil {
					return err
				}
				items, err := pick(s).All(ctx)
				if err != nil {
					return err
				}
				return r.writeJSON(items)
			},
		},
		{
			Name:  "show",
			Usage: "Show one record",
			Flags: []cli.Flag{idFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				s, err := r.repos(ctx)
				if err != nil {
					return err
				}
				item, err := pick(s).Find(ctx, cmd.Int64("id"))
				if err != nil {
					return err
				}
				return r.writeJSON(item)
			},
		},
	}
}

// deleteCommand builds the delete subcommand of a writable repository.
func deleteCommand[T any](r *Runner, pick func(*store.Store) store.Repository[T]) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete one record",
		Flags: []cli.Flag{idFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := r.repos(ctx)
			if err != nil {
				return err
			}
			n, err := pick(s).Delete(ctx, cmd.Int64("id"))
			if err != nil {
				return err
			}
			return r.writeAffected(n)
		},
	}
}

func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "artists",
		Usage:    "Read artists",
		Commands: readCommands(r, func(s *store.Store) store.Reader[store.Artist] { return s.Artists }),
	}
}

func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "albums",
		Usage:    "Read albums",
		Commands: readCommands(r, func(s *store.Store) store.Reader[store.Album] { return s.Albums }),
	}
}
