package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"repolab/internal/logging"
)

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "repolab",
		Usage: "Query and edit the music library and social network tables",
		Commands: []*cli.Command{
			seedCommand(r),
			artistsCommand(r),
			albumsCommand(r),
			usersCommand(r),
			postsCommand(r),
		},
	}
}

func main() {
	runner := NewRunner(RunnerOpts{})

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	err := newApp(runner).Run(ctx, os.Args)

	if cerr := runner.Close(); cerr != nil {
		runner.logger.Error(cerr, "close database")
	}
	if err != nil {
		runner.logger.Fatal(err, "command failed")
	}
}
