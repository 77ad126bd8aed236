// cmd/service/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := &cli.App{
		Name:  "github-signal-sync",
		Usage: "Mirror pull requests, issues and commits of a GitHub repository into PostgreSQL",
		Commands: []*cli.Command{
			serveCommand(),
			syncCommand(),
			migrateCommand(),
		},
	}
	return app.RunContext(ctx, args)
}
