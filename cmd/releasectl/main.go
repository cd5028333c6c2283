package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/nordveil/site-pipeline/cmd/releasectl/commands"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "releasectl",
		Usage: "Inspect the site release pipeline after deployment",
		Commands: []*cli.Command{
			commands.StatusCommand(&logger),
			commands.VerifyCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
