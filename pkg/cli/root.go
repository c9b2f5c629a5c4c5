/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/framecheck/framecheck/pkg/logging"
)

const appName = "framecheck"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/framecheck/framecheck/pkg/cli.version=1.0.0"
	version = "dev"
)

// New builds the framecheck root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  appName,
		Usage:                 "Validate tabular data against declarative check sets",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.LevelFromEnv()
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			logging.SetDefaultLogger(appName, version, level, cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			serveCmd(),
		},
	}
}
