/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/framecheck/framecheck/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the validation HTTP API server",
		Description: `Runs the framecheck API server. Tables are validated by POSTing a check
set document and a row-oriented table to /v1/validate.

The server also exposes /health, /ready, and Prometheus metrics on /metrics.

# Configuration

  PORT       listen port (default: 8080)
  LOG_LEVEL  logging verbosity (debug, info, warn, error)`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve(ctx)
		},
	}
}
