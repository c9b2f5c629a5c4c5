// Copyright © 2025 Framecheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the command-line interface for the framecheck tool.
//
// # Overview
//
// The framecheck CLI validates tabular data files against declarative check
// set documents and can run the validation HTTP API server.
//
// # Commands
//
// validate - Validate table files against a check set:
//
//	framecheck validate --checks checks.yaml data.csv
//	framecheck validate --checks checks.yaml jan.csv feb.csv mar.xlsx
//	framecheck validate --checks checks.yaml data.csv --invalid-rows bad.csv
//	framecheck validate --checks checks.yaml data.csv --fail-on-error
//
// Loads each table (CSV or Excel), evaluates every check in the set, and
// writes a structured report. Use --fail-on-error for CI/CD pipelines
// (non-zero exit when validation reports errors).
//
// serve - Run the validation HTTP API server:
//
//	framecheck serve
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: text, json, yaml (default: text)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//	PORT       API server listen port (serve command)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/frame - Tabular data loading and row selection
//   - pkg/schema - Check sets, validation, and document persistence
//   - pkg/serializer - Output formatting
//   - pkg/api - The HTTP API server
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/framecheck/framecheck/pkg/cli.version=1.0.0'"
package cli
