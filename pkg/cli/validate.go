/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/framecheck/framecheck/pkg/frame"
	"github.com/framecheck/framecheck/pkg/schema"
	"github.com/framecheck/framecheck/pkg/serializer"
)

// maxConcurrentTables bounds how many table files are validated in parallel.
const maxConcurrentTables = 4

// fileReport pairs a validation report with the table file it covers.
type fileReport struct {
	File string `json:"file" yaml:"file"`

	*schema.Report `yaml:",inline"`
}

// multiReport renders per-file summaries when text output is requested.
type multiReport []fileReport

func (m multiReport) Summary() string {
	var b strings.Builder
	for i, r := range m {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s ==\n", r.File)
		b.WriteString(r.Report.Summary())
	}
	return b.String()
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		Aliases:               []string{"val"},
		EnableShellCompletion: true,
		Usage:                 "Validate table files against a check set",
		ArgsUsage:             "TABLE [TABLE ...]",
		Description: `Validates one or more table files (CSV or Excel) against a declarative
check set document.

Every check in the set is evaluated; a failing check never stops later
checks. Checks marked warn_only report warnings and leave the table valid.

# Examples

Validate a CSV file:
  framecheck validate --checks checks.yaml data.csv

Validate several files at once:
  framecheck validate --checks checks.yaml jan.csv feb.csv mar.xlsx

Write offending rows to a CSV file:
  framecheck validate --checks checks.yaml data.csv --invalid-rows bad.csv

Fail a CI pipeline on validation errors:
  framecheck validate --checks checks.yaml data.csv --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "checks",
				Aliases:  []string{"c"},
				Required: true,
				Usage:    "check set document path (YAML or JSON)",
			},
			&cli.StringFlag{
				Name:  "invalid-rows",
				Usage: "write rows that failed validation to this CSV file (single table only)",
			},
			&cli.BoolFlag{
				Name:  "include-warnings",
				Usage: "include warning rows in the --invalid-rows output",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit non-zero when validation reports errors",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one table file is required")
			}

			invalidRowsPath := cmd.String("invalid-rows")
			if invalidRowsPath != "" && len(paths) > 1 {
				return fmt.Errorf("--invalid-rows supports a single table file, got %d", len(paths))
			}

			set, err := loadCheckSet(cmd.String("checks"))
			if err != nil {
				return err
			}

			type outcome struct {
				table  *frame.Frame
				result *schema.ValidationResult
			}
			outcomes := make([]outcome, len(paths))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(maxConcurrentTables)
			for i, path := range paths {
				i, path := i, path
				g.Go(func() error {
					f, err := loadTable(path)
					if err != nil {
						return err
					}

					res, err := set.Validate(gctx, f)
					if err != nil {
						return fmt.Errorf("failed to validate %q: %w", path, err)
					}

					outcomes[i] = outcome{table: f, result: res}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var value any
			if len(paths) == 1 {
				value = outcomes[0].result.Report()
			} else {
				reports := make(multiReport, len(paths))
				for i, path := range paths {
					reports[i] = fileReport{File: path, Report: outcomes[i].result.Report()}
				}
				value = reports
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err := ser.Serialize(ctx, value); err != nil {
				return err
			}

			if invalidRowsPath != "" {
				err := writeInvalidRows(invalidRowsPath, outcomes[0].table,
					outcomes[0].result, cmd.Bool("include-warnings"))
				if err != nil {
					return err
				}
			}

			if cmd.Bool("fail-on-error") {
				var errs []error
				for i, o := range outcomes {
					if err := o.result.Err(); err != nil {
						errs = append(errs, fmt.Errorf("%s: %w", paths[i], err))
					}
				}
				return errors.Join(errs...)
			}

			return nil
		},
	}
}

// writeInvalidRows extracts the offending rows from the result and writes
// them as CSV.
func writeInvalidRows(path string, f *frame.Frame, res *schema.ValidationResult, includeWarnings bool) error {
	invalid, err := res.InvalidRows(f, includeWarnings)
	if err != nil {
		return fmt.Errorf("failed to recover invalid rows: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}

	if err := invalid.WriteCSV(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	slog.Info("wrote invalid rows", "path", path, "rows", invalid.Len())
	return out.Close()
}
