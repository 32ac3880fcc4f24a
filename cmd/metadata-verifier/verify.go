// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-verifier/internal/columns"
	"github.com/pdiddy/metadata-verifier/internal/reconcile"
	"github.com/pdiddy/metadata-verifier/internal/sheet"
	"github.com/pdiddy/metadata-verifier/internal/summary"
	"github.com/pdiddy/metadata-verifier/internal/workbook"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// progressEvery controls how often row progress is logged at info level.
const progressEvery = 100

var verifyCmd = &cobra.Command{
	Use:   "verify <workbook>",
	Short: "Verify the identifier cells of every sheet in a workbook",
	Long: `Verify loads an .xlsx, .xlsm, or .csv file, locates the identifier and
datatype columns of each sheet, and reconciles every identifier against the
sources of the selected mode. A summary prints to stdout.

Use --report to save every verdict as YAML and --annotate to write a copy of
the workbook with colored, commented cells.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	input := args[0]
	format, _ := cmd.Flags().GetString("format")
	reportPath, _ := cmd.Flags().GetString("report")
	annotatePath, _ := cmd.Flags().GetString("annotate")
	recordSkips, _ := cmd.Flags().GetBool("record-skips")

	mode, cfg, err := modeConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Verify.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	sheets, err := workbook.Load(input)
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine(cfg, &logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	var (
		sess    *reconcile.Session
		results []types.SheetVerification
		skipped = make(map[string][]sheet.Skip)
	)
	for _, sh := range sheets {
		if sess == nil && columns.Locate(sh.Headers, cfg.Columns).HasIdentifier() {
			sess, err = engine.Session(ctx, mode)
			if err != nil {
				return err
			}
		}

		res, err := sheet.VerifySession(ctx, sess, sh, sheet.Options{
			Columns:     cfg.Columns,
			Progress:    rowProgress(sh),
			Concurrency: cfg.Verify.Concurrency,
			RecordSkips: recordSkips,
			Logger:      &logger,
		})
		if err != nil {
			return fmt.Errorf("verifying sheet %q: %w", sh.Name, err)
		}
		results = append(results, types.SheetVerification{Name: sh.Name, Verdicts: res.Verdicts})
		if len(res.Skipped) > 0 {
			skipped[sh.Name] = res.Skipped
		}
	}

	if err := summary.Write(summary.SummarizeMany(results), format, os.Stdout); err != nil {
		return err
	}

	var sources []string
	if sess != nil {
		sources = sess.Sources()
	}
	if reportPath != "" {
		if err := summary.WriteReport(reportPath, summary.NewReport(input, mode, sources, results, skipped)); err != nil {
			return err
		}
		logger.Info().Str("file", reportPath).Msg("Wrote report")
	}
	if annotatePath != "" {
		if err := workbook.Annotate(input, annotatePath, results); err != nil {
			return err
		}
		logger.Info().Str("file", annotatePath).Msg("Wrote annotated workbook")
	}
	return nil
}

// rowProgress logs every progressEvery rows and the last row of sh.
func rowProgress(sh types.Sheet) func(int) {
	total := len(sh.Rows)
	return func(row int) {
		done := row + 1
		if done%progressEvery != 0 && done != total {
			return
		}
		logger.Info().
			Str("sheet", sh.Name).
			Int("row", done).
			Int("rows", total).
			Int("percent", summary.Percent(done, total)).
			Msg("Verifying")
	}
}

func init() {
	addModeFlags(verifyCmd)
	verifyCmd.Flags().String("format", summary.FormatNameTable, "summary format: table, json, or yaml")
	verifyCmd.Flags().String("report", "", "write every verdict to this YAML file")
	verifyCmd.Flags().String("annotate", "", "write an annotated .xlsx copy of the workbook to this path")
	verifyCmd.Flags().Int("concurrency", 1, "rows verified in parallel (overrides verify.concurrency)")
	verifyCmd.Flags().Bool("record-skips", false, "include skipped cells in the report")

	rootCmd.AddCommand(verifyCmd)
}
