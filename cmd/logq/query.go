package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/logq/internal/output"
	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/reader"
)

type queryOptions struct {
	query     string
	format    string
	limit     int
	dedupe    bool
	threshold int
}

func newQueryCommand(a *app) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query -q QUERY [FILE...]",
		Short: "Run one query over CSV and parquet files",
		Example: `  logq query -q "severity >= '5'" logs.csv
  logq query -q "host = 'web*' AND NOT user = 'admin'" -f table logs/*.parquet
  logq query -q "msg = '*timeout*'" -f csv --limit 10 a.csv b.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.cfg.Format
			}
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = a.cfg.SeverityThreshold
			}
			return a.runQuery(opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.query, "query", "q", "", "filter expression (e.g., \"severity > '3' AND host = 'web*'\")")
	flags.StringVarP(&opts.format, "format", "f", "json", "output format: json, jsonl, csv, table")
	flags.IntVar(&opts.limit, "limit", 0, "limit number of records shown (0 = unlimited)")
	flags.BoolVar(&opts.dedupe, "dedupe", false, "drop matches identical to an earlier match")
	flags.IntVar(&opts.threshold, "threshold", 3, "severity at or above which a record raises an alert")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func (a *app) runQuery(opts queryOptions, paths []string) error {
	if opts.limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", opts.limit)
	}
	if len(paths) == 0 && a.cfg.DefaultFilePath != "" {
		paths = []string{a.cfg.DefaultFilePath}
	}
	if len(paths) == 0 {
		return errors.New("missing input file")
	}

	sources, err := reader.Expand(paths)
	if err != nil {
		return err
	}

	eng, err := a.engine(opts.dedupe)
	if err != nil {
		return err
	}

	res, err := eng.Execute(sources, opts.query)
	if err != nil {
		if errors.Is(err, query.ErrColumnNotFound) {
			a.printAvailableColumns(sources)
		}
		return err
	}

	shown := *res
	if opts.limit > 0 && len(shown.Records) > opts.limit {
		shown.Records = shown.Records[:opts.limit]
	}
	rule := a.alertRule(opts.threshold)

	if opts.format == "json" {
		return output.WriteJSON(a.out, output.NewResponse(opts.query, &shown, rule))
	}

	formatter, err := output.New(opts.format, a.out)
	if err != nil {
		return err
	}
	if err := formatter.Format(shown.Records); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	for _, alert := range rule.Alerts(shown.Records) {
		_, _ = alertColor.Fprintln(a.errOut, alert)
	}
	return nil
}
