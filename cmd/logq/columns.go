package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vegasq/logq/internal/output"
	"github.com/vegasq/logq/internal/reader"
	"github.com/vegasq/logq/internal/record"
)

func newColumnsCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "columns FILE...",
		Short: "List the columns a query can refer to",
		Example: `  logq columns logs.csv
  logq columns -f jsonl logs/*.parquet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showColumns(format, args)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: jsonl, csv, table")

	return cmd
}

// showColumns describes every file matched by paths, one record per column.
func (a *app) showColumns(format string, paths []string) error {
	formatter, err := output.New(format, a.out)
	if err != nil {
		return err
	}

	sources, err := reader.Expand(paths)
	if err != nil {
		return err
	}

	var rows []record.Record
	for _, src := range sources {
		fields, err := reader.Describe(src.Name())
		if err != nil {
			return err
		}
		for _, f := range fields {
			rows = append(rows, record.FromPairs(
				"file", src.Name(),
				"column", f.Name,
				"type", f.Type,
				"optional", strconv.FormatBool(f.Optional),
			))
		}
	}
	return formatter.Format(rows)
}
