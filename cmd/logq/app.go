package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vegasq/logq/internal/config"
	"github.com/vegasq/logq/internal/logging"
	"github.com/vegasq/logq/internal/output"
	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/record"
	"github.com/vegasq/logq/internal/store"
)

var (
	errColor   = color.New(color.FgRed, color.Bold)
	alertColor = color.New(color.FgYellow)
)

// app holds what every command needs once flags are parsed.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath    string
	newLineReader func() lineReader

	cfg   *config.Config
	log   *logrus.Logger
	store store.Store
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:            in,
		out:           out,
		errOut:        errOut,
		newLineReader: newLiner,
	}
}

// run executes the command line args and releases the store afterwards.
func (a *app) run(args []string) error {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	err := cmd.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logq",
		Short: "Query CSV and parquet logs",
		Long: `logq filters log records with conditions such as

  severity >= '5' AND NOT host = 'web*' OR user != 'admin'

Conditions are evaluated left to right without precedence. Without a
subcommand logq starts an interactive session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the TOML config file")
	logging.RegisterFlags(cmd)

	cmd.AddCommand(newQueryCommand(a), newSavedCommand(a), newColumnsCommand(a))
	return cmd
}

// setup loads the config, builds the logger and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.NewCommandLogger(cmd, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	a.store, err = store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"config": a.configPath,
		"store":  cfg.Store.Driver,
	}).Debug("configured")
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// engine returns a query engine that saves matches to the configured store.
func (a *app) engine(dedupe bool) (*query.Engine, error) {
	pooling, err := query.ParsePoolPolicy(a.cfg.Pooling)
	if err != nil {
		return nil, err
	}

	var sink query.Sink
	if a.store != nil {
		sink = a.store
	}
	return query.NewEngine(sink,
		query.WithDedupe(dedupe || a.cfg.Dedupe),
		query.WithPooling(pooling),
		query.WithLogger(a.log),
	), nil
}

func (a *app) alertRule(threshold int) output.AlertRule {
	return output.AlertRule{
		Threshold:     threshold,
		SeverityField: a.cfg.SeverityField,
		IDField:       a.cfg.IDField,
	}
}

// showSaved prints the most recent saved records.
func (a *app) showSaved(limit int) error {
	if limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", limit)
	}
	if a.store == nil {
		return errors.New("no store configured, set [store] driver in the config")
	}

	saved, err := a.store.Recent(limit)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Fprintln(a.out, "No Saved Logs")
		return nil
	}
	for _, s := range saved {
		fmt.Fprintf(a.out, "Id: %d, Json: ", s.ID)
		if err := output.WriteJSON(a.out, s.Record); err != nil {
			return err
		}
	}
	return nil
}

// printAvailableColumns lists the fields the sources do provide.
func (a *app) printAvailableColumns(sources []query.Source) {
	var firsts []record.Record
	for _, src := range sources {
		records, err := src.Read()
		if err != nil || len(records) == 0 {
			continue
		}
		firsts = append(firsts, records[0])
	}
	if columns := query.GetColumnNames(firsts); len(columns) > 0 {
		fmt.Fprintf(a.errOut, "\nAvailable columns: %s\n", strings.Join(columns, ", "))
	}
}

func printError(w io.Writer, err error) {
	_, _ = errColor.Fprintf(w, "Error: %v\n", err)
}

// isQueryError reports whether err is the user's query being wrong rather
// than a failure to read or save.
func isQueryError(err error) bool {
	return errors.Is(err, query.ErrQueryFormat) ||
		errors.Is(err, query.ErrColumnNotFound) ||
		errors.Is(err, query.ErrUnsupportedOperator) ||
		errors.Is(err, query.ErrInvalidInput)
}
