// Package logging builds the logrus logger used by the logq commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RegisterFlags will register the flags for logging
func RegisterFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("log-level", "", "set the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "set the log format (text, json)")
	rootCmd.PersistentFlags().String("log-output", "-", "the location of the log file, use - for stderr")
}

// Options are the config file fallbacks for unset flags.
type Options struct {
	Level  string
	Format string
}

// NewCommandLogger returns a logger configured from the command flags,
// falling back to opts and then to info level text output on stderr.
func NewCommandLogger(cmd *cobra.Command, opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	out, _ := cmd.Flags().GetString("log-output")
	w, err := openOutput(out)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(w)

	format := flagOr(cmd, "log-format", opts.Format)
	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	level := flagOr(cmd, "log-level", opts.Level)
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)

	return logger, nil
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return fallback
	}
	return v
}

func openOutput(o string) (io.Writer, error) {
	switch o {
	case "-", "", "stderr", "/dev/stderr":
		return os.Stderr, nil
	case "stdout", "/dev/stdout":
		return os.Stdout, nil
	case "/dev/null":
		return io.Discard, nil
	}
	f, err := os.OpenFile(o, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log output %s: %w", o, err)
	}
	return f, nil
}
