package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/vegasq/logq/internal/output"
	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/reader"
)

const (
	pathsPrompt     = "Enter the paths of CSV or parquet files, separate them by commas. Press Enter to use the default file: "
	thresholdPrompt = "Please enter the severity threshold as a number: "
	queryPrompt     = "Enter your log query or type exit to quit: "

	emptyQueryMessage = "Query cannot be empty! Please provide a valid query."
)

// lineReader is the part of liner.State the session uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

func newLiner() lineReader {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return l
}

// runShell runs the interactive session until exit or end of input.
func (a *app) runShell() error {
	lr := a.newLineReader()
	defer func() { _ = lr.Close() }()

	sources, err := a.promptSources(lr)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(a.out, "Exiting the app because no file was provided.")
		return nil
	}

	threshold, err := a.promptThreshold(lr)
	if err != nil {
		return err
	}

	eng, err := a.engine(false)
	if err != nil {
		return err
	}
	rule := a.alertRule(threshold)

	for {
		line, err := lr.Prompt(queryPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.out, "Exiting the app.")
				return nil
			}
			return err
		}

		text := strings.TrimSpace(line)
		if text == "" {
			if err := output.WriteJSON(a.out, output.ErrorResponse{Message: emptyQueryMessage}); err != nil {
				return err
			}
			continue
		}
		lr.AppendHistory(text)

		switch {
		case strings.EqualFold(text, "exit"):
			fmt.Fprintln(a.out, "Exiting the app.")
			return nil
		case strings.EqualFold(text, "saved"):
			if err := a.showSaved(a.cfg.SavedLimit); err != nil {
				printError(a.errOut, err)
			}
			continue
		}

		if err := a.respond(eng, sources, text, rule); err != nil {
			return err
		}
	}
}

// respond executes one query and writes its envelope.
func (a *app) respond(eng *query.Engine, sources []query.Source, text string, rule output.AlertRule) error {
	res, err := eng.Execute(sources, text)
	if err != nil {
		msg := fmt.Sprintf("An unexpected error occurred: %v", err)
		if isQueryError(err) {
			msg = fmt.Sprintf("Error: %v. Please adjust your query.", err)
		}
		a.log.WithError(err).Debug("query failed")
		return output.WriteJSON(a.out, output.ErrorResponse{Query: text, Message: msg})
	}
	return output.WriteJSON(a.out, output.NewResponse(text, res, rule))
}

// promptSources asks for input files. Files that do not exist are reported
// and skipped.
func (a *app) promptSources(lr lineReader) ([]query.Source, error) {
	line, err := lr.Prompt(pathsPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	paths := reader.SplitPaths(line)
	if len(paths) == 0 {
		if a.cfg.DefaultFilePath == "" || !fileExists(a.cfg.DefaultFilePath) {
			fmt.Fprintln(a.out, "Default file not found")
			return nil, nil
		}
		paths = []string{a.cfg.DefaultFilePath}
	}

	var sources []query.Source
	for _, p := range paths {
		if strings.ContainsAny(p, "*?[") {
			matched, err := reader.Expand([]string{p})
			if err != nil {
				fmt.Fprintf(a.out, "This file not found: %s\n", p)
				continue
			}
			sources = append(sources, matched...)
			continue
		}
		if !fileExists(p) {
			fmt.Fprintf(a.out, "This file not found: %s\n", p)
			continue
		}
		sources = append(sources, reader.Open(p))
	}
	return sources, nil
}

// promptThreshold asks for the alert threshold, falling back to the
// configured one on invalid input.
func (a *app) promptThreshold(lr lineReader) (int, error) {
	line, err := lr.Prompt(thresholdPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}

	threshold, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		threshold = a.cfg.SeverityThreshold
		fmt.Fprintf(a.out, "Invalid input. We will use severity threshold as %d.\n", threshold)
	}
	return threshold, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
