package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/logq/internal/record"
)

// CSVFormatter outputs records as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes records as CSV. Records missing a column get an empty cell.
func (c *CSVFormatter) Format(records []record.Record) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(records) > 0 {
		cols := columns(records)
		if err := csvWriter.Write(cols); err != nil {
			return err
		}

		for _, r := range records {
			row := make([]string, len(cols))
			for i, col := range cols {
				if v, ok := r.Get(col); ok {
					row[i] = sanitize(v)
				}
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize renders v for CSV. Text starting with a character that
// spreadsheets treat as a formula is prefixed with a quote.
func sanitize(v record.Value) string {
	s := v.String()
	if v.Kind() == record.KindNumber || s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
