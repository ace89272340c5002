package output

import (
	"fmt"
	"io"

	"github.com/vegasq/logq/internal/record"
)

// Formatter defines the interface for record formatters.
type Formatter interface {
	// Format writes records in the formatter's specific format
	Format(records []record.Record) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for name. The "json" envelope formatter is
// built with NewResponseWriter instead, since it needs the query result.
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "jsonl":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", name)
}

// columns returns the union of record fields in first-seen order.
func columns(records []record.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}
