package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/logq/internal/record"
)

// TableFormatter outputs records as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes records as a table. Nothing is written for no records.
func (t *TableFormatter) Format(records []record.Record) error {
	if len(records) == 0 {
		return nil
	}

	cols := columns(records)
	table := tablewriter.NewWriter(t.writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)

	for _, r := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			if v, ok := r.Get(col); ok {
				row[i] = v.String()
			}
		}
		table.Append(row)
	}

	table.Render()
	return nil
}
