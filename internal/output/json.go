package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/logq/internal/record"
)

// JSONFormatter outputs records as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes records as JSON Lines (one JSON object per line)
func (j *JSONFormatter) Format(records []record.Record) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetEscapeHTML(false)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
