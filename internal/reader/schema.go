package reader

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Field describes one column of a source file.
type Field struct {
	Name     string
	Type     string
	Optional bool
}

// Describe returns the columns of the file at path without reading its
// rows. Parquet columns carry their physical type; CSV columns are text.
func Describe(path string) ([]Field, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		r, err := NewParquetReader(path)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		defer func() { _ = r.Close() }()
		return r.Fields(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return []Field{}, nil
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: errors.Wrap(err, "failed to read header")}
	}

	fields := make([]Field, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		fields[i] = Field{Name: name, Type: "text"}
	}
	return fields, nil
}
