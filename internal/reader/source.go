package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/record"
)

// maxFiles limits how many files one glob pattern may expand to.
const maxFiles = 1000

// ErrRead is matched by every error a source returns from Read.
var ErrRead = errors.New("failed to read source")

// ReadError reports a source that could not be read. It unwraps to the
// underlying cause, so errors.Is(err, fs.ErrNotExist) works for missing
// files.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrRead, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRead) hold.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// CSVSource reads a delimited text file with a header row.
type CSVSource struct {
	Path string
}

// Name returns the file path.
func (s *CSVSource) Name() string { return s.Path }

// Read reads the whole file.
func (s *CSVSource) Read() ([]record.Record, error) {
	records, err := readCSVFile(s.Path)
	if err != nil {
		return nil, &ReadError{Path: s.Path, Err: err}
	}
	return records, nil
}

// ParquetSource reads a parquet file.
type ParquetSource struct {
	Path string
}

// Name returns the file path.
func (s *ParquetSource) Name() string { return s.Path }

// Read reads the whole file.
func (s *ParquetSource) Read() ([]record.Record, error) {
	r, err := NewParquetReader(s.Path)
	if err != nil {
		return nil, &ReadError{Path: s.Path, Err: err}
	}

	records, readErr := r.ReadAll()
	closeErr := r.Close()

	// Preserve the first error encountered
	if readErr != nil {
		return nil, &ReadError{Path: s.Path, Err: readErr}
	}
	if closeErr != nil {
		return nil, &ReadError{Path: s.Path, Err: closeErr}
	}
	return records, nil
}

// Open returns the source for path, chosen by file extension: .parquet
// files are read as parquet, anything else as delimited text. The file is
// not touched until Read.
func Open(path string) query.Source {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return &ParquetSource{Path: path}
	}
	return &CSVSource{Path: path}
}

// Expand turns paths into sources. A path containing glob wildcards
// expands to one source per matching file, in lexical order:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// Plain paths are kept as they are, even if the file does not exist; the
// error then surfaces when the source is read.
func Expand(paths []string) ([]query.Source, error) {
	var sources []query.Source
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if !strings.ContainsAny(p, "*?[") {
			sources = append(sources, Open(p))
			continue
		}

		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", p)
		}
		if len(matches) > maxFiles {
			return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
		}
		for _, m := range matches {
			sources = append(sources, Open(m))
		}
	}
	return sources, nil
}

// SplitPaths splits a comma separated list of paths, dropping blanks.
func SplitPaths(list string) []string {
	var paths []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
