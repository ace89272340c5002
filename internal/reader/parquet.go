package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/logq/internal/record"
)

// rowBatchSize is the number of rows fetched per ReadRows call.
const rowBatchSize = 128

// ParquetReader reads parquet files and returns rows as records.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type ParquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewParquetReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetReader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Fields follow the leaf column order of the schema; nested columns are
// named with dot notation. Null values are left out of the record.
func (r *ParquetReader) ReadAll() ([]record.Record, error) {
	columns := r.ColumnNames()
	records := make([]record.Record, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	rows := make([]parquet.Row, rowBatchSize)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			records = append(records, rowToRecord(row, columns))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return records, nil
}

// ColumnNames returns the leaf column names of the file schema.
func (r *ParquetReader) ColumnNames() []string {
	paths := r.pqFile.Schema().Columns()
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = strings.Join(path, ".")
	}
	return names
}

// Fields describes the leaf columns of the file schema.
func (r *ParquetReader) Fields() []Field {
	schema := r.pqFile.Schema()
	paths := schema.Columns()
	fields := make([]Field, 0, len(paths))
	for _, path := range paths {
		field := Field{Name: strings.Join(path, "."), Type: "unknown"}
		if leaf, ok := schema.Lookup(path...); ok {
			field.Type = leaf.Node.Type().Kind().String()
			field.Optional = leaf.Node.Optional()
		}
		fields = append(fields, field)
	}
	return fields
}

// Close closes the parquet reader and releases associated resources.
func (r *ParquetReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func rowToRecord(row parquet.Row, columns []string) record.Record {
	rec := record.New(len(columns))
	for _, v := range row {
		if v.IsNull() {
			continue
		}
		col := v.Column()
		if col < 0 || col >= len(columns) {
			continue
		}
		rec.Set(columns[col], valueOf(v))
	}
	return rec
}

// valueOf converts a parquet value: numeric physical types become numbers,
// everything else text.
func valueOf(v parquet.Value) record.Value {
	switch v.Kind() {
	case parquet.Boolean:
		return record.Of(v.Boolean())
	case parquet.Int32:
		return record.Number(float64(v.Int32()))
	case parquet.Int64:
		return record.Number(float64(v.Int64()))
	case parquet.Float:
		return record.Number(float64(v.Float()))
	case parquet.Double:
		return record.Number(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return record.Text(string(v.ByteArray()))
	default:
		return record.Text(fmt.Sprint(v))
	}
}
