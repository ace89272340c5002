package reader

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/vegasq/logq/internal/record"
)

const utf8BOM = "\ufeff"

// ReadCSV reads delimited rows from r. The first row is the header and
// names the fields of every following row; all values are text. Every row
// must have as many fields as the header.
func ReadCSV(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return []record.Record{}, nil
		}
		return nil, errors.Wrap(err, "failed to read header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	records := make([]record.Record, 0)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read row %d", len(records)+1)
		}

		rec := record.New(len(header))
		for i, name := range header {
			rec.Set(name, record.Text(row[i]))
		}
		records = append(records, rec)
	}

	return records, nil
}

// readCSVFile opens path and reads it with ReadCSV.
func readCSVFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f)
}
