// Package reader provides the record sources logq queries run over.
//
// Two file formats are supported:
//   - delimited text (CSV) with a header row; every value is text
//   - Apache Parquet, read with github.com/segmentio/parquet-go; numeric
//     columns become numbers
//
// # Basic Usage
//
//	sources, err := reader.Expand([]string{"logs/*.csv", "extra.parquet"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, src := range sources {
//	    records, err := src.Read()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s: %d records\n", src.Name(), len(records))
//	}
//
// Sources read their file on every call to Read; nothing is cached.
// Read failures match ErrRead and unwrap to the underlying cause.
package reader
