// Package output renders matched records.
//
// Four formats are supported:
//   - JSON: an indented response envelope holding the query, counts,
//     records, and severity alerts
//   - JSON Lines: one JSON object per record
//   - CSV: comma-separated values with a header row
//   - Table: an aligned text table
//
// Example usage:
//
//	formatter, err := output.New("jsonl", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(records); err != nil {
//	    log.Fatal(err)
//	}
//
// Records keep their field order in every format. CSV and table output use
// the union of all record fields, in the order each field is first seen.
package output
