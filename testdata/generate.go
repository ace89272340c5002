//go:build ignore

// Generates sample log files for trying logq:
//
//	cd testdata && go run generate.go
//	logq query -q "severity >= '5'" -f table testdata/logs.parquet testdata/logs.csv
package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/segmentio/parquet-go"
)

type LogRow struct {
	ExternalID int64  `parquet:"externalId"`
	Severity   int32  `parquet:"severity"`
	Host       string `parquet:"host"`
	User       string `parquet:"user"`
	Message    string `parquet:"msg"`
}

func main() {
	rows := []LogRow{
		{ExternalID: 1001, Severity: 2, Host: "web1", User: "alice", Message: "login ok"},
		{ExternalID: 1002, Severity: 7, Host: "web1", User: "bob", Message: "disk full"},
		{ExternalID: 1003, Severity: 4, Host: "web2", User: "admin", Message: "config reloaded"},
		{ExternalID: 1004, Severity: 9, Host: "db1", User: "system", Message: "replication lag"},
		{ExternalID: 1005, Severity: 1, Host: "db1", User: "carol", Message: "slow query"},
	}

	file, err := os.Create("logs.parquet")
	if err != nil {
		log.Fatal(err)
	}
	writer := parquet.NewGenericWriter[LogRow](file)
	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
	if err := file.Close(); err != nil {
		log.Fatal(err)
	}
	log.Println("Created logs.parquet")

	// the CSV holds the same events under different ids
	out, err := os.Create("logs.csv")
	if err != nil {
		log.Fatal(err)
	}
	w := csv.NewWriter(out)
	_ = w.Write([]string{"externalId", "severity", "host", "user", "msg"})
	for _, r := range rows {
		_ = w.Write([]string{
			strconv.FormatInt(r.ExternalID+1000, 10),
			strconv.Itoa(int(r.Severity)),
			r.Host, r.User, r.Message,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
	log.Println("Created logs.csv")
}
