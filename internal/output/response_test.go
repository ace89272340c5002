package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/record"
)

var defaultRule = AlertRule{Threshold: 3, SeverityField: "severity", IDField: "externalId"}

func TestAlertRule_Alerts(t *testing.T) {
	tests := []struct {
		name    string
		records []record.Record
		want    []string
	}{
		{
			name:    "no records",
			records: nil,
			want:    []string{},
		},
		{
			name: "at and above threshold",
			records: []record.Record{
				record.FromPairs("severity", "3", "externalId", "10"),
				record.FromPairs("severity", "2", "externalId", "11"),
				record.FromPairs("severity", " 9 ", "externalId", "12"),
			},
			want: []string{
				"Severity 3 exceeded threshold for external log id: 10!",
				"Severity 9 exceeded threshold for external log id: 12!",
			},
		},
		{
			name: "missing id",
			records: []record.Record{
				record.FromPairs("severity", "4"),
			},
			want: []string{"Severity 4 exceeded threshold for external log id: Unknown!"},
		},
		{
			name: "not an integer",
			records: []record.Record{
				record.FromPairs("severity", "high", "externalId", "1"),
				record.FromPairs("severity", "4.5", "externalId", "2"),
				record.FromPairs("externalId", "3"),
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultRule.Alerts(tt.records)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Alerts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlertRule_CustomFields(t *testing.T) {
	rule := AlertRule{Threshold: 1, SeverityField: "level", IDField: "id"}
	r := record.New(2)
	r.Set("level", record.Number(2))
	r.Set("id", record.Text("abc"))

	got := rule.Alerts([]record.Record{r})
	want := []string{"Severity 2 exceeded threshold for external log id: abc!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Alerts() = %v, want %v", got, want)
	}
}

func TestNewResponse(t *testing.T) {
	res := &query.Result{
		Count:          1,
		DuplicateCount: 2,
		Records:        []record.Record{record.FromPairs("severity", "5", "externalId", "7")},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewResponse("severity > '4'", res, defaultRule)); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `{
  "query": "severity > '4'",
  "totalLogs": 1,
  "duplicateCount": 2,
  "logs": [
    {
      "severity": "5",
      "externalId": "7"
    }
  ],
  "alerts": [
    "Severity 5 exceeded threshold for external log id: 7!"
  ],
  "message": "Query executed successfully"
}
`
	if buf.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestNewResponse_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewResponse("a = 'b'", &query.Result{}, defaultRule)); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if logs, ok := decoded["logs"].([]interface{}); !ok || len(logs) != 0 {
		t.Errorf("logs = %v, want empty array", decoded["logs"])
	}
	if alerts, ok := decoded["alerts"].([]interface{}); !ok || len(alerts) != 0 {
		t.Errorf("alerts = %v, want empty array", decoded["alerts"])
	}
}

func TestErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, ErrorResponse{Query: "", Message: "Query cannot be empty! Please provide a valid query."})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if strings.Contains(buf.String(), "totalLogs") {
		t.Errorf("error envelope should only hold query and message:\n%s", buf.String())
	}
}
