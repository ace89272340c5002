package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/logq/internal/query"
	"github.com/vegasq/logq/internal/record"
)

// DefaultMessage is the message of a successful response.
const DefaultMessage = "Query executed successfully"

// Response is the JSON envelope printed for an executed query.
type Response struct {
	Query          string          `json:"query"`
	TotalLogs      int             `json:"totalLogs"`
	DuplicateCount int             `json:"duplicateCount"`
	Logs           []record.Record `json:"logs"`
	Alerts         []string        `json:"alerts"`
	Message        string          `json:"message"`
}

// ErrorResponse is the envelope printed when a query cannot be executed.
type ErrorResponse struct {
	Query   string `json:"query"`
	Message string `json:"message"`
}

// AlertRule selects the records that raise a severity alert.
type AlertRule struct {
	Threshold     int
	SeverityField string
	IDField       string
}

// Alerts returns one alert per record whose severity is an integer at or
// above the threshold, in record order.
func (a AlertRule) Alerts(records []record.Record) []string {
	alerts := make([]string, 0)
	for _, r := range records {
		v, ok := r.Get(a.SeverityField)
		if !ok {
			continue
		}
		severity, err := strconv.Atoi(strings.TrimSpace(v.String()))
		if err != nil || severity < a.Threshold {
			continue
		}

		id := "Unknown"
		if v, ok := r.Get(a.IDField); ok {
			id = v.String()
		}
		alerts = append(alerts, fmt.Sprintf("Severity %d exceeded threshold for external log id: %s!", severity, id))
	}
	return alerts
}

// NewResponse builds the envelope for res.
func NewResponse(queryText string, res *query.Result, rule AlertRule) Response {
	logs := res.Records
	if logs == nil {
		logs = []record.Record{}
	}
	return Response{
		Query:          queryText,
		TotalLogs:      res.Count,
		DuplicateCount: res.DuplicateCount,
		Logs:           logs,
		Alerts:         rule.Alerts(logs),
		Message:        DefaultMessage,
	}
}

// WriteJSON writes v as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
