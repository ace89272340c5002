package query

import (
	"errors"
	"testing"

	"github.com/vegasq/logq/internal/record"
)

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		str     string
		pattern string
		want    bool
	}{
		{"ABC", "A*C", true},
		{"AC", "A*C", true},
		{"AxyzC", "A*C", true},
		{"ABD", "A*C", false},
		{"ACBC", "A*C", true},
		{"abc", "ABC", false},
		{"ABC", "ABC", true},
		{"ABC", "AB", false},
		{"", "", true},
		{"x", "", false},
		{"", "*", true},
		{"anything", "*", true},
		{"anything", "**", true},
		{"login failed", "*fail*", true},
		{"login ok", "*fail*", false},
		{"a.b", "a.b", true},
		{"axb", "a.b", false},
		{"abcabc", "a*c*c", true},
		{"abc", "a*b*c*d", false},
		{"A", "A*A", false},
		{"AA", "A*A", true},
		{"[x]", "[x]", true},
	}

	for _, tt := range tests {
		t.Run(tt.str+"~"+tt.pattern, func(t *testing.T) {
			if got := matchWildcard(tt.str, tt.pattern); got != tt.want {
				t.Errorf("matchWildcard(%q, %q) = %v, want %v", tt.str, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name    string
		value   record.Value
		literal string
		want    int
	}{
		{"numeric greater", record.Text("10"), "9", 1},
		{"numeric less", record.Text("9"), "10", -1},
		{"numeric equal", record.Text("10.0"), "10", 0},
		{"typed number", record.Number(42), "41.5", 1},
		{"negative", record.Text("-5"), "-4", -1},
		{"lexical", record.Text("Bob"), "Adam", 1},
		{"lexical ignores case", record.Text("bob"), "BOB", 0},
		{"lexical case folded", record.Text("apple"), "Banana", -1},
		{"mixed falls back to lexical", record.Text("10"), "abc", -1},
		{"lexical digits order", record.Text("10a"), "9a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareValues(tt.value, tt.literal); got != tt.want {
				t.Errorf("compareValues(%v, %q) = %d, want %d", tt.value, tt.literal, got, tt.want)
			}
		})
	}
}

func TestCondition_Evaluate(t *testing.T) {
	row := record.FromPairs("name", "Bob", "age", "10", "code", "ABC")

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"wildcard equal", "code = 'A*C'", true},
		{"wildcard miss", "code = 'A*D'", false},
		{"equal is case sensitive", "name = 'bob'", false},
		{"not equal on match", "name != 'Bob'", false},
		{"not equal on miss", "name != 'Alice'", true},
		{"not equal with wildcard", "name != 'B*'", false},
		{"NOT equal", "NOT name = 'Bob'", false},
		{"NOT equal miss", "NOT name = 'Al*'", true},
		{"NOT with not equal inverts once", "NOT name != 'Bob'", false},
		{"NOT with not equal inverts once on miss", "NOT name != 'Alice'", true},
		{"numeric greater", "age > '9'", true},
		{"numeric less", "age < '9'", false},
		{"numeric greater equal", "age >= '10'", true},
		{"numeric less equal", "age <= '10.0'", true},
		{"lexical greater", "name > 'Adam'", true},
		{"lexical less equal", "name <= 'bob'", true},
		{"NOT greater", "NOT age > '9'", false},
		{"missing column equal", "missing = '*'", false},
		{"missing column not equal", "missing != 'X'", false},
		{"missing column NOT", "NOT missing = 'X'", false},
		{"missing column compare", "missing > '0'", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.query, err)
			}
			got, err := q.Conditions[0].Evaluate(row)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("%s on %v = %v, want %v", tt.query, row.Keys(), got, tt.want)
			}
		})
	}
}

func TestCondition_EvaluateTypedNumbers(t *testing.T) {
	row := record.New(2)
	row.Set("age", record.Number(10))
	row.Set("score", record.Number(95.5))

	tests := []struct {
		cond Condition
		want bool
	}{
		{Condition{Column: "age", Operator: TokenEqual, Literal: "10"}, true},
		{Condition{Column: "age", Operator: TokenEqual, Literal: "1*"}, true},
		{Condition{Column: "score", Operator: TokenEqual, Literal: "95.5"}, true},
		{Condition{Column: "score", Operator: TokenGreater, Literal: "100"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.cond.String(), func(t *testing.T) {
			got, err := tt.cond.Evaluate(row)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCondition_UnsupportedOperator(t *testing.T) {
	row := record.FromPairs("a", "1")
	c := Condition{Column: "a", Operator: TokenIdent, Literal: "1"}

	_, err := c.Evaluate(row)
	if !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("expected ErrUnsupportedOperator, got %v", err)
	}

	// A missing column is decided before the operator is looked at.
	c.Column = "b"
	if _, err := c.Evaluate(row); err != nil {
		t.Errorf("expected no error for missing column, got %v", err)
	}
}

func TestQuery_EvaluateLeftToRight(t *testing.T) {
	// A=false, B=true, C=false
	row := record.FromPairs("a", "0", "b", "1", "c", "0")

	tests := []struct {
		query string
		want  bool
	}{
		// (false OR true) AND false, not false OR (true AND false)
		{"a = '1' OR b = '1' AND c = '1'", false},
		// (true AND false) OR true
		{"b = '1' AND c = '1' OR b = '1'", true},
		// (false AND x) OR true
		{"a = '1' AND b = '1' OR b = '1'", true},
		// ((true OR x) AND true) AND false
		{"b = '1' OR a = '1' AND b = '1' AND c = '1'", false},
		{"a = '0' AND b = '1' AND c = '0'", true},
		{"a = '1' OR c = '1'", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, err := q.Evaluate(row)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestQuery_EvaluateBadConnector(t *testing.T) {
	q := &Query{
		Conditions: []Condition{
			{Column: "a", Operator: TokenEqual, Literal: "1"},
			{Column: "a", Operator: TokenEqual, Literal: "1"},
		},
		Connectors: []TokenType{TokenNot},
	}
	if _, err := q.Evaluate(record.FromPairs("a", "1")); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("expected ErrUnsupportedOperator, got %v", err)
	}
}

func TestApplyFilter(t *testing.T) {
	rows := []record.Record{
		record.FromPairs("name", "alice", "age", "30"),
		record.FromPairs("name", "bob", "age", "25"),
		record.FromPairs("name", "charlie", "age", "35"),
	}

	q, err := Parse("age >= '30'")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := ApplyFilter(rows, q)
	if err != nil {
		t.Fatalf("ApplyFilter() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ApplyFilter() returned %d rows, want 2", len(got))
	}
	for i, want := range []string{"alice", "charlie"} {
		name, _ := got[i].Get("name")
		if name.String() != want {
			t.Errorf("row %d name = %s, want %s", i, name, want)
		}
	}

	all, err := ApplyFilter(rows, nil)
	if err != nil || len(all) != 3 {
		t.Errorf("ApplyFilter(nil) = %d rows, %v", len(all), err)
	}
}

func TestGetColumnNames(t *testing.T) {
	rows := []record.Record{
		record.FromPairs("b", "1", "a", "2"),
		record.FromPairs("a", "3", "c", "4"),
	}
	got := GetColumnNames(rows)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("GetColumnNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetColumnNames()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if GetColumnNames(nil) != nil {
		t.Error("GetColumnNames(nil) should be nil")
	}
}
