package query

import (
	"errors"
	"strings"
	"testing"
)

func TestParser_Conditions(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Condition
	}{
		{
			name:  "equality",
			query: "name = 'alice'",
			want:  []Condition{{Column: "name", Operator: TokenEqual, Literal: "alice"}},
		},
		{
			name:  "not equal sets negate",
			query: "name != 'alice'",
			want:  []Condition{{Column: "name", Operator: TokenNotEqual, Literal: "alice", Negate: true}},
		},
		{
			name:  "NOT prefix sets negate",
			query: "NOT name = 'alice'",
			want:  []Condition{{Column: "name", Operator: TokenEqual, Literal: "alice", Negate: true}},
		},
		{
			name:  "NOT with not equal is a single negation",
			query: "NOT name != 'alice'",
			want:  []Condition{{Column: "name", Operator: TokenNotEqual, Literal: "alice", Negate: true}},
		},
		{
			name:  "lowercase not",
			query: "not age < '3'",
			want:  []Condition{{Column: "age", Operator: TokenLess, Literal: "3", Negate: true}},
		},
		{
			name:  "empty literal",
			query: "msg = ''",
			want:  []Condition{{Column: "msg", Operator: TokenEqual, Literal: ""}},
		},
		{
			name:  "no whitespace",
			query: "age>='20'",
			want:  []Condition{{Column: "age", Operator: TokenGreaterEqual, Literal: "20"}},
		},
		{
			name:  "column named like a keyword",
			query: "not = 'x'",
			want:  []Condition{{Column: "not", Operator: TokenEqual, Literal: "x"}},
		},
		{
			name:  "all comparison operators",
			query: "a = '1' AND b != '2' AND c < '3' AND d > '4' AND e <= '5' AND f >= '6'",
			want: []Condition{
				{Column: "a", Operator: TokenEqual, Literal: "1"},
				{Column: "b", Operator: TokenNotEqual, Literal: "2", Negate: true},
				{Column: "c", Operator: TokenLess, Literal: "3"},
				{Column: "d", Operator: TokenGreater, Literal: "4"},
				{Column: "e", Operator: TokenLessEqual, Literal: "5"},
				{Column: "f", Operator: TokenGreaterEqual, Literal: "6"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(q.Conditions) != len(tt.want) {
				t.Fatalf("Parse() got %d conditions, want %d", len(q.Conditions), len(tt.want))
			}
			for i, c := range q.Conditions {
				if c != tt.want[i] {
					t.Errorf("condition %d = %+v, want %+v", i, c, tt.want[i])
				}
			}
			if len(q.Connectors) != len(q.Conditions)-1 {
				t.Errorf("got %d connectors for %d conditions", len(q.Connectors), len(q.Conditions))
			}
		})
	}
}

func TestParser_Connectors(t *testing.T) {
	tests := []struct {
		query string
		want  []TokenType
	}{
		{"a = '1'", nil},
		{"a = '1' AND b = '2'", []TokenType{TokenAnd}},
		{"a = '1' or b = '2'", []TokenType{TokenOr}},
		{"a = '1' Or b = '2' aNd c = '3'", []TokenType{TokenOr, TokenAnd}},
		{"a = 'x AND y' OR b = 'OR'", []TokenType{TokenOr}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(q.Connectors) != len(tt.want) {
				t.Fatalf("got connectors %v, want %v", q.Connectors, tt.want)
			}
			for i := range tt.want {
				if q.Connectors[i] != tt.want[i] {
					t.Errorf("connector %d = %v, want %v", i, q.Connectors[i], tt.want[i])
				}
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"open paren", "(a = '1'"},
		{"close paren", "a = '1')"},
		{"paren inside literal", "a = '(x)'"},
		{"grouped", "(a = '1' OR b = '2') AND c = '3'"},
		{"unquoted value", "age > 30"},
		{"missing value", "age >"},
		{"missing column", "> '30'"},
		{"missing operator", "age '30'"},
		{"trailing AND", "a = '1' AND"},
		{"leading OR", "OR a = '1'"},
		{"missing connector", "a = '1' b = '2'"},
		{"double connector", "a = '1' AND OR b = '2'"},
		{"garbage", "INVALID_QUERY_SYNTAX"},
		{"unterminated literal", "a = 'oops"},
		{"double quotes", `a = "x"`},
		{"double NOT", "NOT NOT a = '1'"},
		{"column too long", strings.Repeat("c", MaxColumnNameLength+1) + " = '1'"},
		{"query too long", "a = '" + strings.Repeat("x", MaxQueryLength) + "'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			if err == nil {
				t.Fatalf("Parse() expected error for query: %s", tt.query)
			}
			if !errors.Is(err, ErrQueryFormat) {
				t.Errorf("Parse() error = %v, want ErrQueryFormat", err)
			}
		})
	}
}

func TestParser_SpecificErrors(t *testing.T) {
	if _, err := Parse(" "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := Parse("a = '1' OR (b = '2')"); !errors.Is(err, ErrGrouping) {
		t.Errorf("expected ErrGrouping, got %v", err)
	}
}

func TestParser_TooManyTokens(t *testing.T) {
	parts := make([]string, 0, MaxTokens/4+1)
	for i := 0; i < MaxTokens/4+1; i++ {
		parts = append(parts, "a = '1'")
	}
	_, err := Parse(strings.Join(parts, " OR "))
	if !errors.Is(err, ErrTooManyTokens) {
		t.Errorf("expected ErrTooManyTokens, got %v", err)
	}
}

func TestQuery_String(t *testing.T) {
	q, err := Parse("NOT name = 'A*'   or age != '3' and x >= ''")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "NOT name = 'A*' OR age != '3' AND x >= ''"
	if got := q.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestQuery_Columns(t *testing.T) {
	q, err := Parse("b = '1' OR a = '2' AND b = '3'")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := q.Columns()
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Columns() = %v, want [b a]", got)
	}
}
