// Package query provides query parsing and record filtering for logq.
//
// It implements a small boolean query language: single-quoted comparisons
// joined by AND/OR, evaluated strictly left to right with no operator
// precedence and no grouping. The package includes a lexer for
// tokenization, a parser producing conditions and connectors, an
// evaluator for single conditions and an Engine that validates columns
// across record sources before filtering.
//
// Example usage:
//
//	q, err := Parse("severity >= '5' AND name = 'Login*'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered, err := ApplyFilter(records, q)
package query

import (
	"strings"

	"github.com/vegasq/logq/internal/record"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenNot TokenType = iota
	TokenAnd
	TokenOr

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenIdent

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenNot:          "NOT",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenString:       "string",
	TokenIdent:        "identifier",
	TokenEOF:          "end of query",
	TokenError:        "invalid token",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// isComparison reports whether t is one of the six comparison operators.
func (t TokenType) isComparison() bool {
	switch t {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		return true
	}
	return false
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Expression is anything that can be evaluated against a record.
type Expression interface {
	Evaluate(r record.Record) (bool, error)
}

// Condition is a single comparison clause.
//
// Negate is set when the operator is != or the clause was written with a
// leading NOT. It is a single flag: NOT with != still inverts only once.
type Condition struct {
	Column   string
	Operator TokenType
	Literal  string
	Negate   bool
}

// Query is a parsed query: the conditions in order and the connectors
// between them. len(Connectors) is always len(Conditions)-1.
type Query struct {
	Conditions []Condition
	Connectors []TokenType // TokenAnd or TokenOr
}

// Evaluate evaluates the condition against a record.
func (c Condition) Evaluate(r record.Record) (bool, error) {
	return evaluate(r, c)
}

// String renders the condition back into query syntax.
func (c Condition) String() string {
	var b strings.Builder
	if c.Negate && c.Operator != TokenNotEqual {
		b.WriteString("NOT ")
	}
	b.WriteString(c.Column)
	b.WriteByte(' ')
	b.WriteString(c.Operator.String())
	b.WriteString(" '")
	b.WriteString(c.Literal)
	b.WriteByte('\'')
	return b.String()
}

// Evaluate folds the conditions left to right. There is no precedence:
// A OR B AND C is (A OR B) AND C.
func (q *Query) Evaluate(r record.Record) (bool, error) {
	if len(q.Conditions) == 0 {
		return false, nil
	}

	result, err := q.Conditions[0].Evaluate(r)
	if err != nil {
		return false, err
	}

	for i := 1; i < len(q.Conditions); i++ {
		switch q.Connectors[i-1] {
		case TokenAnd:
			if !result {
				continue
			}
		case TokenOr:
			if result {
				continue
			}
		default:
			return false, unsupportedOperator(q.Connectors[i-1])
		}
		if result, err = q.Conditions[i].Evaluate(r); err != nil {
			return false, err
		}
	}

	return result, nil
}

// Columns returns the distinct columns referenced by the query, in the
// order they first appear.
func (q *Query) Columns() []string {
	seen := make(map[string]bool, len(q.Conditions))
	columns := make([]string, 0, len(q.Conditions))
	for _, c := range q.Conditions {
		if !seen[c.Column] {
			seen[c.Column] = true
			columns = append(columns, c.Column)
		}
	}
	return columns
}

// String renders the query in its normalized form.
func (q *Query) String() string {
	var b strings.Builder
	for i, c := range q.Conditions {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(q.Connectors[i-1].String())
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	return b.String()
}
