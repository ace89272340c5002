package query

import (
	"strings"

	"github.com/vegasq/logq/internal/record"
)

// evaluate evaluates one condition against one record. A record without
// the column never matches, whatever the operator.
func evaluate(r record.Record, c Condition) (bool, error) {
	value, exists := r.Get(c.Column)
	if !exists {
		return false, nil
	}

	var match bool
	switch c.Operator {
	case TokenEqual, TokenNotEqual:
		match = matchWildcard(value.String(), c.Literal)
	case TokenGreater:
		match = compareValues(value, c.Literal) > 0
	case TokenLess:
		match = compareValues(value, c.Literal) < 0
	case TokenGreaterEqual:
		match = compareValues(value, c.Literal) >= 0
	case TokenLessEqual:
		match = compareValues(value, c.Literal) <= 0
	default:
		return false, unsupportedOperator(c.Operator)
	}

	if c.Negate {
		return !match, nil
	}
	return match, nil
}

// compareValues orders a field value against a literal. When both parse
// as numbers they are compared numerically, otherwise as case-insensitive
// strings in code point order.
func compareValues(value record.Value, literal string) int {
	left, leftIsNum := value.Float()
	right, rightIsNum := record.ParseNumber(literal)

	if leftIsNum && rightIsNum {
		return compareNumbers(left, right)
	}

	return compareStrings(value.String(), literal)
}

// compareNumbers compares two numbers
func compareNumbers(left, right float64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// compareStrings compares two strings ignoring case
func compareStrings(left, right string) int {
	return strings.Compare(strings.ToUpper(left), strings.ToUpper(right))
}

// matchWildcard matches a string against a pattern where * matches any
// sequence of characters, including none. Everything else matches itself,
// case-sensitively.
func matchWildcard(str, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return str == pattern
	}

	segments := strings.Split(pattern, "*")
	first := segments[0]
	last := segments[len(segments)-1]

	// The first segment is anchored at the start and the last at the end
	if len(str) < len(first)+len(last) {
		return false
	}
	if !strings.HasPrefix(str, first) || !strings.HasSuffix(str, last) {
		return false
	}

	// Middle segments must appear in order between the anchors
	rest := str[len(first) : len(str)-len(last)]
	for _, segment := range segments[1 : len(segments)-1] {
		if segment == "" {
			continue
		}
		idx := strings.Index(rest, segment)
		if idx == -1 {
			return false
		}
		rest = rest[idx+len(segment):]
	}

	return true
}

// ApplyFilter returns the records the filter accepts, in order.
func ApplyFilter(records []record.Record, filter Expression) ([]record.Record, error) {
	if filter == nil {
		return records, nil
	}

	filtered := make([]record.Record, 0)
	for _, r := range records {
		match, err := filter.Evaluate(r)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

// GetColumnNames returns all unique column names from records, in the
// order they are first seen.
func GetColumnNames(records []record.Record) []string {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, r := range records {
		for _, col := range r.Keys() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	return columns
}
