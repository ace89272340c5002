package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQueryFormat is matched by every parse failure: empty text,
	// parentheses, unknown tokens and condition/connector mismatches.
	ErrQueryFormat = errors.New("invalid query format")

	// ErrColumnNotFound is matched by *ColumnNotFoundError.
	ErrColumnNotFound = errors.New("columns not found")

	// ErrUnsupportedOperator is returned when a condition carries an
	// operator outside the fixed set. The parser never produces one.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrInvalidInput is returned when Execute is called without sources
	// or without a query.
	ErrInvalidInput = errors.New("invalid input")
)

// ColumnNotFoundError names the query columns that no scanned source has.
type ColumnNotFoundError struct {
	Columns []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrColumnNotFound, strings.Join(e.Columns, ", "))
}

// Is makes errors.Is(err, ErrColumnNotFound) hold.
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

func unsupportedOperator(op TokenType) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
}
