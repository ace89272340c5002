package query

import (
	"errors"
	"fmt"
	"strings"
)

// Validation constants to prevent DoS and resource exhaustion
const (
	// MaxQueryLength is the maximum allowed query string length (64KB)
	MaxQueryLength = 64 * 1024

	// MaxTokens is the maximum number of tokens in a query
	MaxTokens = 1000

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256
)

var (
	// ErrEmptyQuery is returned when the query is empty or whitespace only
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrGrouping is returned when the query contains parentheses
	ErrGrouping = errors.New("parentheses are not supported")

	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when query has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")
)

// ValidateQuery checks the raw query text before it is tokenized.
// Every failure matches ErrQueryFormat.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: %w", ErrQueryFormat, ErrEmptyQuery)
	}
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d bytes (max %d)", ErrQueryFormat, ErrQueryTooLong, len(query), MaxQueryLength)
	}
	if strings.ContainsAny(query, "()") {
		return fmt.Errorf("%w: %w", ErrQueryFormat, ErrGrouping)
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %w: %d chars (max %d)", ErrQueryFormat, ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %w: %d tokens (max %d)", ErrQueryFormat, ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// validateShape enforces the structural invariant of a parsed query: one
// connector between each pair of adjacent conditions.
func validateShape(q *Query) error {
	if len(q.Conditions) == 0 || len(q.Connectors) != len(q.Conditions)-1 {
		return fmt.Errorf("%w: %d conditions with %d connectors", ErrQueryFormat, len(q.Conditions), len(q.Connectors))
	}
	return nil
}
