package query

import (
	"fmt"
)

// Parser parses tokens into a Query
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without advancing
func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos+1]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// Parse parses a query string.
//
// Every failure matches ErrQueryFormat.
func Parse(query string) (*Query, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	tokens := Tokenize(query)

	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	q, err := parser.parseQuery()
	if err != nil {
		return nil, err
	}

	if err := validateShape(q); err != nil {
		return nil, err
	}
	return q, nil
}

// parseQuery parses: condition (connector condition)*
func (p *Parser) parseQuery() (*Query, error) {
	q := &Query{}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	q.Conditions = append(q.Conditions, cond)

	for p.current().Type != TokenEOF {
		connector := p.current()
		if connector.Type != TokenAnd && connector.Type != TokenOr {
			return nil, p.unexpected("AND or OR")
		}
		p.advance()

		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		q.Connectors = append(q.Connectors, connector.Type)
		q.Conditions = append(q.Conditions, cond)
	}

	return q, nil
}

// parseCondition parses: [NOT] column operator 'literal'
func (p *Parser) parseCondition() (Condition, error) {
	var cond Condition

	// A keyword directly followed by an operator is a column that happens
	// to share its name, e.g. "not = 'x'".
	if p.current().Type == TokenNot && !p.peek().Type.isComparison() {
		cond.Negate = true
		p.advance()
	}

	// Parse column name
	tok := p.current()
	switch tok.Type {
	case TokenIdent, TokenNot, TokenAnd, TokenOr:
	default:
		return cond, p.unexpected("column name")
	}
	if err := ValidateColumnName(tok.Value); err != nil {
		return cond, err
	}
	cond.Column = tok.Value
	p.advance()

	// Parse operator
	if !p.current().Type.isComparison() {
		return cond, p.unexpected("comparison operator")
	}
	cond.Operator = p.current().Type
	if cond.Operator == TokenNotEqual {
		cond.Negate = true
	}
	p.advance()

	// Parse literal
	if p.current().Type != TokenString {
		return cond, p.unexpected("quoted value")
	}
	cond.Literal = p.current().Value
	p.advance()

	return cond, nil
}

// unexpected builds the error for the current token.
func (p *Parser) unexpected(want string) error {
	tok := p.current()
	switch tok.Type {
	case TokenEOF:
		return fmt.Errorf("%w: expected %s, got end of query", ErrQueryFormat, want)
	case TokenError:
		return fmt.Errorf("%w: expected %s, got unexpected %q", ErrQueryFormat, want, tok.Value)
	default:
		return fmt.Errorf("%w: expected %s, got %q", ErrQueryFormat, want, tok.Value)
	}
}
