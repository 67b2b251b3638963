package lexer

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// identifier
	IDENT TokenKind = iota

	// keywords
	CREATE_TABLE
	NOT_NULL

	// type keywords
	INT
	VARCHAR
	JSON
	DATE

	// symbols
	LPAREN
	RPAREN
	COMMA
	SEMICOLON
)

// String returns the string representation of a TokenKind.
func (tk TokenKind) String() string {
	switch tk {
	case IDENT:
		return "IDENT"
	case CREATE_TABLE:
		return "CREATE_TABLE"
	case NOT_NULL:
		return "NOT_NULL"
	case INT:
		return "INT"
	case VARCHAR:
		return "VARCHAR"
	case JSON:
		return "JSON"
	case DATE:
		return "DATE"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical unit of a CREATE TABLE statement.
// Text carries the consumed characters for IDENT tokens and is empty for
// keywords and symbols. Pos is the byte offset of the token's first
// character in the source.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// String renders the token for error messages, e.g. IDENT("users") or COMMA.
func (t Token) String() string {
	if t.Kind == IDENT {
		return fmt.Sprintf("IDENT(%q)", t.Text)
	}
	return t.Kind.String()
}
