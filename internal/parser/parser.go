// Package parser builds the syntax tree for a CREATE TABLE statement from
// a token sequence, using predictive recursive descent with one token of
// lookahead and no backtracking.
//
// Grammar:
//
//	Statement  = "CREATE TABLE" Identifier "(" Body ")" ";"
//	Body       = ColumnDecl { ColumnDecl }
//	ColumnDecl = Identifier ColumnType [ "NOT NULL" ] ","
//	ColumnType = "INT" | "JSON" | "VARCHAR" | "DATE"
//
// The comma terminates every column declaration, the last one included.
package parser

import (
	"github.com/mizuleo/tstruct/internal/lexer"
	"github.com/mizuleo/tstruct/internal/tserr"
)

// Parser consumes a token sequence monotonically; tokens are never
// un-read.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New returns a Parser over the given token sequence.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser over tokens and returns the statement tree.
func Parse(tokens []lexer.Token) (*Statement, error) {
	return New(tokens).Parse()
}

// Parse parses one Statement. It fails fast: the first token that does
// not fit the grammar position aborts the whole parse, and no partial
// tree is returned.
func (p *Parser) Parse() (*Statement, error) {
	return p.parseStatement()
}

func (p *Parser) parseStatement() (*Statement, error) {
	if err := p.expect(lexer.CREATE_TABLE); err != nil {
		return nil, err
	}

	name, _, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	columns, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &Statement{TableName: name, Columns: columns}, nil
}

// parseBody parses one or more column declarations. An IDENT in the
// lookahead signals another declaration; anything else ends the body.
func (p *Parser) parseBody() ([]*ColumnDecl, error) {
	col, err := p.parseColumn()
	if err != nil {
		return nil, err
	}
	columns := []*ColumnDecl{col}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != lexer.IDENT {
			return columns, nil
		}
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
}

func (p *Parser) parseColumn() (*ColumnDecl, error) {
	name, pos, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	typ, err := p.parseColumnType()
	if err != nil {
		return nil, err
	}

	// Nullable by default; NOT NULL between the type and the comma
	// flips it.
	nullable := true
	if tok, ok := p.peek(); ok && tok.Kind == lexer.NOT_NULL {
		p.next()
		nullable = false
	}

	if err := p.expect(lexer.COMMA); err != nil {
		return nil, err
	}

	return &ColumnDecl{Name: name, Type: typ, Nullable: nullable, Pos: pos}, nil
}

func (p *Parser) parseIdent() (string, int, error) {
	tok, ok := p.next()
	if !ok {
		return "", 0, errEOF()
	}
	if tok.Kind != lexer.IDENT {
		return "", 0, errUnexpected(tok, lexer.IDENT)
	}
	return tok.Text, tok.Pos, nil
}

func (p *Parser) parseColumnType() (ColumnType, error) {
	tok, ok := p.next()
	if !ok {
		return 0, errEOF()
	}
	switch tok.Kind {
	case lexer.INT:
		return Int, nil
	case lexer.JSON:
		return Json, nil
	case lexer.VARCHAR:
		return Varchar, nil
	case lexer.DATE:
		return Date, nil
	default:
		return 0, tserr.New(tserr.ErrParseUnexpectedToken, "unexpected token, want a column type").
			WithToken(tok.String()).
			WithPos(tok.Pos).
			WithHelp("column types are INT, JSON, VARCHAR and DATE")
	}
}

// expect consumes the next token and fails unless it has the given kind.
func (p *Parser) expect(kind lexer.TokenKind) error {
	tok, ok := p.next()
	if !ok {
		return errEOF()
	}
	if tok.Kind != kind {
		return errUnexpected(tok, kind)
	}
	return nil
}

func (p *Parser) next() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func errUnexpected(tok lexer.Token, want lexer.TokenKind) error {
	return tserr.New(tserr.ErrParseUnexpectedToken, "unexpected token").
		WithToken(tok.String()).
		With("want", want.String()).
		WithPos(tok.Pos)
}

func errEOF() error {
	return tserr.New(tserr.ErrParseEOF, "unexpected end of input")
}
