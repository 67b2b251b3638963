// Package lexer converts the text of a CREATE TABLE statement into an
// ordered token sequence. Keywords and type names are case-insensitive;
// identifiers are case-sensitive and preserved verbatim.
package lexer

import (
	"github.com/mizuleo/tstruct/internal/tserr"
)

// Tokenize scans source left to right and returns its token sequence.
// Scanning is a single pass: whitespace is skipped without emitting a
// token, then the ordered matchers are tried at the cursor and the first
// success advances it. Tokenization fails atomically at the first byte no
// matcher accepts; no partial sequence is returned.
func Tokenize(source string) ([]Token, error) {
	src := []byte(source)
	var tokens []Token

	pos := 0
	for pos < len(src) {
		if isSpace(src[pos]) {
			pos = skipSpace(src, pos)
			continue
		}

		tok, next, ok := match(src, pos)
		if !ok {
			return nil, tserr.New(tserr.ErrLexInvalidByte, "no token matches input").
				WithPos(pos).
				WithByte(src[pos]).
				WithSource(source).
				WithSpan(pos, pos+1)
		}
		tokens = append(tokens, tok)
		pos = next
	}

	return tokens, nil
}

func match(src []byte, pos int) (Token, int, bool) {
	for _, m := range matchers {
		if tok, next, ok := m(src, pos); ok {
			return tok, next, true
		}
	}
	return Token{}, 0, false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

func skipSpace(src []byte, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}
