package lexer

import "regexp"

// matchFunc inspects src at pos and either produces the token starting
// there together with the cursor position just past it, or reports no
// match without consuming anything.
type matchFunc func(src []byte, pos int) (tok Token, next int, ok bool)

// matchers are tried in order at each cursor position; the first success
// wins. Keywords must come before the identifier matcher so that "int"
// never lexes as IDENT.
var matchers = []matchFunc{matchKeyword, matchSymbol, matchIdent}

// keywordPatterns are anchored, case-insensitive patterns tried in
// priority order. INT(EGER)? folds both spellings into one token.
var keywordPatterns = []struct {
	re   *regexp.Regexp
	kind TokenKind
}{
	{regexp.MustCompile(`^(?i)CREATE TABLE`), CREATE_TABLE},
	{regexp.MustCompile(`^(?i)INT(EGER)?`), INT},
	{regexp.MustCompile(`^(?i)JSON`), JSON},
	{regexp.MustCompile(`^(?i)VARCHAR`), VARCHAR},
	{regexp.MustCompile(`^(?i)DATE`), DATE},
	{regexp.MustCompile(`^(?i)NOT NULL`), NOT_NULL},
}

func matchKeyword(src []byte, pos int) (Token, int, bool) {
	rest := src[pos:]
	for _, kp := range keywordPatterns {
		if loc := kp.re.FindIndex(rest); loc != nil {
			return Token{Kind: kp.kind, Pos: pos}, pos + loc[1], true
		}
	}
	return Token{}, 0, false
}

var symbolKinds = map[byte]TokenKind{
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	';': SEMICOLON,
}

func matchSymbol(src []byte, pos int) (Token, int, bool) {
	kind, ok := symbolKinds[src[pos]]
	if !ok {
		return Token{}, 0, false
	}
	return Token{Kind: kind, Pos: pos}, pos + 1, true
}

// matchIdent consumes a maximal run of identifier bytes. An empty run is
// no match, so the caller falls through to the invalid-byte error.
func matchIdent(src []byte, pos int) (Token, int, bool) {
	end := pos
	for end < len(src) && isIdentByte(src[end]) {
		end++
	}
	if end == pos {
		return Token{}, 0, false
	}
	return Token{Kind: IDENT, Text: string(src[pos:end]), Pos: pos}, end, true
}

// isIdentByte reports whether b may appear in an identifier run.
// The comma is rejected explicitly; matcher ordering alone must not be
// what keeps it out of identifiers.
func isIdentByte(b byte) bool {
	if b == ',' {
		return false
	}
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
