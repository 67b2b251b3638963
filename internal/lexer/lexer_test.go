package lexer

import (
	"testing"

	"github.com/mizuleo/tstruct/internal/tserr"
)

// kinds extracts just the token kinds for compact comparisons.
func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want []TokenKind) {
	t.Helper()
	gotKinds := kinds(got)
	if len(gotKinds) != len(want) {
		t.Fatalf("token count = %d, want %d (got %v)", len(gotKinds), len(want), got)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, gotKinds[i], want[i])
		}
	}
}

// -----------------------------------------------------------------------------
// Tokenize Tests
// -----------------------------------------------------------------------------

func TestTokenizeAllTokenKinds(t *testing.T) {
	tokens, err := Tokenize("create table not NULL int integer json varchar date ( ) , ; \n \t test_test")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	assertKinds(t, tokens, []TokenKind{
		CREATE_TABLE, NOT_NULL, INT, INT, JSON, VARCHAR, DATE,
		LPAREN, RPAREN, COMMA, SEMICOLON, IDENT,
	})

	last := tokens[len(tokens)-1]
	if last.Text != "test_test" {
		t.Errorf("identifier text = %q, want %q", last.Text, "test_test")
	}
}

func TestTokenizeStatement(t *testing.T) {
	tokens, err := Tokenize("CREATE TABLE users (id INT NOT NULL, name VARCHAR,);")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	assertKinds(t, tokens, []TokenKind{
		CREATE_TABLE, IDENT, LPAREN,
		IDENT, INT, NOT_NULL, COMMA,
		IDENT, VARCHAR, COMMA,
		RPAREN, SEMICOLON,
	})

	if tokens[1].Text != "users" {
		t.Errorf("table identifier = %q, want %q", tokens[1].Text, "users")
	}
	if tokens[3].Text != "id" || tokens[7].Text != "name" {
		t.Errorf("column identifiers = %q, %q; want %q, %q",
			tokens[3].Text, tokens[7].Text, "id", "name")
	}
}

func TestTokenizeCaseInsensitiveKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenKind
	}{
		{"CREATE TABLE", CREATE_TABLE},
		{"create table", CREATE_TABLE},
		{"Create Table", CREATE_TABLE},
		{"INT", INT},
		{"int", INT},
		{"Integer", INT},
		{"INTEGER", INT},
		{"json", JSON},
		{"JSON", JSON},
		{"VarChar", VARCHAR},
		{"varchar", VARCHAR},
		{"date", DATE},
		{"DATE", DATE},
		{"NOT NULL", NOT_NULL},
		{"not null", NOT_NULL},
		{"Not Null", NOT_NULL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.input, err)
			}
			if len(tokens) != 1 || tokens[0].Kind != tt.want {
				t.Errorf("Tokenize(%q) = %v, want single %v", tt.input, tokens, tt.want)
			}
		})
	}
}

func TestTokenizeCaseSensitiveIdentifiers(t *testing.T) {
	tokens, err := Tokenize("UserName")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != IDENT || tokens[0].Text != "UserName" {
		t.Errorf("identifier case not preserved: %v", tokens)
	}
}

// Keywords are matched by anchored prefix, so a run that merely starts
// with a keyword splits into keyword + identifier remainder.
func TestTokenizeKeywordPrefix(t *testing.T) {
	tokens, err := Tokenize("intx")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	assertKinds(t, tokens, []TokenKind{INT, IDENT})
	if tokens[1].Text != "x" {
		t.Errorf("remainder = %q, want %q", tokens[1].Text, "x")
	}
}

func TestTokenizeIdentifierNeverConsumesComma(t *testing.T) {
	tokens, err := Tokenize("name,")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	assertKinds(t, tokens, []TokenKind{IDENT, COMMA})
	if tokens[0].Text != "name" {
		t.Errorf("identifier = %q, want %q (comma must not be consumed)", tokens[0].Text, "name")
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("CREATE TABLE t (x JSON,);")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	wantPos := []int{0, 13, 15, 16, 18, 22, 23, 24}
	if len(tokens) != len(wantPos) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(wantPos))
	}
	for i, want := range wantPos {
		if tokens[i].Pos != want {
			t.Errorf("token[%d] (%v) pos = %d, want %d", i, tokens[i], tokens[i].Pos, want)
		}
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize(\"\"): %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}

	tokens, err = Tokenize("  \t\n ")
	if err != nil {
		t.Fatalf("Tokenize(whitespace): %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens for whitespace-only input, got %v", tokens)
	}
}

// -----------------------------------------------------------------------------
// Failure Tests
// -----------------------------------------------------------------------------

func TestTokenizeInvalidByte(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPos int
	}{
		{"at sign", "CREATE TABLE t @", 15},
		{"leading", "@CREATE TABLE t", 0},
		{"inside columns", "CREATE TABLE t (x INT, y !DATE,);", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected error, got tokens %v", tokens)
			}
			if tokens != nil {
				t.Error("no partial token sequence may be returned on error")
			}
			if !tserr.Is(err, tserr.ErrLexInvalidByte) {
				t.Errorf("error code = %v, want %v", tserr.GetErrorCode(err), tserr.ErrLexInvalidByte)
			}

			var terr *tserr.Error
			if !asTserr(err, &terr) {
				t.Fatal("error is not a *tserr.Error")
			}
			if pos, ok := terr.Pos(); !ok || pos != tt.wantPos {
				t.Errorf("error position = %d, want %d", pos, tt.wantPos)
			}
		})
	}
}

func asTserr(err error, target **tserr.Error) bool {
	e, ok := err.(*tserr.Error)
	if ok {
		*target = e
	}
	return ok
}

// Repeated calls with identical input must produce structurally equal output.
func TestTokenizeIdempotent(t *testing.T) {
	const input = "CREATE TABLE users (id INT NOT NULL, name VARCHAR,);"

	first, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	second, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token[%d] differs: %v vs %v", i, first[i], second[i])
		}
	}
}
