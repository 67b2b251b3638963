package testutil

import (
	"testing"

	"github.com/mizuleo/tstruct/internal/tserr"
)

func TestNormalizeSQL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "CREATE  TABLE\n\tusers", "CREATE TABLE USERS"},
		{"trims ends", "  SELECT 1  ", "SELECT 1"},
		{"uppercases", "create table t", "CREATE TABLE T"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSQL(tt.input); got != tt.want {
				t.Errorf("NormalizeSQL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssertErrorMatchesCode(t *testing.T) {
	err := tserr.New(tserr.ErrParseEOF, "unexpected end of input")
	AssertError(t, err, tserr.ErrParseEOF)
}

func TestOpenTestDB(t *testing.T) {
	db := OpenTestDB(t)

	if _, err := db.Exec("CREATE TABLE probe (id INTEGER)"); err != nil {
		t.Fatalf("exec on test db: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT count(*) FROM probe").Scan(&n); err != nil {
		t.Fatalf("query on test db: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}
