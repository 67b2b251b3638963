// Package testutil provides test helpers for the tstruct project:
// SQL assertions, coded-error assertions, and an in-memory database.
package testutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mizuleo/tstruct/internal/tserr"
)

// -----------------------------------------------------------------------------
// SQL Assertions
// -----------------------------------------------------------------------------

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeSQL normalizes a SQL string for comparison: whitespace runs
// collapse to a single space, the ends are trimmed, and the whole string
// is uppercased.
func NormalizeSQL(sql string) string {
	sql = whitespaceRun.ReplaceAllString(sql, " ")
	sql = strings.TrimSpace(sql)
	return strings.ToUpper(sql)
}

// AssertSQL compares two SQL strings after normalizing them.
func AssertSQL(t *testing.T, got, want string) {
	t.Helper()

	gotNorm := NormalizeSQL(got)
	wantNorm := NormalizeSQL(want)

	if gotNorm != wantNorm {
		t.Errorf("SQL mismatch:\ngot:  %s\nwant: %s\n\noriginal got:\n%s\n\noriginal want:\n%s",
			gotNorm, wantNorm, got, want)
	}
}

// AssertSQLContains checks that a SQL string contains a substring.
// Both are normalized before comparison.
func AssertSQLContains(t *testing.T, sql, substr string) {
	t.Helper()

	if !strings.Contains(NormalizeSQL(sql), NormalizeSQL(substr)) {
		t.Errorf("SQL does not contain expected substring:\nsql:    %s\nsubstr: %s",
			NormalizeSQL(sql), NormalizeSQL(substr))
	}
}

// AssertSQLNotContains checks that a SQL string does not contain a
// substring after normalization.
func AssertSQLNotContains(t *testing.T, sql, substr string) {
	t.Helper()

	if strings.Contains(NormalizeSQL(sql), NormalizeSQL(substr)) {
		t.Errorf("SQL contains forbidden substring:\nsql:    %s\nsubstr: %s",
			NormalizeSQL(sql), NormalizeSQL(substr))
	}
}

// -----------------------------------------------------------------------------
// Error Assertions
// -----------------------------------------------------------------------------

// AssertError checks that an error has the expected error code.
func AssertError(t *testing.T, err error, code tserr.Code) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %s, got nil", code)
		return
	}
	if got := tserr.GetErrorCode(err); got != code {
		t.Errorf("error code = %s, want %s (error: %v)", got, code, err)
	}
}

// AssertNoError fails the test immediately when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
