package gen

import (
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"

	"github.com/mizuleo/tstruct/internal/schema"
)

var horizontalWS = regexp.MustCompile(`[ \t]+`)

// genFlat generates source and collapses gofmt's field alignment so tests
// can assert on single-space forms.
func genFlat(t *testing.T, table *schema.Table) string {
	t.Helper()
	src, err := Go(table, "models")
	if err != nil {
		t.Fatalf("Go: %v", err)
	}
	return horizontalWS.ReplaceAllString(string(src), " ")
}

func TestGoBasicStruct(t *testing.T) {
	src := genFlat(t, &schema.Table{
		Name: "users",
		Fields: []schema.Field{
			{Name: "id", Type: "Int", Nullable: false},
			{Name: "name", Type: "Varchar", Nullable: true},
		},
	})

	for _, want := range []string{
		"package models",
		"type Users struct {",
		"Id int64 `db:\"id\" json:\"id\"`",
		"Name *string `db:\"name\" json:\"name,omitempty\"`",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}
}

func TestGoAllTypes(t *testing.T) {
	src := genFlat(t, &schema.Table{
		Name: "everything",
		Fields: []schema.Field{
			{Name: "a", Type: "Int", Nullable: false},
			{Name: "b", Type: "Varchar", Nullable: false},
			{Name: "c", Type: "Json", Nullable: false},
			{Name: "d", Type: "Date", Nullable: false},
		},
	})

	for _, want := range []string{
		"A int64",
		"B string",
		"C json.RawMessage",
		"D time.Time",
		`"encoding/json"`,
		`"time"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}
}

func TestGoNullableBecomesPointer(t *testing.T) {
	src := genFlat(t, &schema.Table{
		Name: "t",
		Fields: []schema.Field{
			{Name: "required_on", Type: "Date", Nullable: false},
			{Name: "optional_on", Type: "Date", Nullable: true},
			{Name: "blob", Type: "Json", Nullable: true},
		},
	})

	if !strings.Contains(src, "RequiredOn time.Time") {
		t.Errorf("NOT NULL date should be a value type:\n%s", src)
	}
	if !strings.Contains(src, "OptionalOn *time.Time") {
		t.Errorf("nullable date should be a pointer type:\n%s", src)
	}
	// json.RawMessage is already nil-able; no pointer.
	if !strings.Contains(src, "Blob json.RawMessage") {
		t.Errorf("nullable json should stay json.RawMessage:\n%s", src)
	}
}

func TestGoNoImportsForPlainTypes(t *testing.T) {
	src := genFlat(t, &schema.Table{
		Name: "plain",
		Fields: []schema.Field{
			{Name: "x", Type: "Int", Nullable: false},
			{Name: "y", Type: "Varchar", Nullable: false},
		},
	})

	if strings.Contains(src, "import") {
		t.Errorf("no imports expected for int/varchar only:\n%s", src)
	}
}

// The generated file must be parseable Go.
func TestGoOutputParses(t *testing.T) {
	src, err := Go(&schema.Table{
		Name: "snapshot_2024",
		Fields: []schema.Field{
			{Name: "id", Type: "Int", Nullable: false},
			{Name: "payload", Type: "Json", Nullable: true},
			{Name: "taken_on", Type: "Date", Nullable: true},
		},
	}, "generated")
	if err != nil {
		t.Fatalf("Go: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "generated.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
}
