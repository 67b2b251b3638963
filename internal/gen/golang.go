// Package gen renders a schema model into target-language source. Only a
// Go back end exists today; the schema model is the contract for adding
// more.
package gen

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/mizuleo/tstruct/internal/schema"
	"github.com/mizuleo/tstruct/internal/strutil"
	"github.com/mizuleo/tstruct/internal/tserr"
)

// goTypes maps the schema model's canonical type names to Go types.
// Nullable fields use the pointer form so NULL survives a round trip.
var goTypes = map[string]string{
	"Int":     "int64",
	"Varchar": "string",
	"Json":    "json.RawMessage",
	"Date":    "time.Time",
}

// goImports lists the imports a generated type may need, keyed by the
// schema type that pulls them in.
var goImports = map[string]string{
	"Json": "encoding/json",
	"Date": "time",
}

// Go renders the table as a Go source file declaring one struct, and runs
// the result through go/format. pkg is the package name for the generated
// file.
func Go(table *schema.Table, pkg string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by tstruct; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	writeImports(&buf, table)
	writeStruct(&buf, table)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrGenTemplate, err, "generated source failed to format").
			WithTable(table.Name)
	}
	return src, nil
}

func writeImports(buf *bytes.Buffer, table *schema.Table) {
	seen := map[string]bool{}
	var imports []string
	for _, f := range table.Fields {
		if imp, ok := goImports[f.Type]; ok && !seen[imp] {
			seen[imp] = true
			imports = append(imports, imp)
		}
	}

	switch len(imports) {
	case 0:
	case 1:
		fmt.Fprintf(buf, "import %q\n\n", imports[0])
	default:
		buf.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(buf, "\t%q\n", imp)
		}
		buf.WriteString(")\n\n")
	}
}

func writeStruct(buf *bytes.Buffer, table *schema.Table) {
	name := strutil.ExportedGoName(table.Name)

	fmt.Fprintf(buf, "// %s is the row type for the %q table.\n", name, table.Name)
	fmt.Fprintf(buf, "type %s struct {\n", name)
	for _, f := range table.Fields {
		fmt.Fprintf(buf, "\t%s %s `db:%q json:%q`\n",
			strutil.ExportedGoName(f.Name), fieldGoType(f), f.Name, jsonTag(f))
	}
	buf.WriteString("}\n")
}

// fieldGoType returns the Go type for one field; nullable fields become
// pointers, except Json whose RawMessage already has a nil state.
func fieldGoType(f schema.Field) string {
	base, ok := goTypes[f.Type]
	if !ok {
		base = "string"
	}
	if f.Nullable && f.Type != "Json" {
		return "*" + base
	}
	return base
}

func jsonTag(f schema.Field) string {
	if f.Nullable {
		return f.Name + ",omitempty"
	}
	return f.Name
}
