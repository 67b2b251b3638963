// Package schema holds the schema model produced from a parsed CREATE
// TABLE statement. The model is independent of the source syntax: it is
// what the code generators and the SQL renderer consume.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mizuleo/tstruct/internal/parser"
)

// Field describes one column of the schema model.
// Type is the canonical rendering of the column type (Int, Json, Varchar,
// Date). Nullable preserves the NOT NULL mapping from the declaration.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Table is the finished schema model: a table name plus its fields in
// left-to-right declaration order. It is immutable once returned from
// Build.
type Table struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Build folds the statement tree into a Table, appending one Field per
// column declaration in encounter order. It is pure and total: the
// grammar already guarantees structural validity, so nothing is validated
// here and no error is possible.
func Build(stmt *parser.Statement) *Table {
	t := &Table{
		Name:   stmt.TableName,
		Fields: make([]Field, 0, len(stmt.Columns)),
	}
	for _, col := range stmt.Columns {
		t.Fields = append(t.Fields, Field{
			Name:     col.Name,
			Type:     col.Type.String(),
			Nullable: col.Nullable,
		})
	}
	return t
}

// Checksum returns the hex SHA-256 of a canonical rendering of the table.
func (t *Table) Checksum() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('\n')
	for _, f := range t.Fields {
		fmt.Fprintf(&b, "%s:%s:%t\n", f.Name, f.Type, f.Nullable)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// SourceChecksum returns the hex SHA-256 of a raw DDL source text.
// The parse cache keys entries by this value.
func SourceChecksum(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
