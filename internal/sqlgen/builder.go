// Package sqlgen renders a schema model back into normalized CREATE TABLE
// statements for a concrete SQL dialect. The rendered form drops the
// input grammar's trailing comma; it is what gets executed by apply and
// verified in tests.
package sqlgen

import (
	"strings"

	"github.com/lib/pq"

	"github.com/mizuleo/tstruct/internal/schema"
)

// Dialect represents a supported SQL database dialect.
type Dialect int

const (
	// Postgres represents PostgreSQL dialect.
	Postgres Dialect = iota
	// SQLite represents SQLite dialect.
	SQLite
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// ParseDialect maps a dialect name to its Dialect value.
func ParseDialect(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return Postgres, true
	case "sqlite", "sqlite3":
		return SQLite, true
	default:
		return 0, false
	}
}

// DetectDialect guesses the dialect from a database URL. Anything that is
// not a postgres URL is treated as a SQLite file path, matching how the
// apply command accepts plain paths.
func DetectDialect(databaseURL string) Dialect {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// columnSQLTypes maps the schema model's canonical type names to SQL
// column types per dialect.
var columnSQLTypes = map[Dialect]map[string]string{
	Postgres: {
		"Int":     "BIGINT",
		"Varchar": "VARCHAR",
		"Json":    "JSONB",
		"Date":    "DATE",
	},
	SQLite: {
		"Int":     "INTEGER",
		"Varchar": "TEXT",
		"Json":    "TEXT",
		"Date":    "TEXT",
	},
}

// Builder provides fluent SQL construction with dialect awareness.
type Builder struct {
	dialect Dialect
	buf     strings.Builder
}

// New creates a new Builder for the specified dialect.
func New(dialect Dialect) *Builder {
	return &Builder{
		dialect: dialect,
	}
}

// Dialect returns the dialect of this builder.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// CreateTable appends a full CREATE TABLE statement for the schema model,
// one column per line, no trailing comma.
func (b *Builder) CreateTable(t *schema.Table) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	b.buf.WriteString(QuoteIdent(b.dialect, t.Name))
	b.buf.WriteString(" (")
	for i, f := range t.Fields {
		if i > 0 {
			b.buf.WriteString(",")
		}
		b.buf.WriteString("\n  ")
		b.Column(f)
	}
	b.buf.WriteString("\n);")
	return b
}

// Column appends "<name> <type> [NOT NULL]" for one field.
func (b *Builder) Column(f schema.Field) *Builder {
	b.buf.WriteString(QuoteIdent(b.dialect, f.Name))
	b.buf.WriteString(" ")
	b.buf.WriteString(ColumnSQLType(b.dialect, f.Type))
	if !f.Nullable {
		b.buf.WriteString(" NOT NULL")
	}
	return b
}

// Raw appends raw SQL to the buffer without any modification.
func (b *Builder) Raw(sql string) *Builder {
	b.buf.WriteString(sql)
	return b
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// ----------------------------------------------------------------------------
// Standalone Helpers
// ----------------------------------------------------------------------------

// RenderCreateTable is the one-shot form of New(d).CreateTable(t).String().
func RenderCreateTable(d Dialect, t *schema.Table) string {
	return New(d).CreateTable(t).String()
}

// ColumnSQLType returns the SQL column type for a schema model type name.
// Unknown names pass through unchanged; the model's type set is closed,
// so this only happens with hand-built tables.
func ColumnSQLType(d Dialect, typeName string) string {
	if sqlType, ok := columnSQLTypes[d][typeName]; ok {
		return sqlType
	}
	return typeName
}

// QuoteIdent returns the identifier quoted according to the dialect.
// Both dialects use double quotes; Postgres goes through pq so quoting
// stays in lockstep with the driver.
func QuoteIdent(dialect Dialect, s string) string {
	if dialect == Postgres {
		return pq.QuoteIdentifier(s)
	}
	// SQLite: double quotes, escaped by doubling.
	escaped := strings.ReplaceAll(s, `"`, `""`)
	return `"` + escaped + `"`
}
