package parser

// ColumnType is the closed set of column types the grammar accepts.
type ColumnType int

const (
	// Int covers both INT and INTEGER spellings.
	Int ColumnType = iota
	// Json is a JSON document column.
	Json
	// Varchar is a variable-length text column.
	Varchar
	// Date is a calendar date column.
	Date
)

// String returns the canonical rendering of the type, as it appears in
// the schema model.
func (ct ColumnType) String() string {
	switch ct {
	case Int:
		return "Int"
	case Json:
		return "Json"
	case Varchar:
		return "Varchar"
	case Date:
		return "Date"
	default:
		return "Unknown"
	}
}

// Statement is the root syntax tree node for one CREATE TABLE statement.
// Columns holds the declarations in source order; the grammar requires at
// least one.
type Statement struct {
	TableName string
	Columns   []*ColumnDecl
}

// ColumnDecl is one parsed column declaration.
// Nullable is true unless the declaration carried NOT NULL.
// Pos is the byte offset of the column name in the source.
type ColumnDecl struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Pos      int
}
