package ui

import (
	"strings"

	"github.com/mizuleo/tstruct/internal/schema"
)

// RenderSchema renders the schema model as an aligned field listing under
// the table name.
func RenderSchema(t *schema.Table) string {
	nameWidth, typeWidth := 0, 0
	for _, f := range t.Fields {
		if len(f.Name) > nameWidth {
			nameWidth = len(f.Name)
		}
		if len(f.Type) > typeWidth {
			typeWidth = len(f.Type)
		}
	}

	var rows []string
	for _, f := range t.Fields {
		row := "  " + padRight(f.Name, nameWidth+2) + Primary(padRight(f.Type, typeWidth+2))
		if !f.Nullable {
			row += Warning("not null")
		}
		rows = append(rows, strings.TrimRight(row, " "))
	}

	return Section(t.Name, strings.Join(rows, "\n"))
}

// padRight pads a string to the right with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
