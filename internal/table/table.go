// Package table renders query results as left-aligned text columns.
package table

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// NullWidth is the minimum width of a column holding a null cell, enough for
// the "null" marker.
const NullWidth = 4

const nullMarker = "null"

// Widths returns the display width of every column: the longest of the header
// and all cells, with null cells counting as NullWidth.
func Widths(columns []string, rows [][]sql.NullString) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range rows {
		for i := 0; i < len(columns) && i < len(row); i++ {
			n := NullWidth
			if row[i].Valid {
				n = utf8.RuneCountInString(row[i].String)
			}
			if n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// Format writes the header line and one line per row to w, each cell padded
// to its column width and followed by " | ". Nothing is written for an empty
// result. Rows are only read. It returns the number of rows written.
func Format(w io.Writer, columns []string, rows [][]sql.NullString) int {
	if len(rows) == 0 {
		return 0
	}
	widths := Widths(columns, rows)

	var b strings.Builder
	for i, c := range columns {
		fmt.Fprintf(&b, "%-*s | ", widths[i], c)
	}
	b.WriteByte('\n')
	for _, row := range rows {
		for i := range columns {
			cell := nullMarker
			if i < len(row) && row[i].Valid {
				cell = row[i].String
			}
			fmt.Fprintf(&b, "%-*s | ", widths[i], cell)
		}
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
	return len(rows)
}
