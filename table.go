package csvtable

import (
	"path/filepath"
	"strconv"
	"strings"
)

// syntheticColumnPrefix names columns that have no usable header
const syntheticColumnPrefix = "Column"

// Column describes one column of a Table.
type Column struct {
	// Name is the header text or a synthetic "Column<k>" name.
	Name string
	// Type is the conversion strategy fixed for the column.
	Type ColumnType
	// TypeName is Type.String() or the name of a custom candidate.
	TypeName string
	// Format is the formatting rule fixed at discovery time.
	Format Format
}

// Table is a parsed CSV document. Cells hold string values for untyped
// parses and int64, float64, bool, time.Time, string or custom values for
// typed parses. Rows may be shorter than the column count; the missing
// trailing cells are absent.
type Table struct {
	columns []Column
	// names holds lower-cased column names for case-insensitive lookups
	names map[string]int
	rows  [][]any
}

// newTable creates an empty table.
func newTable() *Table {
	return &Table{names: make(map[string]int)}
}

// Columns returns a copy of the column definitions.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Name
	}
	return header
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns a copy of the cells of row i.
func (t *Table) Row(i int) []any {
	return append([]any(nil), t.rows[i]...)
}

// Rows returns all rows. The slices are owned by the table and must not be modified.
func (t *Table) Rows() [][]any {
	return t.rows
}

// Cell returns the value at row, col. ok is false when the cell is absent
// because the row is shorter than the table.
func (t *Table) Cell(row, col int) (value any, ok bool) {
	if row < 0 || row >= len(t.rows) || col < 0 {
		return nil, false
	}
	cells := t.rows[row]
	if col >= len(cells) {
		return nil, false
	}
	return cells[col], true
}

// ColumnIndex returns the index of the column called name, compared
// case-insensitively, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.names[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

// hasColumn reports whether a column called name exists.
func (t *Table) hasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// addColumn appends a string column.
func (t *Table) addColumn(name string) {
	t.names[strings.ToLower(name)] = len(t.columns)
	t.columns = append(t.columns, Column{
		Name:     name,
		Type:     TypeString,
		TypeName: TypeString.String(),
	})
}

// addHeaderColumn appends a column named after a header field. Blank and
// duplicate names are replaced with a synthetic name.
func (t *Table) addHeaderColumn(header string) {
	if header != "" && !t.hasColumn(header) {
		t.addColumn(header)
		return
	}
	t.addColumn(t.nextColumnHeader())
}

// growTo appends synthetic columns until the table has at least n columns.
// It returns the number of columns added.
func (t *Table) growTo(n int) int {
	added := 0
	for len(t.columns) < n {
		t.addColumn(t.nextColumnHeader())
		added++
	}
	return added
}

// nextColumnHeader returns the first "Column<k>" name not in use.
func (t *Table) nextColumnHeader() string {
	for c := 1; ; c++ {
		h := syntheticColumnPrefix + strconv.Itoa(c)
		if !t.hasColumn(h) {
			return h
		}
	}
}

// appendRow appends the cells of one row.
func (t *Table) appendRow(cells []any) {
	t.rows = append(t.rows, cells)
}

// TableNameFromPath derives an SQL table name from a file path: the
// directory, compression and format extensions are removed and the rest is
// sanitized. "/data/sales 2024.csv.gz" becomes "sales_2024".
func TableNameFromPath(path string) string {
	fileName := filepath.Base(path)
	// Remove compression extensions first
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	// Then remove the file type extension
	return NewTableName(strings.TrimSuffix(fileName, filepath.Ext(fileName))).Sanitize().String()
}
