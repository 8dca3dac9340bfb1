package csvtable

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqliteDriverName is the name modernc.org/sqlite registers
const sqliteDriverName = "sqlite"

// OpenSQLite creates an in-memory SQLite database holding one table per
// entry of tables. Map keys are table names; they are sanitized into SQL
// identifiers. The pool is limited to one connection because every
// connection to ":memory:" opens a separate database.
func OpenSQLite(ctx context.Context, tables map[string]*Table) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := SaveToSQLite(ctx, db, name, tables[name]); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// SaveToSQLite creates a table called name in db and inserts every row of t
// in one transaction. Column types map to INTEGER, REAL and TEXT; datetimes
// are stored as RFC 3339 text and booleans as 0 or 1. Absent cells are NULL.
func SaveToSQLite(ctx context.Context, db *sql.DB, name string, t *Table) (err error) {
	if t == nil || t.NumColumns() == 0 {
		return ErrEmptyTable
	}
	tableName := NewTableName(name).Sanitize().String()
	errCtx := newErrorContext("save", "").withDetails("table: " + tableName)

	if _, err := db.ExecContext(ctx, createTableQuery(tableName, t.columns)); err != nil {
		return errCtx.Error(fmt.Errorf("failed to create table: %w", err))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errCtx.Error(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertQuery(tableName, t.columns))
	if err != nil {
		return errCtx.Error(fmt.Errorf("failed to prepare insert: %w", err))
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))
	for rowNum, cells := range t.rows {
		for i := range args {
			args[i] = nil
			if i < len(cells) {
				args[i] = sqliteValue(cells[i])
			}
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return errCtx.Error(fmt.Errorf("failed to insert row %d: %w", rowNum+1, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return errCtx.Error(fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

// quoteIdentifier quotes an SQL identifier, doubling embedded quotes
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// createTableQuery builds the CREATE TABLE statement for columns
func createTableQuery(tableName string, columns []Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdentifier(c.Name) + " " + c.Type.sqlType()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(tableName), strings.Join(defs, ", "))
}

// insertQuery builds a parameterized INSERT statement for columns
func insertQuery(tableName string, columns []Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteIdentifier(c.Name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(tableName), strings.Join(names, ", "), placeholders)
}

// sqliteValue maps a cell to a value the SQLite driver stores
func sqliteValue(v any) any {
	switch value := v.(type) {
	case nil, string, int64, float64:
		return value
	case bool:
		if value {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return value.Format(time.RFC3339Nano)
	default:
		return formatCell(value)
	}
}
