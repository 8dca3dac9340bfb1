package main

import (
	"context"
	"fmt"
	"io"

	"github.com/nao1215/csvtable"
)

// runQuery loads table into an in-memory SQLite database and writes the
// result of the -query statement to w as TSV with a header row.
func runQuery(ctx context.Context, w io.Writer, c *config, table *csvtable.Table) error {
	name := csvtable.TableNameFromPath(c.input)
	db, err := csvtable.OpenSQLite(ctx, map[string]*csvtable.Table{name: table})
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, c.query)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}

	out := csvtable.NewWriter(w, '\t')
	if err := out.Write(columns); err != nil {
		return err
	}

	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			record[i] = sqlText(v)
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	return out.Flush()
}

// sqlText renders a scanned SQLite value.
func sqlText(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(value)
	default:
		return fmt.Sprint(value)
	}
}
