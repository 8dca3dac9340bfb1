package csvtable

import (
	"errors"
	"io"
	"strings"
)

// Parse reads CSV data from r and returns a table whose cells are all strings.
//
// When opts.Header is set the first row names the columns; blank and
// duplicate names are replaced with "Column<k>". Rows wider than the table
// add synthetic columns and shorter rows are kept as they are.
//
// An input without any row returns a nil table and a nil error.
// r is not closed.
func Parse(r io.Reader, opts ParseOptions) (*Table, error) {
	return parse(r, "", nil, nil, opts)
}

// ParseString parses CSV data held in a string. See Parse.
func ParseString(data string, opts ParseOptions) (*Table, error) {
	return Parse(strings.NewReader(data), opts)
}

// ParseTyped reads CSV data from r and converts the cells of every column
// to the first candidate that accepts the column's value in the first data
// row. Columns no candidate accepts stay strings.
//
// The column types are never revised after the first data row: a later cell
// that does not convert aborts the parse with a *ConversionError and no
// table is returned.
//
// An input without any row returns a nil table and a nil error.
// r is not closed.
func ParseTyped(r io.Reader, candidates []Candidate, opts ParseOptions) (*Table, error) {
	engine, err := newTypeEngine(candidates, opts)
	if err != nil {
		return nil, err
	}
	return parse(r, "", nil, engine, opts)
}

// ParseStringTyped parses and converts CSV data held in a string. See ParseTyped.
func ParseStringTyped(data string, candidates []Candidate, opts ParseOptions) (*Table, error) {
	return ParseTyped(strings.NewReader(data), candidates, opts)
}

// parse runs one parse over r. release is handed to the character source
// and runs on every exit path.
func parse(r io.Reader, path string, release func() error, engine *typeEngine, opts ParseOptions) (table *Table, err error) {
	if r == nil {
		if release != nil {
			_ = release()
		}
		return nil, ErrNilReader
	}

	src := newCharSource(r, opts.BufferSize, release)
	defer func() {
		if closeErr := src.close(); closeErr != nil && err == nil {
			table = nil
			err = newErrorContext("close", path).Error(closeErr)
		}
	}()

	if err := opts.validate(); err != nil {
		return nil, err
	}

	a := &assembler{
		tok:    newTokenizer(src, opts.separator()),
		engine: engine,
		opts:   opts,
		path:   path,
	}
	return a.assemble()
}

// assembler drives the tokenizer and accumulates rows into a table.
type assembler struct {
	tok    *tokenizer
	engine *typeEngine
	opts   ParseOptions
	path   string
}

// nextRow reads the next row and wraps read failures.
func (a *assembler) nextRow() (Row, error) {
	row, err := a.tok.nextRow()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, newErrorContext("read", a.path).Error(err)
	}
	return row, err
}

// assemble builds the table.
func (a *assembler) assemble() (*Table, error) {
	logger := a.opts.logger()

	row, err := a.nextRow()
	if errors.Is(err, io.EOF) {
		logger.Debug("input holds no rows", "path", a.path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t := newTable()
	if a.opts.Header {
		for _, h := range row {
			t.addHeaderColumn(h)
		}
		row, err = a.nextRow()
	}

	rowNum := 0
	for ; err == nil; row, err = a.nextRow() {
		rowNum++
		if added := t.growTo(len(row)); added > 0 && rowNum > 1 {
			logger.Debug("row widened the table", "row", rowNum, "added", added, "columns", t.NumColumns())
		}

		cells, convErr := a.cells(t, row, rowNum)
		if convErr != nil {
			return nil, convErr
		}
		t.appendRow(cells)
	}
	if !errors.Is(err, io.EOF) {
		return nil, err
	}

	logger.Debug("table assembled", "path", a.path, "columns", t.NumColumns(), "rows", t.NumRows())
	return t, nil
}

// cells converts one data row. rowNum is 1-based.
func (a *assembler) cells(t *Table, row Row, rowNum int) ([]any, error) {
	if a.engine == nil {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		return cells, nil
	}
	if rowNum == 1 {
		a.engine.discover(t, row)
	}
	return a.engine.convertRow(t, row, rowNum)
}
