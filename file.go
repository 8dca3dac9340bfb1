package csvtable

import (
	"fmt"
	"strings"
)

// ParseFile parses the CSV file at path. Files ending in .gz, .bz2, .xz or
// .zst are decompressed transparently. The file is closed before ParseFile
// returns, on success and on failure. See Parse.
func ParseFile(path string, opts ParseOptions) (*Table, error) {
	return parseFile(path, nil, opts)
}

// ParseFileTyped parses and converts the CSV file at path. See ParseTyped
// and ParseFile.
func ParseFileTyped(path string, candidates []Candidate, opts ParseOptions) (*Table, error) {
	engine, err := newTypeEngine(candidates, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(path, engine, opts)
}

func parseFile(path string, engine *typeEngine, opts ParseOptions) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, newErrorContext("open", path).withDetails("path cannot be empty").Error(nil)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	reader, cleanup, err := openFileReader(path)
	if err != nil {
		return nil, newErrorContext("open", path).Error(err)
	}
	return parse(reader, path, cleanup, engine, opts)
}

// WriteFile writes t to path in the format and compression of opts.
// path is used as given; DumpOptions.FileExtension returns the matching suffix.
func WriteFile(path string, t *Table, opts DumpOptions) (err error) {
	if t == nil || t.NumColumns() == 0 {
		return ErrEmptyTable
	}

	writer, cleanup, err := createFileWriter(path, opts.Compression)
	if err != nil {
		return newErrorContext("write", path).Error(err)
	}
	defer func() {
		if cleanupErr := cleanup(); cleanupErr != nil && err == nil {
			err = newErrorContext("write", path).Error(cleanupErr)
		}
	}()

	switch opts.Format {
	case OutputFormatCSV:
		err = WriteTable(writer, t, defaultSeparator)
	case OutputFormatTSV:
		err = WriteTable(writer, t, '\t')
	case OutputFormatXLSX:
		sheet := opts.Sheet
		if sheet == "" {
			sheet = defaultSheetName
		}
		err = WriteXLSX(writer, t, sheet)
	case OutputFormatParquet:
		err = WriteParquet(writer, t)
	default:
		err = fmt.Errorf("%w: %v", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return newErrorContext("write", path).Error(err)
	}
	return nil
}
