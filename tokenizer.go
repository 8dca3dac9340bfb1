package csvtable

import (
	"errors"
	"io"
	"strings"
)

const (
	// quoteChar opens and closes quoted fields
	quoteChar = '"'
	// spaceChar is trimmed in front of field content
	spaceChar = ' '
	// lineFeed terminates a row
	lineFeed = '\n'
	// carriageReturn terminates a row, alone or followed by lineFeed
	carriageReturn = '\r'
)

// Row represents one logical record as a slice of raw string fields.
// A Row holding a single empty field is a valid row; the end of input is
// reported as io.EOF instead of an empty Row.
type Row []string

// equal compare row.
func (r Row) equal(r2 Row) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// tokenizer splits the characters of a charSource into rows and fields.
type tokenizer struct {
	src *charSource
	sep rune
	// eol is set when the last field ended the row
	eol bool
}

// newTokenizer creates a tokenizer reading from src.
func newTokenizer(src *charSource, sep rune) *tokenizer {
	return &tokenizer{src: src, sep: sep}
}

// nextRow returns the next row. io.EOF is returned when no field could be
// read before the end of the stream.
func (t *tokenizer) nextRow() (Row, error) {
	var row Row
	for {
		field, ok, err := t.nextField()
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(row) == 0 {
				return nil, io.EOF
			}
			return row, nil
		}
		row = append(row, field)
	}
}

// nextField scans one field. ok is false when there is no further field in
// the current row or in the stream.
func (t *tokenizer) nextField() (field string, ok bool, err error) {
	if t.eol {
		// previous field was the last one of its row
		t.eol = false
		return "", false, nil
	}

	quoted := false
	predata := true
	postdata := false
	var item strings.Builder

	for {
		c, err := t.src.next()
		if errors.Is(err, io.EOF) {
			if item.Len() > 0 {
				return item.String(), true, nil
			}
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}

		if (postdata || !quoted) && c == t.sep {
			return item.String(), true, nil
		}

		if (predata || postdata || !quoted) && (c == lineFeed || c == carriageReturn) {
			t.eol = true
			if c == carriageReturn {
				if err := t.skipLineFeed(); err != nil {
					return "", false, err
				}
			}
			return item.String(), true, nil
		}

		switch {
		case predata && c == spaceChar:
			continue
		case predata && c == quoteChar:
			quoted = true
			predata = false
		case predata:
			predata = false
			item.WriteRune(c)
		case postdata:
			// characters between the closing quote and the separator are dropped
		case quoted && c == quoteChar:
			next, err := t.src.peek()
			if err != nil && !errors.Is(err, io.EOF) {
				return "", false, err
			}
			if err == nil && next == quoteChar {
				_, _ = t.src.next()
				item.WriteRune(quoteChar)
			} else {
				postdata = true
			}
		default:
			item.WriteRune(c)
		}
	}
}

// skipLineFeed consumes a line feed directly following a carriage return.
func (t *tokenizer) skipLineFeed() error {
	next, err := t.src.peek()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if next == lineFeed {
		_, err = t.src.next()
	}
	return err
}
