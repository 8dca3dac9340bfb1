package csvtable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var errWriterNoTarget = errors.New("csvtable: writer destination cannot be nil")

// Writer writes rows with standard quoting: fields holding the separator,
// a quote, a line break or a leading space are quoted and inner quotes are
// doubled. Every row, including the last one, ends with "\n".
type Writer struct {
	dst *bufio.Writer
	sep rune
	// UseCRLF terminates rows with "\r\n".
	UseCRLF bool
	err     error
}

// NewWriter creates a Writer using sep as field separator. Zero means ','.
func NewWriter(w io.Writer, sep rune) *Writer {
	if sep == 0 {
		sep = defaultSeparator
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
		sep: sep,
	}
}

// Write writes a single row.
func (w *Writer) Write(row []string) error {
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	for i, field := range row {
		if i > 0 {
			if _, err := w.dst.WriteRune(w.sep); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(field); err != nil {
			w.err = err
			return err
		}
	}

	terminator := "\n"
	if w.UseCRLF {
		terminator = "\r\n"
	}
	if _, err := w.dst.WriteString(terminator); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes rows and flushes, stopping at the first error.
func (w *Writer) WriteAll(rows [][]string) error {
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) writeField(field string) error {
	if !w.fieldNeedsQuote(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	_, err := w.dst.WriteString(quoted)
	return err
}

func (w *Writer) fieldNeedsQuote(field string) bool {
	if strings.HasPrefix(field, " ") {
		return true
	}
	return strings.ContainsFunc(field, func(r rune) bool {
		return r == w.sep || r == quoteChar || r == lineFeed || r == carriageReturn
	})
}

// WriteTable writes the header and every row of t. Typed values are
// formatted with invariant conventions; absent trailing cells are not written.
func WriteTable(w io.Writer, t *Table, sep rune) error {
	if t == nil || t.NumColumns() == 0 {
		return ErrEmptyTable
	}
	cw := NewWriter(w, sep)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, cells := range t.rows {
		row := make([]string, len(cells))
		for i, v := range cells {
			row[i] = formatCell(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// formatCell renders a typed cell as text.
func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
