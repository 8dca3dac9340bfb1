package csvtable

import (
	"errors"
	"io"
	"iter"
)

// Reader reads CSV rows one at a time without building a table.
// It is useful for inputs too large to materialize. A Reader is not safe
// for concurrent use.
type Reader struct {
	src    *charSource
	tok    *tokenizer
	header Row
	closed bool
}

// NewReader creates a Reader over r. When opts.Header is set the first row
// is consumed immediately and made available through Header.
func NewReader(r io.Reader, opts ParseOptions) (*Reader, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	src := newCharSource(r, opts.BufferSize, nil)
	reader := &Reader{
		src: src,
		tok: newTokenizer(src, opts.separator()),
	}

	if opts.Header {
		header, err := reader.tok.nextRow()
		if err != nil && !errors.Is(err, io.EOF) {
			_ = src.close()
			return nil, newErrorContext("read header", "").Error(err)
		}
		reader.header = header
	}
	return reader, nil
}

// Header returns the header row, or nil when the options did not ask for
// one or the input was empty.
func (r *Reader) Header() Row {
	return r.header
}

// Read returns the next row. io.EOF is returned once the input is exhausted.
func (r *Reader) Read() (Row, error) {
	if r.closed {
		return nil, io.EOF
	}
	row, err := r.tok.nextRow()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, newErrorContext("read", "").Error(err)
	}
	return row, err
}

// All returns an iterator over the remaining rows. Iteration stops at the
// end of input or after yielding the first error.
func (r *Reader) All() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the buffer. The underlying io.Reader is not closed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.close()
}
