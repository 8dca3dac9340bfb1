package csvtable

import (
	"errors"
	"io"
	"unicode/utf8"
)

const (
	// defaultBufferSize is the default size of the character source buffer in bytes
	defaultBufferSize = 4096
	// minBufferSize keeps room for at least one complete UTF-8 sequence
	minBufferSize = utf8.UTFMax
	// maxEmptyReads is how many (0, nil) reads are tolerated before giving up
	maxEmptyReads = 100
)

// utf8BOM is the byte order mark some editors put in front of UTF-8 text
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charSource is a buffered UTF-8 character source. It owns a fixed-size
// buffer and refills it from src when the unread part cannot hold a whole rune.
// A charSource belongs to exactly one tokenizer and is not safe for concurrent use.
type charSource struct {
	src     io.Reader
	buf     []byte
	pos     int
	end     int
	readErr error
	started bool
	release func() error
}

// newCharSource creates a character source reading from r with a buffer of size bytes.
// release, when non-nil, is called once by close.
func newCharSource(r io.Reader, size int, release func() error) *charSource {
	if size < minBufferSize {
		size = defaultBufferSize
	}
	return &charSource{
		src:     r,
		buf:     make([]byte, size),
		release: release,
	}
}

// fill moves the unread tail to the front of the buffer and reads more bytes.
// It returns false when nothing more can be read.
func (s *charSource) fill() bool {
	if s.readErr != nil {
		return false
	}
	n := copy(s.buf, s.buf[s.pos:s.end])
	s.pos, s.end = 0, n

	for range maxEmptyReads {
		m, err := s.src.Read(s.buf[s.end:])
		s.end += m
		if err != nil {
			s.readErr = err
			return m > 0
		}
		if m > 0 {
			return true
		}
	}
	s.readErr = io.ErrNoProgress
	return false
}

// ensure makes sure the buffer holds a complete rune at the cursor, if the
// stream still has one.
func (s *charSource) ensure() error {
	for !utf8.FullRune(s.buf[s.pos:s.end]) {
		if !s.fill() {
			break
		}
	}
	if !s.started {
		s.started = true
		for s.end-s.pos < len(utf8BOM) && s.fill() {
		}
		if s.end-s.pos >= len(utf8BOM) && string(s.buf[s.pos:s.pos+len(utf8BOM)]) == string(utf8BOM) {
			s.pos += len(utf8BOM)
			return s.ensure()
		}
	}
	if s.pos < s.end {
		return nil
	}
	if s.readErr == nil || errors.Is(s.readErr, io.EOF) {
		return io.EOF
	}
	return s.readErr
}

// peek returns the next character without consuming it.
// io.EOF is returned at end of stream.
func (s *charSource) peek() (rune, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}
	r, _ := utf8.DecodeRune(s.buf[s.pos:s.end])
	return r, nil
}

// next consumes and returns the next character.
// io.EOF is returned at end of stream.
func (s *charSource) next() (rune, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(s.buf[s.pos:s.end])
	s.pos += size
	return r, nil
}

// close runs the release hook once and drops the buffer.
func (s *charSource) close() error {
	s.buf = nil
	s.pos, s.end = 0, 0
	if s.readErr == nil {
		s.readErr = io.EOF
	}
	if s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}
