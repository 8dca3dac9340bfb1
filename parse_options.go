package csvtable

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// defaultSeparator separates fields when no separator is configured
const defaultSeparator = ','

// ParseOptions configure the parse functions and the row Reader.
// The zero value parses comma separated input without a header row.
type ParseOptions struct {
	// Separator is the field separator. Zero means ','.
	Separator rune
	// Header indicates that the first row holds column names.
	Header bool
	// Locale is the default locale for candidates without their own format.
	// language.Und selects invariant conventions.
	Locale language.Tag
	// BufferSize is the size of the character buffer in bytes. Zero means 4096.
	BufferSize int
	// EmptyAsNull stores empty cells of typed columns as nil instead of
	// failing their conversion. Only rows after the first are affected.
	EmptyAsNull bool
	// Logger receives debug messages. nil discards them.
	Logger *slog.Logger
}

// NewParseOptions creates default parse options
func NewParseOptions() ParseOptions {
	return ParseOptions{
		Separator:  defaultSeparator,
		BufferSize: defaultBufferSize,
		Locale:     language.Und,
	}
}

// WithSeparator sets the field separator
func (o ParseOptions) WithSeparator(sep rune) ParseOptions {
	o.Separator = sep
	return o
}

// WithHeader sets whether the first row holds column names
func (o ParseOptions) WithHeader(header bool) ParseOptions {
	o.Header = header
	return o
}

// WithLocale sets the default locale for typed parsing
func (o ParseOptions) WithLocale(locale language.Tag) ParseOptions {
	o.Locale = locale
	return o
}

// WithBufferSize sets the character buffer size in bytes
func (o ParseOptions) WithBufferSize(size int) ParseOptions {
	o.BufferSize = size
	return o
}

// WithEmptyAsNull sets whether empty cells of typed columns become nil
func (o ParseOptions) WithEmptyAsNull(emptyAsNull bool) ParseOptions {
	o.EmptyAsNull = emptyAsNull
	return o
}

// WithLogger sets the logger for debug output
func (o ParseOptions) WithLogger(logger *slog.Logger) ParseOptions {
	o.Logger = logger
	return o
}

// separator returns the configured separator or the default one
func (o ParseOptions) separator() rune {
	if o.Separator == 0 {
		return defaultSeparator
	}
	return o.Separator
}

// validate checks the options before a parse starts
func (o ParseOptions) validate() error {
	sep := o.separator()
	if !utf8.ValidRune(sep) || sep == utf8.RuneError {
		return fmt.Errorf("%w: %U", ErrInvalidSeparator, sep)
	}
	switch sep {
	case quoteChar, lineFeed, carriageReturn:
		return fmt.Errorf("%w: %q", ErrInvalidSeparator, sep)
	}
	return nil
}

// tableFormat returns the format used by candidates without their own
func (o ParseOptions) tableFormat() Format {
	return Format{Locale: o.Locale}
}

// logger returns the configured logger or one that discards everything
func (o ParseOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
