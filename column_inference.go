package csvtable

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

var (
	errEmptyValue      = errors.New("empty value")
	errInvalidNumber   = errors.New("invalid number")
	errInvalidBool     = errors.New("invalid boolean")
	errInvalidDateTime = errors.New("no date layout matches")
)

// conversion is a candidate bound to its resolved format.
type conversion struct {
	candidate Candidate
	format    Format
	symbols   localeSymbols
	layouts   []string
	location  *time.Location
}

// newConversion resolves the format of c. Candidates without their own
// format use tableFormat.
func newConversion(c Candidate, tableFormat Format) *conversion {
	format := tableFormat
	if c.Format != nil {
		format = *c.Format
	}
	symbols := symbolsFor(format.Locale)

	layouts := format.Layouts
	if len(layouts) == 0 {
		layouts = symbols.defaultLayouts()
	}
	location := format.Location
	if location == nil {
		location = time.UTC
	}

	return &conversion{
		candidate: c,
		format:    format,
		symbols:   symbols,
		layouts:   layouts,
		location:  location,
	}
}

// convert turns value into the candidate's type.
func (cv *conversion) convert(value string) (any, error) {
	switch cv.candidate.Type {
	case TypeString:
		return value, nil
	case TypeInt:
		return parseInt(value)
	case TypeDouble:
		return parseDouble(value, cv.symbols)
	case TypeBool:
		return parseBool(value)
	case TypeDateTime:
		return parseDateTime(value, cv.layouts, cv.location)
	case TypeCustom:
		return cv.candidate.Convert(value)
	default:
		return nil, fmt.Errorf("%w: unknown column type %d", ErrInvalidCandidate, int(cv.candidate.Type))
	}
}

// parseInt parses a base 10 integer with an optional sign.
func parseInt(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, errEmptyValue
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseDouble parses a decimal number written with the separators of sym.
// Group separators are only accepted in the integer part, in groups of three.
func parseDouble(value string, sym localeSymbols) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, errEmptyValue
	}

	var normalized strings.Builder
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		normalized.WriteByte(rest[0])
		rest = rest[1:]
	}

	mantissa, exponent := rest, ""
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		mantissa, exponent = rest[:i], rest[i:]
	}

	intPart, fracPart, hasDecimal := strings.Cut(mantissa, string(sym.decimal))
	digits, err := ungroup(intPart, sym)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, value)
	}
	if digits == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, value)
	}
	if !isDigits(fracPart) {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, value)
	}

	normalized.WriteString(digits)
	if hasDecimal {
		normalized.WriteByte('.')
		normalized.WriteString(fracPart)
	}
	normalized.WriteString(exponent)

	return strconv.ParseFloat(normalized.String(), 64)
}

// ungroup removes group separators from the integer part of a number.
func ungroup(intPart string, sym localeSymbols) (string, error) {
	if !strings.ContainsFunc(intPart, sym.isGroup) {
		if !isDigits(intPart) {
			return "", errInvalidNumber
		}
		return intPart, nil
	}

	groups := strings.FieldsFunc(intPart, sym.isGroup)
	// FieldsFunc hides empty groups, so count separators to catch "1,,000" or ",100"
	separators := 0
	for _, r := range intPart {
		if sym.isGroup(r) {
			separators++
		}
	}
	if separators != len(groups)-1 {
		return "", errInvalidNumber
	}
	for i, g := range groups {
		if !isDigits(g) {
			return "", errInvalidNumber
		}
		if i == 0 && len(g) > 3 {
			return "", errInvalidNumber
		}
		if i > 0 && len(g) != 3 {
			return "", errInvalidNumber
		}
	}
	return strings.Join(groups, ""), nil
}

// isDigits reports whether s only holds ASCII digits.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < firstDigitChar || s[i] > lastDigitChar {
			return false
		}
	}
	return true
}

// parseBool accepts "true" and "false" in any letter case.
func parseBool(value string) (bool, error) {
	s := strings.TrimSpace(value)
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	case s == "":
		return false, errEmptyValue
	default:
		return false, fmt.Errorf("%w: %q", errInvalidBool, value)
	}
}

// parseDateTime tries each layout in order.
func parseDateTime(value string, layouts []string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, errEmptyValue
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDateTime, value)
}

// typeEngine fixes column types from the first data row and converts all
// rows with them.
type typeEngine struct {
	candidates  []Candidate
	format      Format
	emptyAsNull bool
	logger      *slog.Logger
	// conversions holds one entry per column; nil keeps the raw text
	conversions []*conversion
}

// newTypeEngine validates the candidates and creates an engine.
func newTypeEngine(candidates []Candidate, opts ParseOptions) (*typeEngine, error) {
	for i, c := range candidates {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
	}
	return &typeEngine{
		candidates:  append([]Candidate(nil), candidates...),
		format:      opts.tableFormat(),
		emptyAsNull: opts.EmptyAsNull,
		logger:      opts.logger(),
	}, nil
}

// discover fixes the type of every column of t using the first data row.
// A column whose value no candidate accepts, or which has no value in
// firstRow, stays a string column. Discovery failures are not errors.
func (e *typeEngine) discover(t *Table, firstRow Row) {
	e.conversions = make([]*conversion, len(t.columns))

	for i := range t.columns {
		if i >= len(firstRow) {
			continue
		}
		value := firstRow[i]

		for _, c := range e.candidates {
			cv := newConversion(c, e.format)
			if _, err := cv.convert(value); err != nil {
				continue
			}
			if c.Type != TypeString {
				e.conversions[i] = cv
			}
			t.columns[i].Type = c.Type
			t.columns[i].TypeName = c.TypeName()
			t.columns[i].Format = cv.format
			break
		}

		e.logger.Debug("column type fixed",
			"column", t.columns[i].Name,
			"type", t.columns[i].TypeName,
			"sample", value,
		)
	}
}

// convertRow converts the cells of a data row. rowNum is 1-based.
func (e *typeEngine) convertRow(t *Table, row Row, rowNum int) ([]any, error) {
	cells := make([]any, len(row))
	for j, value := range row {
		var cv *conversion
		if j < len(e.conversions) {
			cv = e.conversions[j]
		}
		if cv == nil {
			cells[j] = value
			continue
		}
		if e.emptyAsNull && strings.TrimSpace(value) == "" {
			cells[j] = nil
			continue
		}

		converted, err := cv.convert(value)
		if err != nil {
			return nil, &ConversionError{
				Value:  value,
				Type:   t.columns[j].TypeName,
				Column: t.columns[j].Name,
				Row:    rowNum,
				Err:    err,
			}
		}
		cells[j] = converted
	}
	return cells, nil
}
