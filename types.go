package csvtable

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Character validation constants
const (
	// firstDigitChar represents the first numeric character
	firstDigitChar = '0'
	// lastDigitChar represents the last numeric character
	lastDigitChar = '9'
	// firstLowerChar represents the first lowercase letter
	firstLowerChar = 'a'
	// lastLowerChar represents the last lowercase letter
	lastLowerChar = 'z'
	// firstUpperChar represents the first uppercase letter
	firstUpperChar = 'A'
	// lastUpperChar represents the last uppercase letter
	lastUpperChar = 'Z'
	// underscoreChar represents the underscore character
	underscoreChar = '_'
)

// ColumnType is the conversion strategy fixed for a column.
type ColumnType int

const (
	// TypeString keeps the raw cell text
	TypeString ColumnType = iota
	// TypeInt converts cells to int64
	TypeInt
	// TypeDouble converts cells to float64
	TypeDouble
	// TypeBool converts cells to bool
	TypeBool
	// TypeDateTime converts cells to time.Time
	TypeDateTime
	// TypeCustom converts cells with a caller supplied Converter
	TypeCustom
)

const (
	// sqlTypeText is the SQL TEXT type string
	sqlTypeText = "TEXT"
	// sqlTypeInteger is the SQL INTEGER type string
	sqlTypeInteger = "INTEGER"
	// sqlTypeReal is the SQL REAL type string
	sqlTypeReal = "REAL"
)

// String returns the name of the column type
func (ct ColumnType) String() string {
	switch ct {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeDateTime:
		return "datetime"
	case TypeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// sqlType returns the SQLite column type used to store values of this type
func (ct ColumnType) sqlType() string {
	switch ct {
	case TypeInt, TypeBool:
		return sqlTypeInteger
	case TypeDouble:
		return sqlTypeReal
	default:
		// SQLite stores datetime as TEXT in ISO8601 format
		return sqlTypeText
	}
}

// Converter turns the text of a cell into a typed value.
type Converter func(value string) (any, error)

// Format is the formatting rule applied when converting a cell.
// The zero value parses with invariant rules.
type Format struct {
	// Locale selects decimal and group separators and the default date layouts.
	Locale language.Tag
	// Layouts are time layouts tried in order for TypeDateTime. Empty means locale defaults.
	Layouts []string
	// Location is used for layouts without a zone. nil means UTC.
	Location *time.Location
}

// NewFormat creates a format for the given locale.
func NewFormat(locale language.Tag) *Format {
	return &Format{Locale: locale}
}

// WithLayouts returns a copy of the format that parses dates with layouts.
func (f Format) WithLayouts(layouts ...string) *Format {
	f.Layouts = append([]string(nil), layouts...)
	return &f
}

// WithLocation returns a copy of the format that interprets zoneless dates in loc.
func (f Format) WithLocation(loc *time.Location) *Format {
	f.Location = loc
	return &f
}

// Candidate is one entry of the ordered candidate type list used for column
// type discovery.
type Candidate struct {
	// Type is the conversion strategy.
	Type ColumnType
	// Format overrides the table default format when non-nil.
	Format *Format
	// Name labels custom candidates in errors and schemas.
	Name string
	// Convert is required for TypeCustom and ignored otherwise.
	Convert Converter
}

// StringCandidate matches every value and keeps it as text.
func StringCandidate() Candidate {
	return Candidate{Type: TypeString}
}

// IntCandidate matches base 10 integers that fit in int64.
func IntCandidate() Candidate {
	return Candidate{Type: TypeInt}
}

// DoubleCandidate matches decimal numbers.
func DoubleCandidate() Candidate {
	return Candidate{Type: TypeDouble}
}

// BoolCandidate matches "true" and "false" in any letter case.
func BoolCandidate() Candidate {
	return Candidate{Type: TypeBool}
}

// DateTimeCandidate matches dates and times. Without layouts the locale
// defaults are used.
func DateTimeCandidate(layouts ...string) Candidate {
	c := Candidate{Type: TypeDateTime}
	if len(layouts) > 0 {
		c.Format = Format{}.WithLayouts(layouts...)
	}
	return c
}

// CustomCandidate matches every value convert accepts.
func CustomCandidate(name string, convert Converter) Candidate {
	return Candidate{Type: TypeCustom, Name: name, Convert: convert}
}

// WithFormat returns a copy of the candidate using format.
func (c Candidate) WithFormat(format *Format) Candidate {
	c.Format = format
	return c
}

// TypeName returns the name used for the candidate in schemas and errors.
func (c Candidate) TypeName() string {
	if c.Type == TypeCustom && c.Name != "" {
		return c.Name
	}
	return c.Type.String()
}

// validate checks that the candidate can be used for conversion.
func (c Candidate) validate() error {
	switch c.Type {
	case TypeString, TypeInt, TypeDouble, TypeBool, TypeDateTime:
		return nil
	case TypeCustom:
		if c.Convert == nil {
			return fmt.Errorf("%w: custom candidate %q has no converter", ErrInvalidCandidate, c.Name)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown column type %d", ErrInvalidCandidate, int(c.Type))
	}
}

// TableName represents a table name with validation
type TableName struct {
	value string
}

// NewTableName creates a new TableName with validation
func NewTableName(name string) TableName {
	// Basic validation - table name cannot be empty
	if strings.TrimSpace(name) == "" {
		return TableName{value: "table"}
	}
	return TableName{value: strings.TrimSpace(name)}
}

// String returns the string representation of TableName
func (tn TableName) String() string {
	return tn.value
}

// Sanitize returns a sanitized version of the table name
func (tn TableName) Sanitize() TableName {
	return TableName{value: sanitizeIdentifier(tn.value, "table")}
}

// sanitizeIdentifier keeps letters, digits and underscores so the result
// can be used as an SQL identifier.
func sanitizeIdentifier(name, fallback string) string {
	// Replace spaces and invalid characters with underscores
	result := strings.ReplaceAll(name, " ", "_")
	result = strings.ReplaceAll(result, "-", "_")
	result = strings.ReplaceAll(result, ".", "_")

	var sanitized strings.Builder
	for _, r := range result {
		if (r >= firstLowerChar && r <= lastLowerChar) ||
			(r >= firstUpperChar && r <= lastUpperChar) ||
			(r >= firstDigitChar && r <= lastDigitChar) ||
			r == underscoreChar {
			sanitized.WriteRune(r)
		}
	}

	finalResult := sanitized.String()

	// Ensure it doesn't start with a number
	if len(finalResult) > 0 && finalResult[0] >= firstDigitChar && finalResult[0] <= lastDigitChar {
		finalResult = fallback + "_" + finalResult
	}

	if finalResult == "" {
		finalResult = fallback
	}

	return finalResult
}
