package csvtable

import (
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// arrowType returns the Arrow data type that stores values of ct.
// Custom columns are stored as their text form.
func (ct ColumnType) arrowType() arrow.DataType {
	switch ct {
	case TypeInt:
		return arrow.PrimitiveTypes.Int64
	case TypeDouble:
		return arrow.PrimitiveTypes.Float64
	case TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case TypeDateTime:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// ArrowSchema returns the Arrow schema matching the table's columns.
// Every field is nullable because rows may be short.
func (t *Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.columns))
	for i, c := range t.columns {
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     c.Type.arrowType(),
			Nullable: true,
		}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrowRecord copies the table into a single Arrow record. Absent and nil
// cells become nulls; datetimes are stored as UTC microseconds. The caller
// must Release the record. A nil mem uses the Go allocator.
func (t *Table) ToArrowRecord(mem memory.Allocator) (arrow.Record, error) {
	if t == nil || len(t.columns) == 0 {
		return nil, ErrEmptyTable
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	builder := array.NewRecordBuilder(mem, t.ArrowSchema())
	defer builder.Release()

	for col, c := range t.columns {
		field := builder.Field(col)
		for rowNum, cells := range t.rows {
			var value any
			if col < len(cells) {
				value = cells[col]
			}
			if err := appendArrowValue(field, c, value); err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", c.Name, rowNum+1, err)
			}
		}
	}
	return builder.NewRecord(), nil
}

// appendArrowValue appends one cell to the builder of its column.
func appendArrowValue(field array.Builder, c Column, value any) error {
	if value == nil {
		field.AppendNull()
		return nil
	}

	switch b := field.(type) {
	case *array.Int64Builder:
		v, ok := value.(int64)
		if !ok {
			return fmt.Errorf("%w: expected int64, got %T", ErrConversion, value)
		}
		b.Append(v)
	case *array.Float64Builder:
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%w: expected float64, got %T", ErrConversion, value)
		}
		b.Append(v)
	case *array.BooleanBuilder:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrConversion, value)
		}
		b.Append(v)
	case *array.TimestampBuilder:
		v, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("%w: expected time.Time, got %T", ErrConversion, value)
		}
		b.Append(arrow.Timestamp(v.UTC().UnixMicro()))
	case *array.StringBuilder:
		b.Append(formatCell(value))
	default:
		return fmt.Errorf("%w: no arrow builder for column type %s", ErrUnsupportedFormat, c.TypeName)
	}
	return nil
}

// WriteParquet writes the table to w as a Parquet file with one row group.
func WriteParquet(w io.Writer, t *Table) error {
	record, err := t.ToArrowRecord(memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer record.Release()

	// the parquet writer closes sinks that implement io.Closer; w stays open
	sink := struct{ io.Writer }{w}
	writer, err := pqarrow.NewFileWriter(record.Schema(), sink, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
