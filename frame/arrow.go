package frame

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ============================================================================
// ARROW ADAPTER: Columnar batches in and out of Frame
// ============================================================================
// Arrow type IDs map onto storage kinds:
//   TIMESTAMP, DATE32, DATE64           → KindTime
//   INT8..INT64, UINT8..UINT32          → KindInt
//   UINT64, FLOAT16/32/64, DECIMAL      → KindFloat (NaN and ±Inf are null)
//   BOOL                                → KindBool
//   everything else                     → KindText (ValueStr)
// ============================================================================

// FromArrowRecord copies an Arrow record batch into a Frame.
func FromArrowRecord(rec arrow.Record) (*Frame, error) {
	f := &Frame{columns: make(map[string]*Column, int(rec.NumCols()))}
	for i := 0; i < int(rec.NumCols()); i++ {
		field := rec.Schema().Field(i)
		col, err := columnFromChunks(field, []arrow.Array{rec.Column(i)})
		if err != nil {
			return nil, err
		}
		if err := f.Add(col); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FromArrowTable copies a chunked Arrow table into a Frame.
func FromArrowTable(tbl arrow.Table) (*Frame, error) {
	f := &Frame{columns: make(map[string]*Column, int(tbl.NumCols()))}
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		out, err := columnFromChunks(col.Field(), col.Data().Chunks())
		if err != nil {
			return nil, err
		}
		if err := f.Add(out); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func kindForArrow(dt arrow.DataType) Kind {
	switch dt.ID() {
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return KindTime
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return KindInt
	case arrow.UINT64, arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64, arrow.DECIMAL128, arrow.DECIMAL256:
		return KindFloat
	case arrow.BOOL:
		return KindBool
	default:
		return KindText
	}
}

func columnFromChunks(field arrow.Field, chunks []arrow.Array) (*Column, error) {
	kind := kindForArrow(field.Type)
	col := &Column{name: field.Name, kind: kind}
	var nulls []int
	offset := 0

	for _, chunk := range chunks {
		for i := 0; i < chunk.Len(); i++ {
			row := offset + i
			if chunk.IsNull(i) {
				nulls = append(nulls, row)
				col.appendZero()
				continue
			}
			if err := col.appendArrow(chunk, i); err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", field.Name, row, err)
			}
		}
		offset += chunk.Len()
	}
	for row, v := range col.flts {
		if !isFinite(v) {
			nulls = append(nulls, row)
		}
	}
	return col.WithNulls(nulls...), nil
}

func (c *Column) appendZero() {
	switch c.kind {
	case KindInt:
		c.ints = append(c.ints, 0)
	case KindFloat:
		c.flts = append(c.flts, 0)
	case KindBool:
		c.bools = append(c.bools, false)
	case KindTime:
		c.times = append(c.times, time.Time{})
	default:
		c.texts = append(c.texts, "")
	}
}

func (c *Column) appendArrow(arr arrow.Array, i int) error {
	switch a := arr.(type) {
	case *array.Int8:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Int16:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Int32:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Int64:
		c.ints = append(c.ints, a.Value(i))
	case *array.Uint8:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Uint16:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Uint32:
		c.ints = append(c.ints, int64(a.Value(i)))
	case *array.Uint64:
		c.flts = append(c.flts, float64(a.Value(i)))
	case *array.Float32:
		c.flts = append(c.flts, float64(a.Value(i)))
	case *array.Float64:
		c.flts = append(c.flts, a.Value(i))
	case *array.Boolean:
		c.bools = append(c.bools, a.Value(i))
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		c.times = append(c.times, a.Value(i).ToTime(unit).UTC())
	case *array.Date32:
		c.times = append(c.times, a.Value(i).ToTime().UTC())
	case *array.Date64:
		c.times = append(c.times, a.Value(i).ToTime().UTC())
	default:
		// Float16, decimals and every text-like type go through the string form.
		s := arr.ValueStr(i)
		if c.kind == KindFloat {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			c.flts = append(c.flts, f)
			return nil
		}
		c.texts = append(c.texts, s)
	}
	return nil
}

// ToArrowRecord converts a Dataset into a single Arrow record batch.
// The caller must Release the record.
func ToArrowRecord(ds Dataset, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	names := ds.Names()
	fields := make([]arrow.Field, len(names))
	cols := make([]*Column, len(names))
	for i, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		cols[i] = col
		fields[i] = arrow.Field{Name: name, Type: arrowTypeFor(col.Kind()), Nullable: true}
	}

	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	for i, col := range cols {
		for row := 0; row < col.Len(); row++ {
			if col.IsNull(row) {
				b.Field(i).AppendNull()
				continue
			}
			switch fb := b.Field(i).(type) {
			case *array.Int64Builder:
				fb.Append(col.ints[row])
			case *array.Float64Builder:
				fb.Append(col.flts[row])
			case *array.BooleanBuilder:
				fb.Append(col.bools[row])
			case *array.TimestampBuilder:
				ts, err := arrow.TimestampFromTime(col.times[row], arrow.Microsecond)
				if err != nil {
					return nil, fmt.Errorf("column %q row %d: %w", col.name, row, err)
				}
				fb.Append(ts)
			case *array.StringBuilder:
				fb.Append(col.texts[row])
			}
		}
	}
	return b.NewRecord(), nil
}

func arrowTypeFor(k Kind) arrow.DataType {
	switch k {
	case KindInt:
		return arrow.PrimitiveTypes.Int64
	case KindFloat:
		return arrow.PrimitiveTypes.Float64
	case KindBool:
		return arrow.FixedWidthTypes.Boolean
	case KindTime:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	default:
		return arrow.BinaryTypes.String
	}
}
