package source

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/marcboeker/go-duckdb"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
)

// OpenDuckDB opens a DuckDB database. An empty path opens an in-memory database.
func OpenDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to ping database")
	}

	return db, nil
}

// DuckDB runs query and copies the result set into a Frame. Column kinds come
// from the declared database types, so an all-NULL column keeps its type.
func DuckDB(ctx context.Context, db *sql.DB, query string) (*frame.Frame, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSource, "failed to run query %q", query)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to read column types")
	}

	builders := make([]*columnBuilder, len(types))
	for i, ct := range types {
		builders[i] = newColumnBuilder(ct.Name(), kindForDatabaseType(ct.DatabaseTypeName()))
	}

	values := make([]any, len(types))
	ptrs := make([]any, len(types))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to scan row")
		}
		for i, v := range values {
			builders[i].append(v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to iterate rows")
	}

	cols := make([]*frame.Column, len(builders))
	for i, b := range builders {
		cols[i] = b.build()
	}

	f, err := frame.New(cols...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDataset, "query result is not a valid dataset")
	}
	return f, nil
}

// kindForDatabaseType maps a DuckDB type name onto a storage kind.
// Integers wider than int64 are stored as floats. TIME (time of day) is
// kept as text.
func kindForDatabaseType(name string) frame.Kind {
	name = strings.ToUpper(name)
	switch {
	case strings.HasPrefix(name, "TIMESTAMP"), name == "DATE":
		return frame.KindTime
	case name == "TINYINT", name == "SMALLINT", name == "INTEGER", name == "BIGINT",
		name == "UTINYINT", name == "USMALLINT", name == "UINTEGER":
		return frame.KindInt
	case name == "UBIGINT", name == "HUGEINT", name == "UHUGEINT",
		name == "FLOAT", name == "REAL", name == "DOUBLE", strings.HasPrefix(name, "DECIMAL"):
		return frame.KindFloat
	case name == "BOOLEAN":
		return frame.KindBool
	default:
		return frame.KindText
	}
}

// columnBuilder accumulates scanned values of one result column.
type columnBuilder struct {
	name  string
	kind  frame.Kind
	ints  []int64
	flts  []float64
	bools []bool
	times []time.Time
	texts []string
	nulls []int
	rows  int
}

func newColumnBuilder(name string, kind frame.Kind) *columnBuilder {
	return &columnBuilder{name: name, kind: kind}
}

// append stores v, recording a null when v is nil or does not convert.
func (b *columnBuilder) append(v any) {
	row := b.rows
	b.rows++

	var ok bool
	switch b.kind {
	case frame.KindInt:
		var n int64
		n, ok = toInt(v)
		b.ints = append(b.ints, n)
	case frame.KindFloat:
		var f float64
		f, ok = toFloat(v)
		b.flts = append(b.flts, f)
	case frame.KindBool:
		var t bool
		t, ok = v.(bool)
		b.bools = append(b.bools, t)
	case frame.KindTime:
		var t time.Time
		t, ok = v.(time.Time)
		b.times = append(b.times, t)
	default:
		var s string
		s, ok = toText(v)
		b.texts = append(b.texts, s)
	}

	if !ok {
		b.nulls = append(b.nulls, row)
	}
}

func (b *columnBuilder) build() *frame.Column {
	var col *frame.Column
	switch b.kind {
	case frame.KindInt:
		col = frame.NewIntColumn(b.name, b.ints)
	case frame.KindFloat:
		col = frame.NewFloatColumn(b.name, b.flts)
	case frame.KindBool:
		col = frame.NewBoolColumn(b.name, b.bools)
	case frame.KindTime:
		col = frame.NewTimeColumn(b.name, b.times)
	default:
		col = frame.NewTextColumn(b.name, b.texts)
	}
	return col.WithNulls(b.nulls...)
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case duckdb.Decimal:
		return n.Float64(), true
	case uint64:
		return float64(n), true
	case *big.Int:
		if n == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return toIntAsFloat(v)
	}
}

func toIntAsFloat(v any) (float64, bool) {
	n, ok := toInt(v)
	return float64(n), ok
}

func toText(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return fmt.Sprint(v), true
	}
}
