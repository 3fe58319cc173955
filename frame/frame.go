package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ============================================================================
// FRAME: Column-Oriented Dataset
// ============================================================================
// The recommendation engine never owns consumer data. It reads through the
// Dataset interface: named columns, equal length, unique names.
//
// Implementations:
//   Frame      : in-memory typed columns (CSV, XLSX, DuckDB, Arrow loaders)
//
// Columns are homogeneous in storage Kind. Nulls are tracked per cell and
// excluded from distinct counts.
// ============================================================================

// Common errors returned by the frame package.
var (
	// ErrLengthMismatch is returned when a column's length differs from the frame's.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrDuplicateColumn is returned when a column name is already taken.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrColumnNotFound is returned when a column name is not present.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyName is returned when a column has no name.
	ErrEmptyName = errors.New("column name is empty")
)

// Dataset provides read-only access to named columns sharing a row index.
// Implementations must be safe for concurrent reads.
type Dataset interface {
	// Len returns the number of rows.
	Len() int

	// Names returns the column names in declared order.
	Names() []string

	// Column returns the column with the given name.
	Column(name string) (*Column, bool)
}

// ============================================================================
// KIND: Storage type of a column
// ============================================================================

// Kind is the storage type of a column, as decided by the loader.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// MarshalText lets a Kind serialize as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsNumeric reports whether the storage is integer or floating-point.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// ============================================================================
// COLUMN
// ============================================================================

// Column is a named, typed, nullable vector. Only the slice matching Kind is populated.
type Column struct {
	name  string
	kind  Kind
	texts []string
	ints  []int64
	flts  []float64
	bools []bool
	times []time.Time
	nulls []bool // nil when the column has no nulls
}

// NewFloatColumn creates a float column. NaN and infinite values are stored
// as nulls.
func NewFloatColumn(name string, values []float64) *Column {
	c := &Column{name: name, kind: KindFloat, flts: values}
	for i, v := range values {
		if !isFinite(v) {
			c.setNull(i)
		}
	}
	return c
}

// NewIntColumn creates an integer column.
func NewIntColumn(name string, values []int64) *Column {
	return &Column{name: name, kind: KindInt, ints: values}
}

// NewTextColumn creates a text column.
func NewTextColumn(name string, values []string) *Column {
	return &Column{name: name, kind: KindText, texts: values}
}

// NewBoolColumn creates a boolean column.
func NewBoolColumn(name string, values []bool) *Column {
	return &Column{name: name, kind: KindBool, bools: values}
}

// NewTimeColumn creates a temporal column. Zero times are stored as nulls.
func NewTimeColumn(name string, values []time.Time) *Column {
	c := &Column{name: name, kind: KindTime, times: values}
	for i, v := range values {
		if v.IsZero() {
			c.setNull(i)
		}
	}
	return c
}

// WithNulls marks the given row positions as null and returns the column.
func (c *Column) WithNulls(rows ...int) *Column {
	for _, r := range rows {
		if r >= 0 && r < c.Len() {
			c.setNull(r)
		}
	}
	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *Column) setNull(i int) {
	if c.nulls == nil {
		c.nulls = make([]bool, c.Len())
	}
	c.nulls[i] = true
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the storage kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows, nulls included.
func (c *Column) Len() int {
	switch c.kind {
	case KindInt:
		return len(c.ints)
	case KindFloat:
		return len(c.flts)
	case KindBool:
		return len(c.bools)
	case KindTime:
		return len(c.times)
	default:
		return len(c.texts)
	}
}

// IsNull reports whether row i holds no value. Out-of-range rows are null.
func (c *Column) IsNull(i int) bool {
	if i < 0 || i >= c.Len() {
		return true
	}
	return c.nulls != nil && c.nulls[i]
}

// NullCount returns the number of null rows.
func (c *Column) NullCount() int {
	n := 0
	for _, null := range c.nulls {
		if null {
			n++
		}
	}
	return n
}

// Float returns row i as a float64. Temporal values are Unix seconds;
// booleans are 0/1; text is parsed. ok is false for nulls and unparsable text.
func (c *Column) Float(i int) (float64, bool) {
	if c.IsNull(i) {
		return 0, false
	}
	switch c.kind {
	case KindInt:
		return float64(c.ints[i]), true
	case KindFloat:
		return c.flts[i], true
	case KindBool:
		if c.bools[i] {
			return 1, true
		}
		return 0, true
	case KindTime:
		return float64(c.times[i].UnixNano()) / float64(time.Second), true
	default:
		f, err := strconv.ParseFloat(c.texts[i], 64)
		return f, err == nil
	}
}

// Time returns row i for temporal columns.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.kind != KindTime || c.IsNull(i) {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Label formats row i for display. Nulls render as the empty string.
func (c *Column) Label(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.kind {
	case KindInt:
		return strconv.FormatInt(c.ints[i], 10)
	case KindFloat:
		return strconv.FormatFloat(c.flts[i], 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.bools[i])
	case KindTime:
		return c.times[i].Format(time.RFC3339Nano)
	default:
		return c.texts[i]
	}
}

// Distinct returns the number of distinct non-null values.
// Computed on every call.
func (c *Column) Distinct() int {
	n := c.Len()
	switch c.kind {
	case KindInt:
		seen := make(map[int64]struct{}, n)
		for i, v := range c.ints {
			if !c.IsNull(i) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case KindFloat:
		seen := make(map[float64]struct{}, n)
		for i, v := range c.flts {
			if !c.IsNull(i) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case KindBool:
		seen := make(map[bool]struct{}, 2)
		for i, v := range c.bools {
			if !c.IsNull(i) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case KindTime:
		seen := make(map[int64]struct{}, n)
		for i, v := range c.times {
			if !c.IsNull(i) {
				seen[v.UnixNano()] = struct{}{}
			}
		}
		return len(seen)
	default:
		seen := make(map[string]struct{}, n)
		for i, v := range c.texts {
			if !c.IsNull(i) {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
}

// slice returns a copy of rows [0, n).
func (c *Column) slice(n int) *Column {
	out := &Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindInt:
		out.ints = append([]int64(nil), c.ints[:n]...)
	case KindFloat:
		out.flts = append([]float64(nil), c.flts[:n]...)
	case KindBool:
		out.bools = append([]bool(nil), c.bools[:n]...)
	case KindTime:
		out.times = append([]time.Time(nil), c.times[:n]...)
	default:
		out.texts = append([]string(nil), c.texts[:n]...)
	}
	if c.nulls != nil {
		out.nulls = append([]bool(nil), c.nulls[:n]...)
	}
	return out
}

// ============================================================================
// FRAME: in-memory Dataset
// ============================================================================

// Frame is an ordered set of equal-length columns with unique names.
type Frame struct {
	order   []string
	columns map[string]*Column
	rows    int
}

// New creates a Frame from columns, enforcing the Dataset invariants.
func New(columns ...*Column) (*Frame, error) {
	f := &Frame{columns: make(map[string]*Column, len(columns))}
	for _, c := range columns {
		if err := f.Add(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MustNew is New for static fixtures; it panics on invalid input.
func MustNew(columns ...*Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// Add appends a column. The first column fixes the row count.
func (f *Frame) Add(c *Column) error {
	if c == nil || c.name == "" {
		return ErrEmptyName
	}
	if f.columns == nil {
		f.columns = make(map[string]*Column)
	}
	if _, exists := f.columns[c.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
	}
	if len(f.order) > 0 && c.Len() != f.rows {
		return fmt.Errorf("%w: %q has %d rows, frame has %d", ErrLengthMismatch, c.name, c.Len(), f.rows)
	}
	if len(f.order) == 0 {
		f.rows = c.Len()
	}
	f.order = append(f.order, c.name)
	f.columns[c.name] = c
	return nil
}

// Len returns the row count.
func (f *Frame) Len() int { return f.rows }

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.order...)
}

// Column looks up a column by name.
func (f *Frame) Column(name string) (*Column, bool) {
	c, ok := f.columns[name]
	return c, ok
}

// Head returns a new Frame with at most n rows. n <= 0 returns f unchanged.
func (f *Frame) Head(n int) *Frame {
	if n <= 0 || n >= f.rows {
		return f
	}
	out := &Frame{columns: make(map[string]*Column, len(f.order)), rows: n}
	for _, name := range f.order {
		out.order = append(out.order, name)
		out.columns[name] = f.columns[name].slice(n)
	}
	return out
}
