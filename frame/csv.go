package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// CSV READER: Parses CSV rows into typed columns
// ============================================================================
// Consumer reads the bytes from wherever they live (file, upload, S3).
// Storage kind per column is inferred from all non-null cells:
//   int → float → time → text
// A column whose cells are all null becomes a float column of nulls.
// ============================================================================

// ReadCSV parses CSV data with a header row into a Frame.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return FromRows(headers, rows)
}

// FromRows builds a Frame from a header and string cells, inferring kinds.
// Short rows are padded with nulls.
func FromRows(headers []string, rows [][]string) (*Frame, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("no columns in header")
	}

	f := &Frame{columns: make(map[string]*Column, len(headers))}
	cells := make([]string, len(rows))
	for idx, header := range headers {
		for i, row := range rows {
			if idx < len(row) {
				cells[i] = strings.TrimSpace(row[idx])
			} else {
				cells[i] = ""
			}
		}
		if err := f.Add(InferColumn(strings.TrimSpace(header), cells)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// InferColumn converts raw cells into the narrowest kind that fits every non-null cell.
func InferColumn(name string, cells []string) *Column {
	var nulls []int
	nonNull := 0
	isInt, isFloat, isTime := true, true, true

	for i, v := range cells {
		if isNullCell(v) {
			nulls = append(nulls, i)
			continue
		}
		nonNull++
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isTime {
			if _, ok := parseTime(v); !ok {
				isTime = false
			}
		}
	}

	n := len(cells)
	switch {
	case nonNull == 0:
		return NewFloatColumn(name, make([]float64, n)).WithNulls(nulls...)
	case isInt && len(nulls) == 0:
		values := make([]int64, n)
		for i, v := range cells {
			values[i], _ = strconv.ParseInt(v, 10, 64)
		}
		return NewIntColumn(name, values)
	case isFloat:
		// Integers with gaps become floats, matching dataframe semantics.
		values := make([]float64, n)
		for i, v := range cells {
			if !isNullCell(v) {
				values[i], _ = strconv.ParseFloat(v, 64)
			}
		}
		return NewFloatColumn(name, values).WithNulls(nulls...)
	case isTime:
		values := make([]time.Time, n)
		for i, v := range cells {
			if !isNullCell(v) {
				values[i], _ = parseTime(v)
			}
		}
		return NewTimeColumn(name, values).WithNulls(nulls...)
	default:
		values := make([]string, n)
		copy(values, cells)
		return NewTextColumn(name, values).WithNulls(nulls...)
	}
}

func isNullCell(v string) bool {
	switch v {
	case "", "null", "NULL", "NaN", "nan", "N/A", "n/a":
		return true
	}
	return false
}

var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
