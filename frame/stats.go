package frame

import (
	"math"
	"sort"
)

// ============================================================================
// STATS: Summary statistics and cross-dataset helpers
// ============================================================================

// ColumnStats summarizes one numeric column. Std is the sample standard
// deviation and is NaN-free: a single value yields 0.
type ColumnStats struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Range float64 `json:"range"`
}

// Describe returns statistics for every numeric-storage column in declared order.
// Columns without a single non-null value are skipped.
func Describe(ds Dataset) []ColumnStats {
	var out []ColumnStats
	for _, name := range ds.Names() {
		col, ok := ds.Column(name)
		if !ok || !col.Kind().IsNumeric() {
			continue
		}
		if s, ok := describeColumn(col); ok {
			out = append(out, s)
		}
	}
	return out
}

func describeColumn(col *Column) (ColumnStats, bool) {
	s := ColumnStats{Name: col.Name(), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Float(i)
		if !ok {
			continue
		}
		s.Count++
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if s.Count == 0 {
		return ColumnStats{}, false
	}

	s.Mean = sum / float64(s.Count)
	s.Range = s.Max - s.Min

	if s.Count > 1 {
		var sq float64
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Float(i); ok {
				sq += (v - s.Mean) * (v - s.Mean)
			}
		}
		s.Std = math.Sqrt(sq / float64(s.Count-1))
	}
	return s, true
}

// CommonColumns returns the column names present in both datasets, sorted,
// minus any excluded names.
func CommonColumns(a, b Dataset, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	var common []string
	for _, name := range a.Names() {
		if skip[name] {
			continue
		}
		if _, ok := b.Column(name); ok {
			common = append(common, name)
		}
	}
	sort.Strings(common)
	return common
}

// Nearest returns the row whose value in the named column is closest to target.
// Ties resolve to the earliest row. Temporal columns compare in Unix seconds.
func Nearest(ds Dataset, column string, target float64) (int, bool) {
	col, ok := ds.Column(column)
	if !ok {
		return -1, false
	}

	best, bestDist := -1, math.Inf(1)
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Float(i)
		if !ok {
			continue
		}
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
