package chart

import (
	"math"
	"sort"
	"strings"

	"github.com/spektr-org/logviz/frame"
)

// ============================================================================
// AGGREGATORS: Grouping by X category, aggregation and sorting
// ============================================================================
// Groups hold row indices into the dataset. Null X rows belong to no group;
// null Y cells are skipped by every aggregation.
// ============================================================================

// Aggregations accepted by Options.Aggregation.
const (
	AggSum   = "sum"
	AggAvg   = "avg"
	AggCount = "count"
	AggMax   = "max"
	AggMin   = "min"
)

// group is the set of rows sharing one X label.
type group struct {
	Label string
	Rows  []int
}

// groupBySingle groups rows by X label in first-seen order.
func groupBySingle(x *frame.Column) []group {
	index := make(map[string]int)
	var groups []group

	for i := 0; i < x.Len(); i++ {
		if x.IsNull(i) {
			continue
		}
		key := x.Label(i)
		pos, exists := index[key]
		if !exists {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, group{Label: key})
		}
		groups[pos].Rows = append(groups[pos].Rows, i)
	}
	return groups
}

// aggregate reduces the non-null values of col at rows. Unknown aggregations sum.
func aggregate(col *frame.Column, rows []int, aggregation string) float64 {
	var total float64
	count := 0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		v, ok := col.Float(r)
		if !ok {
			continue
		}
		total += v
		count++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if aggregation == AggCount {
		return float64(count)
	}
	if count == 0 {
		return 0
	}

	switch aggregation {
	case AggAvg:
		return total / float64(count)
	case AggMax:
		return hi
	case AggMin:
		return lo
	default:
		return total
	}
}

// validAggregation reports whether a is a known aggregation name.
func validAggregation(a string) bool {
	switch a {
	case AggSum, AggAvg, AggCount, AggMax, AggMin:
		return true
	}
	return false
}

// Sort orders accepted by Options.SortBy.
const (
	SortNone      = ""
	SortValueDesc = "value_desc"
	SortValueAsc  = "value_asc"
	SortLabelAsc  = "label_asc"
	SortLabelDesc = "label_desc"
)

// sortGroups orders groups by the aggregated value of the first metric or by label.
// values[i] belongs to groups[i]; both slices are permuted together.
func sortGroups(groups []group, values []float64, sortBy string) {
	idx := make([]int, len(groups))
	for i := range idx {
		idx[i] = i
	}

	var less func(a, b int) bool
	switch sortBy {
	case SortValueDesc:
		less = func(a, b int) bool { return values[a] > values[b] }
	case SortValueAsc:
		less = func(a, b int) bool { return values[a] < values[b] }
	case SortLabelAsc:
		less = func(a, b int) bool { return strings.ToLower(groups[a].Label) < strings.ToLower(groups[b].Label) }
	case SortLabelDesc:
		less = func(a, b int) bool { return strings.ToLower(groups[a].Label) > strings.ToLower(groups[b].Label) }
	default:
		return // preserve grouping order
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })

	sortedGroups := make([]group, len(groups))
	sortedValues := make([]float64, len(values))
	for i, k := range idx {
		sortedGroups[i] = groups[k]
		sortedValues[i] = values[k]
	}
	copy(groups, sortedGroups)
	copy(values, sortedValues)
}

func validSort(s string) bool {
	switch s {
	case SortNone, SortValueDesc, SortValueAsc, SortLabelAsc, SortLabelDesc:
		return true
	}
	return false
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case AggSum:
		return "Total"
	case AggCount:
		return "Count"
	case AggAvg:
		return "Average"
	case AggMax:
		return "Maximum"
	case AggMin:
		return "Minimum"
	default:
		return "Value"
	}
}
