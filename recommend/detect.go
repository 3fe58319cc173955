package recommend

import (
	"strings"

	"github.com/spektr-org/logviz/frame"
)

// ============================================================================
// COLUMN TYPE DETECTION
// ============================================================================
// Rules, first match wins:
//   1. Temporal storage                           → Temporal
//   2. Numeric storage:
//      a. unique < 10 and unique/total < 0.05     → Categorical (encoded category)
//      b. name in {timestamp, time, t, ts}        → Temporal
//      c. otherwise                               → Numeric
//   3. Anything else                              → Categorical
//
// The cardinality rule runs before the name rule, so a low-cardinality column
// named "time" comes out Categorical.
// ============================================================================

const (
	maxCategoryCodes = 10
	maxCategoryRatio = 0.05
)

// temporalNames are the time axes produced by the upstream log parser.
var temporalNames = map[string]bool{
	"timestamp": true,
	"time":      true,
	"t":         true,
	"ts":        true,
}

// Detect classifies the named column. ok is false when the column does not exist.
func Detect(ds frame.Dataset, column string) (ColumnType, bool) {
	if ds == nil {
		return "", false
	}
	col, ok := ds.Column(column)
	if !ok {
		return "", false
	}
	return classify(col), true
}

func classify(col *frame.Column) ColumnType {
	switch {
	case col.Kind() == frame.KindTime:
		return Temporal

	case col.Kind().IsNumeric():
		if isEncodedCategory(col.Distinct(), col.Len()) {
			return Categorical
		}
		if temporalNames[strings.ToLower(col.Name())] {
			return Temporal
		}
		return Numeric

	default:
		return Categorical
	}
}

// isEncodedCategory reports whether a numeric column has so few distinct values
// relative to its length that it is more likely a category code.
// An empty column never qualifies.
func isEncodedCategory(unique, total int) bool {
	if total == 0 {
		return false
	}
	return unique < maxCategoryCodes && float64(unique)/float64(total) < maxCategoryRatio
}
