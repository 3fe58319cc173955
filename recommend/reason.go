package recommend

import (
	"fmt"
	"strings"

	"github.com/spektr-org/logviz/frame"
)

const defaultReason = "Recommended chart"

// Explain returns a short human-readable justification for recommending chart
// for the selection. Charts without a template get a generic sentence.
func Explain(ds frame.Dataset, x string, ys []string, chart ChartID) string {
	switch chart {
	case Line:
		xType, _ := Detect(ds, x)
		return fmt.Sprintf("X axis (%s) is %s, suited to showing trends", x, TypeName(xType))
	case Scatter:
		return fmt.Sprintf("Suited to analysing the correlation between %s and %s", x, strings.Join(ys, ", "))
	case Pie:
		return fmt.Sprintf("%s has %d categories, suited to a pie chart", x, distinct(ds, x))
	case Radar:
		return fmt.Sprintf("%d metrics selected, allowing multi-dimensional comparison", len(ys))
	case Heatmap:
		return fmt.Sprintf("%d metrics suit a heatmap of their distribution", len(ys))
	default:
		return defaultReason
	}
}

// TypeName returns the display name of a column type.
func TypeName(t ColumnType) string {
	switch t {
	case Temporal:
		return "a time series"
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

func distinct(ds frame.Dataset, column string) int {
	if ds == nil {
		return 0
	}
	col, ok := ds.Column(column)
	if !ok {
		return 0
	}
	return col.Distinct()
}
