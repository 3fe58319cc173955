package recommend

// ============================================================================
// RECOMMEND TYPES: Column types, chart catalog entries, results
// ============================================================================
// ColumnType is computed on demand per column and never stored on the data.
// ChartDefinition values are immutable; the catalog is process-wide constant state.
// ============================================================================

// ColumnType is the semantic type of a column as inferred by Detect.
type ColumnType string

const (
	Temporal    ColumnType = "time"
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "category"
)

// ChartID identifies a catalog entry.
type ChartID string

const (
	Line    ChartID = "line"
	Bar     ChartID = "bar"
	Scatter ChartID = "scatter"
	Pie     ChartID = "pie"
	Area    ChartID = "area"
	Radar   ChartID = "radar"
	Heatmap ChartID = "heatmap"
)

// YKind is a requirement on the Y columns of a chart.
type YKind string

const (
	// YNumeric requires every Y column to be Numeric.
	YNumeric YKind = "numeric"
	// YMultiNumeric requires every Y column to be Numeric and at least two of them.
	YMultiNumeric YKind = "numeric_multi"
)

// Requirements are the structural preconditions of a chart.
type Requirements struct {
	X []ColumnType `json:"x"`
	Y []YKind      `json:"y"`
}

// AcceptsX reports whether t is in the accepted X set.
func (r Requirements) AcceptsX(t ColumnType) bool {
	for _, x := range r.X {
		if x == t {
			return true
		}
	}
	return false
}

func (r Requirements) hasY(k YKind) bool {
	for _, y := range r.Y {
		if y == k {
			return true
		}
	}
	return false
}

// ChartDefinition is one static catalog entry.
type ChartDefinition struct {
	ID          ChartID      `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
	Requires    Requirements `json:"requires"`
	Limitations string       `json:"limitations,omitempty"`
}

// Recommendation pairs an eligible chart with its justification.
type Recommendation struct {
	Chart  ChartDefinition `json:"chart"`
	Reason string          `json:"reason,omitempty"`
}

// Report is the full outcome of one recommendation request.
type Report struct {
	ID              string           `json:"id"`
	X               string           `json:"x"`
	XType           ColumnType       `json:"xType,omitempty"`
	Y               []string         `json:"y"`
	YTypes          []ColumnType     `json:"yTypes"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Charts returns the recommended chart ids in catalog order.
func (r Report) Charts() []ChartID {
	ids := make([]ChartID, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		ids[i] = rec.Chart.ID
	}
	return ids
}
