package recommend

// maxPieSlices is the largest X cardinality a pie chart stays legible with.
const maxPieSlices = 8

// catalog is evaluated in this order; the order is the output order of ValidCharts.
var catalog = []ChartDefinition{
	{
		ID:          Line,
		Name:        "Line Chart",
		Icon:        "📈",
		Description: "Shows how values change over time or sequence",
		Requires:    Requirements{X: []ColumnType{Temporal, Categorical, Numeric}, Y: []YKind{YNumeric}},
	},
	{
		ID:          Bar,
		Name:        "Bar Chart",
		Icon:        "📊",
		Description: "Compares values across categories or points in time",
		Requires:    Requirements{X: []ColumnType{Categorical, Temporal}, Y: []YKind{YNumeric}},
	},
	{
		ID:          Scatter,
		Name:        "Scatter Plot",
		Icon:        "💠",
		Description: "Shows the correlation between two numeric variables",
		Requires:    Requirements{X: []ColumnType{Numeric, Temporal}, Y: []YKind{YNumeric}},
	},
	{
		ID:          Pie,
		Name:        "Pie Chart",
		Icon:        "🥧",
		Description: "Shows each part's share of the whole",
		Requires:    Requirements{X: []ColumnType{Categorical}, Y: []YKind{YNumeric}},
		Limitations: "At most 8 categories, single Y axis only",
	},
	{
		ID:          Area,
		Name:        "Area Chart",
		Icon:        "🏔️",
		Description: "Emphasizes cumulative magnitude and the size of changes",
		Requires:    Requirements{X: []ColumnType{Temporal, Numeric}, Y: []YKind{YNumeric}},
	},
	{
		ID:          Radar,
		Name:        "Radar Chart",
		Icon:        "🕸️",
		Description: "Compares overall performance across several dimensions",
		Requires:    Requirements{X: []ColumnType{Categorical}, Y: []YKind{YMultiNumeric}},
		Limitations: "Needs multiple Y metrics (at least 2)",
	},
	{
		ID:          Heatmap,
		Name:        "Heatmap",
		Icon:        "🔥",
		Description: "Shows distribution density or correlation of values",
		Requires:    Requirements{X: []ColumnType{Categorical, Temporal}, Y: []YKind{YMultiNumeric}},
		Limitations: "Needs multiple Y metrics",
	},
}

// Catalog returns a copy of the chart catalog in evaluation order.
func Catalog() []ChartDefinition {
	out := make([]ChartDefinition, len(catalog))
	for i, def := range catalog {
		out[i] = def.clone()
	}
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id ChartID) (ChartDefinition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def.clone(), true
		}
	}
	return ChartDefinition{}, false
}

// clone detaches the requirement slices so callers cannot mutate the catalog.
func (d ChartDefinition) clone() ChartDefinition {
	d.Requires.X = append([]ColumnType(nil), d.Requires.X...)
	d.Requires.Y = append([]YKind(nil), d.Requires.Y...)
	return d
}
