package recommend

import "github.com/spektr-org/logviz/frame"

// selection holds the per-call classification the matcher works from.
type selection struct {
	xType      ColumnType // empty when X is absent
	xDistinct  int
	yTypes     []ColumnType
	allNumeric bool
	isMultiY   bool
	yCount     int
}

func classifySelection(ds frame.Dataset, x string, ys []string) selection {
	sel := selection{
		yTypes:     make([]ColumnType, len(ys)),
		allNumeric: true,
		isMultiY:   len(ys) > 1,
		yCount:     len(ys),
	}

	if t, ok := Detect(ds, x); ok {
		sel.xType = t
	}
	for i, y := range ys {
		t, _ := Detect(ds, y)
		sel.yTypes[i] = t
		if t != Numeric {
			sel.allNumeric = false
		}
	}

	// Only pie needs the X cardinality, and only for categorical X.
	if sel.xType == Categorical && !sel.isMultiY {
		col, _ := ds.Column(x)
		sel.xDistinct = col.Distinct()
	}
	return sel
}

// ValidCharts returns the ids of every catalog chart whose requirements the
// selection satisfies, in catalog order. Empty X or Y yields an empty list.
func ValidCharts(ds frame.Dataset, x string, ys []string) []ChartID {
	if x == "" || len(ys) == 0 {
		return []ChartID{}
	}

	sel := classifySelection(ds, x, ys)
	valid := make([]ChartID, 0, len(catalog))
	for _, def := range catalog {
		if sel.eligible(def) {
			valid = append(valid, def.ID)
		}
	}
	return valid
}

// eligible applies the chart-specific exclusions, then the generic X/Y match.
func (s selection) eligible(def ChartDefinition) bool {
	if s.excluded(def.ID) {
		return false
	}

	matchX := s.xType != "" && def.Requires.AcceptsX(s.xType)

	var matchY bool
	switch {
	case def.Requires.hasY(YMultiNumeric):
		matchY = s.allNumeric && s.isMultiY
	case def.Requires.hasY(YNumeric):
		matchY = s.allNumeric
	default:
		matchY = false
	}

	return matchX && matchY
}

// excluded holds the hard disqualifiers that apply regardless of type matching.
func (s selection) excluded(id ChartID) bool {
	switch id {
	case Pie:
		return s.isMultiY || s.xType != Categorical || s.xDistinct > maxPieSlices
	case Radar, Heatmap:
		return !s.isMultiY || s.yCount < 2
	}
	return false
}
