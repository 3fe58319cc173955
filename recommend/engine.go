// Package recommend infers the semantic type of dataset columns and matches a
// fixed catalog of chart types against an X/Y column selection.
//
// The package functions (Detect, ValidCharts, Explain) are pure. Engine wraps
// them for hosts that want logging, metrics and a single Report per request.
package recommend

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/spektr-org/logviz/frame"
)

// Engine produces Reports. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	cfg *config
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	return &Engine{cfg: applyOptions(opts)}
}

// Recommend classifies the selection and returns every eligible chart with its reason.
func (e *Engine) Recommend(ds frame.Dataset, x string, ys []string) Report {
	report := Report{
		ID:              uuid.NewString(),
		X:               x,
		Y:               append([]string{}, ys...),
		YTypes:          make([]ColumnType, len(ys)),
		Recommendations: []Recommendation{},
	}

	unknown := 0
	if t, ok := Detect(ds, x); ok {
		report.XType = t
	} else if x != "" {
		unknown++
	}
	for i, y := range ys {
		t, ok := Detect(ds, y)
		if !ok {
			unknown++
		}
		report.YTypes[i] = t
	}

	for _, id := range ValidCharts(ds, x, ys) {
		def, _ := Lookup(id)
		rec := Recommendation{Chart: def}
		if e.cfg.Explain {
			rec.Reason = Explain(ds, x, ys, id)
		}
		report.Recommendations = append(report.Recommendations, rec)
	}

	e.cfg.Logger.Debug("recommendation computed",
		slog.String("id", report.ID),
		slog.String("x", x),
		slog.String("x_type", string(report.XType)),
		slog.Any("y", ys),
		slog.Int("unknown_columns", unknown),
		slog.Any("charts", report.Charts()))

	e.cfg.Metrics.observe(report, unknown)
	return report
}

// Columns classifies every column of the dataset in declared order.
func (e *Engine) Columns(ds frame.Dataset) []ColumnInfo {
	names := ds.Names()
	out := make([]ColumnInfo, 0, len(names))
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		out = append(out, ColumnInfo{
			Name:     name,
			Kind:     col.Kind(),
			Type:     classify(col),
			Distinct: col.Distinct(),
			Nulls:    col.NullCount(),
		})
	}
	return out
}

// ColumnInfo describes one column for column pickers.
type ColumnInfo struct {
	Name     string     `json:"name"`
	Kind     frame.Kind `json:"kind"`
	Type     ColumnType `json:"type"`
	Distinct int        `json:"distinct"`
	Nulls    int        `json:"nulls"`
}
