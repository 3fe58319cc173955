package chart

import "github.com/spektr-org/logviz/recommend"

// ============================================================================
// CHART TYPES: Library-neutral, render-ready chart data
// ============================================================================
// Exactly one data layout is populated per chart type:
//   line, bar, area   → Categories + Series[].Data (one point per row)
//   scatter           → Series[].Points (x, y pairs)
//   pie               → Categories + Series[0].Data (one slice per category)
//   radar             → Indicators + Series[].Data (one value per indicator)
//   heatmap           → Heatmap
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  recommend.ChartID `json:"chartType"`
	Title      string            `json:"title"`
	XAxis      string            `json:"xAxis,omitempty"`
	YAxis      string            `json:"yAxis,omitempty"`
	Categories []string          `json:"categories,omitempty"`
	Series     []ChartSeries     `json:"series"`
	Indicators []Indicator       `json:"indicators,omitempty"`
	Heatmap    *HeatmapData      `json:"heatmap,omitempty"`
	Colors     []string          `json:"colors,omitempty"`
	ShowLegend bool              `json:"showLegend"`
	ShowGrid   bool              `json:"showGrid"`
	Reason     string            `json:"reason,omitempty"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Data   []ChartPoint `json:"data,omitempty"`
	Points []XYPoint    `json:"points,omitempty"`
	Color  string       `json:"color,omitempty"`
}

// ChartPoint represents a single labelled data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// XYPoint is one scatter observation.
type XYPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Indicator is one radar axis.
type Indicator struct {
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

// HeatmapData holds a dense grid of X categories by Y metrics.
type HeatmapData struct {
	XLabels []string   `json:"xLabels"`
	YLabels []string   `json:"yLabels"`
	Cells   []HeatCell `json:"cells"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
}

// HeatCell is the value at (X, Y), indices into XLabels and YLabels.
type HeatCell struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}
