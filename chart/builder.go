// Package chart turns an eligible chart selection into library-neutral,
// render-ready chart data. It does not draw anything.
package chart

import (
	"fmt"
	"strings"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/recommend"
)

// ============================================================================
// CHART BUILDER: Produces ChartConfig from a dataset and an X/Y selection
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// radarHeadroom scales the largest plotted value into the radar indicator max.
const radarHeadroom = 1.2

// Options tune how grouped charts (pie, radar, heatmap) aggregate Y per X category.
type Options struct {
	Title       string `schema:"title"`
	Aggregation string `schema:"agg"`  // sum, avg, count, max, min; default per chart
	SortBy      string `schema:"sort"` // value_desc, value_asc, label_asc, label_desc
}

// DefaultAggregation is the aggregation used when Options.Aggregation is empty.
// Pie slices are shares of a whole; radar and heatmap compare typical levels.
func DefaultAggregation(id recommend.ChartID) string {
	if id == recommend.Pie {
		return AggSum
	}
	return AggAvg
}

// Build produces a ChartConfig for chart over the selection. The chart must be
// one ValidCharts returns for the selection.
func Build(ds frame.Dataset, x string, ys []string, id recommend.ChartID, opts Options) (*ChartConfig, error) {
	def, ok := recommend.Lookup(id)
	if !ok {
		return nil, errors.Newf(errors.ErrTypeValidation, "unsupported chart type %q", id).
			WithSuggestion("Run 'logviz catalog' to list chart types")
	}
	if ds == nil {
		return nil, errors.New(errors.ErrTypeDataset, "no dataset loaded")
	}
	if opts.Aggregation != "" && !validAggregation(opts.Aggregation) {
		return nil, errors.Newf(errors.ErrTypeValidation, "unsupported aggregation %q", opts.Aggregation).
			WithSuggestion("Use one of sum, avg, count, max, min")
	}
	if !validSort(opts.SortBy) {
		return nil, errors.Newf(errors.ErrTypeValidation, "unsupported sort %q", opts.SortBy)
	}

	xCol, yCols, err := resolve(ds, x, ys)
	if err != nil {
		return nil, err
	}

	valid := recommend.ValidCharts(ds, x, ys)
	if !contains(valid, id) {
		return nil, errors.Newf(errors.ErrTypeValidation, "%s is not suitable for %s against %s",
			def.Name, x, strings.Join(ys, ", ")).
			WithSuggestion(fmt.Sprintf("Suitable charts: %v", valid))
	}

	agg := opts.Aggregation
	if agg == "" {
		agg = DefaultAggregation(id)
	}

	config := &ChartConfig{
		ChartType:  id,
		Title:      opts.Title,
		XAxis:      x,
		YAxis:      strings.Join(ys, ", "),
		ShowLegend: true,
		ShowGrid:   id != recommend.Pie && id != recommend.Radar,
		Reason:     recommend.Explain(ds, x, ys, id),
	}
	if config.Title == "" {
		config.Title = defaultTitle(def, x, ys)
	}

	switch id {
	case recommend.Scatter:
		config.Series = buildScatter(xCol, yCols)
	case recommend.Pie:
		config.YAxis = LabelForAggregation(agg) + " of " + ys[0]
		buildPie(config, xCol, yCols[0], agg, opts.SortBy)
	case recommend.Radar:
		buildRadar(config, xCol, yCols, agg, opts.SortBy)
	case recommend.Heatmap:
		buildHeatmap(config, xCol, yCols, agg, opts.SortBy)
	default:
		config.Categories, config.Series = buildRowSeries(xCol, yCols)
	}

	if config.Colors == nil {
		config.Colors = assignColors(len(config.Series))
	}
	for i := range config.Series {
		if config.Series[i].Color == "" {
			config.Series[i].Color = defaultColors[i%len(defaultColors)]
		}
	}
	return config, nil
}

func resolve(ds frame.Dataset, x string, ys []string) (*frame.Column, []*frame.Column, error) {
	if x == "" || len(ys) == 0 {
		return nil, nil, errors.New(errors.ErrTypeValidation, "select one X column and at least one Y column")
	}
	xCol, ok := ds.Column(x)
	if !ok {
		return nil, nil, errors.NewColumnError(x, ds.Names())
	}
	yCols := make([]*frame.Column, len(ys))
	for i, y := range ys {
		col, ok := ds.Column(y)
		if !ok {
			return nil, nil, errors.NewColumnError(y, ds.Names())
		}
		yCols[i] = col
	}
	return xCol, yCols, nil
}

func defaultTitle(def recommend.ChartDefinition, x string, ys []string) string {
	return fmt.Sprintf("%s: %s by %s", def.Name, strings.Join(ys, ", "), x)
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

// buildRowSeries emits one point per row with a non-null X, one series per Y.
// Null Y cells are left out of their series.
func buildRowSeries(x *frame.Column, ys []*frame.Column) ([]string, []ChartSeries) {
	categories := make([]string, 0, x.Len())
	series := make([]ChartSeries, len(ys))
	for j, y := range ys {
		series[j] = ChartSeries{Name: y.Name(), Data: make([]ChartPoint, 0, x.Len())}
	}

	for i := 0; i < x.Len(); i++ {
		if x.IsNull(i) {
			continue
		}
		label := x.Label(i)
		categories = append(categories, label)
		for j, y := range ys {
			if v, ok := y.Float(i); ok {
				series[j].Data = append(series[j].Data, ChartPoint{Label: label, Value: v})
			}
		}
	}
	return categories, series
}

func buildScatter(x *frame.Column, ys []*frame.Column) []ChartSeries {
	series := make([]ChartSeries, len(ys))
	for j, y := range ys {
		points := make([]XYPoint, 0, x.Len())
		for i := 0; i < x.Len(); i++ {
			xv, ok := x.Float(i)
			if !ok {
				continue
			}
			yv, ok := y.Float(i)
			if !ok {
				continue
			}
			points = append(points, XYPoint{X: xv, Y: yv})
		}
		series[j] = ChartSeries{Name: y.Name(), Points: points}
	}
	return series
}

func buildPie(config *ChartConfig, x, y *frame.Column, agg, sortBy string) {
	groups := groupBySingle(x)
	values := make([]float64, len(groups))
	for i, g := range groups {
		values[i] = aggregate(y, g.Rows, agg)
	}
	sortGroups(groups, values, sortBy)

	points := make([]ChartPoint, len(groups))
	config.Categories = make([]string, len(groups))
	for i, g := range groups {
		config.Categories[i] = g.Label
		points[i] = ChartPoint{Label: g.Label, Value: values[i]}
	}
	config.Series = []ChartSeries{{Name: y.Name(), Data: points}}
	config.Colors = assignColors(len(groups))
}

// groupedValues aggregates every Y per X group. values[j][i] is Y j in group i.
// Groups are sorted by the first Y.
func groupedValues(x *frame.Column, ys []*frame.Column, agg, sortBy string) ([]group, [][]float64) {
	groups := groupBySingle(x)
	order := make([]float64, len(groups))
	for i, g := range groups {
		order[i] = aggregate(ys[0], g.Rows, agg)
	}
	sortGroups(groups, order, sortBy)

	values := make([][]float64, len(ys))
	for j, y := range ys {
		values[j] = make([]float64, len(groups))
		for i, g := range groups {
			values[j][i] = aggregate(y, g.Rows, agg)
		}
	}
	return groups, values
}

func buildRadar(config *ChartConfig, x *frame.Column, ys []*frame.Column, agg, sortBy string) {
	groups, values := groupedValues(x, ys, agg, sortBy)

	peak := 0.0
	first := true
	for _, row := range values {
		for _, v := range row {
			if first || v > peak {
				peak, first = v, false
			}
		}
	}
	limit := peak * radarHeadroom
	if limit <= 0 {
		limit = 1
	}

	config.Indicators = make([]Indicator, len(groups))
	config.Categories = make([]string, len(groups))
	for i, g := range groups {
		config.Indicators[i] = Indicator{Name: g.Label, Max: limit}
		config.Categories[i] = g.Label
	}

	config.Series = make([]ChartSeries, len(ys))
	for j, y := range ys {
		points := make([]ChartPoint, len(groups))
		for i, g := range groups {
			points[i] = ChartPoint{Label: g.Label, Value: values[j][i]}
		}
		config.Series[j] = ChartSeries{Name: y.Name(), Data: points}
	}
}

func buildHeatmap(config *ChartConfig, x *frame.Column, ys []*frame.Column, agg, sortBy string) {
	groups, values := groupedValues(x, ys, agg, sortBy)

	data := &HeatmapData{
		XLabels: make([]string, len(groups)),
		YLabels: make([]string, len(ys)),
		Cells:   make([]HeatCell, 0, len(groups)*len(ys)),
	}
	for i, g := range groups {
		data.XLabels[i] = g.Label
	}
	for j, y := range ys {
		data.YLabels[j] = y.Name()
	}

	for i := range groups {
		for j := range ys {
			v := values[j][i]
			if len(data.Cells) == 0 || v < data.Min {
				data.Min = v
			}
			if len(data.Cells) == 0 || v > data.Max {
				data.Max = v
			}
			data.Cells = append(data.Cells, HeatCell{X: i, Y: j, Value: v})
		}
	}

	config.Heatmap = data
	config.Series = []ChartSeries{}
	config.ShowLegend = false
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func contains(ids []recommend.ChartID, id recommend.ChartID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
