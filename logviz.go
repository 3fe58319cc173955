// Package logviz recommends chart types for tabular log data.
// Pick the X and Y columns, get the charts that fit.
//
// Usage:
//
//	import "github.com/spektr-org/logviz/recommend"
//
//	charts := recommend.ValidCharts(df, "Timestamp", []string{"Temp", "Pressure"})
//	reason := recommend.Explain(df, "Timestamp", []string{"Temp", "Pressure"}, charts[0])
//
// Datasets come from the frame and source packages (CSV, Parquet, Excel,
// DuckDB). The chart package turns a recommended chart into render-ready
// series; drawing is left to the host. The recommend core is pure and
// never calls an external service.
package logviz
