package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/logviz/chart"
	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/internal/server"
	"github.com/spektr-org/logviz/recommend"
)

// writeSensorCSV writes a 100-row parsed sensor log and returns its path.
func writeSensorCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Timestamp,Mode,Temp,Pressure\n")
	for i := range 100 {
		fmt.Fprintf(&b, "%d,%d,%g,%d\n", i, i%3, 20+0.5*float64(i), 1000+i)
	}
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(context.Background(), append([]string{"logviz"}, args...))
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)

	var defs []recommend.ChartDefinition
	require.NoError(t, sonic.UnmarshalString(out, &defs))
	assert.Len(t, defs, 7)

	out, err = run(t, "--format", "text", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Line Chart")
	assert.Contains(t, out, "At most 8 categories")
}

func TestDetectCommand(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "detect", "--file", path)
	require.NoError(t, err)

	var cols []map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &cols))
	require.Len(t, cols, 4)
	assert.Equal(t, "time", cols[0]["type"])
	assert.Equal(t, "int", cols[0]["kind"])
	assert.Equal(t, "category", cols[1]["type"])
	assert.Equal(t, "numeric", cols[2]["type"])
}

func TestDetectCommandSample(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "--sample", "10", "detect", "--file", path)
	require.NoError(t, err)

	var cols []map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &cols))
	assert.Equal(t, 10.0, cols[0]["distinct"])
}

func TestRecommendCommand(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "recommend", "--file", path, "--x", "Timestamp", "--y", "Temp", "--y", "Pressure")
	require.NoError(t, err)

	var report recommend.Report
	require.NoError(t, sonic.UnmarshalString(out, &report))
	assert.Equal(t, []recommend.ChartID{
		recommend.Line, recommend.Bar, recommend.Scatter, recommend.Area, recommend.Heatmap,
	}, report.Charts())
	assert.Equal(t, "2 metrics suit a heatmap of their distribution", report.Recommendations[4].Reason)

	out, err = run(t, "--format", "text", "recommend", "--file", path, "--x", "Mode", "--y", "Temp")
	require.NoError(t, err)
	assert.Contains(t, out, "X: Mode (category)")
	assert.Contains(t, out, "Pie Chart: Mode has 3 categories, suited to a pie chart")

	out, err = run(t, "recommend", "--file", path, "--x", "Mode", "--y", "Temp", "--explain=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "reason")

	out, err = run(t, "--format", "text", "recommend", "--file", path, "--x", "Voltage", "--y", "Temp")
	require.NoError(t, err)
	assert.Contains(t, out, "X: Voltage (not found)")
	assert.Contains(t, out, "No suitable chart type.")
}

func TestChartCommand(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "chart", "--file", path, "--x", "Mode", "--y", "Temp", "--type", "pie", "--agg", "count")
	require.NoError(t, err)

	var cc chart.ChartConfig
	require.NoError(t, sonic.UnmarshalString(out, &cc))
	assert.Equal(t, recommend.Pie, cc.ChartType)
	assert.Equal(t, []chart.ChartPoint{
		{Label: "0", Value: 34},
		{Label: "1", Value: 33},
		{Label: "2", Value: 33},
	}, cc.Series[0].Data)

	out, err = run(t, "--format", "text", "chart", "--file", path, "--x", "Mode", "--y", "Temp", "--type", "pie")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"Mode", "Total", "of", "Temp"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "1521.50"}, strings.Fields(lines[1]))

	out, err = run(t, "--format", "text", "chart", "--file", path, "--x", "Timestamp", "--y", "Temp", "--y", "Pressure", "--type", "line")
	require.NoError(t, err)
	lines = strings.Split(out, "\n")
	assert.Equal(t, []string{"Timestamp", "Temp", "Pressure"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "20.50", "1001"}, strings.Fields(lines[2]))
}

func TestChartCommandErrors(t *testing.T) {
	path := writeSensorCSV(t)

	_, err := run(t, "chart", "--file", path, "--x", "Timestamp", "--y", "Temp", "--type", "pie")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	_, err = run(t, "chart", "--file", path, "--x", "Timestamp", "--y", "Voltage", "--type", "line")
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), `Error: not_found: column "Voltage" not found`)
	assert.Contains(t, buf.String(), "  - Available columns: [Timestamp Mode Temp Pressure]")
}

func TestDescribeCommand(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "describe", "--file", path)
	require.NoError(t, err)

	var stats []frame.ColumnStats
	require.NoError(t, sonic.UnmarshalString(out, &stats))
	require.Len(t, stats, 4)
	assert.Equal(t, "Pressure", stats[3].Name)
	assert.Equal(t, 99.0, stats[3].Range)

	out, err = run(t, "--format", "text", "describe", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "Pressure")
}

func TestCompareCommand(t *testing.T) {
	left := writeSensorCSV(t)
	right := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(right, []byte("Timestamp,Temp,Humidity\n0,30,40\n1,32,41\n"), 0o644))

	out, err := run(t, "compare", "--file", left, "--with", right, "--exclude", "Timestamp")
	require.NoError(t, err)

	var cmp comparison
	require.NoError(t, sonic.UnmarshalString(out, &cmp))
	assert.Equal(t, []string{"Temp"}, cmp.Columns)
	require.Len(t, cmp.Left, 1)
	require.Len(t, cmp.Right, 1)
	assert.Equal(t, 31.0, cmp.Right[0].Mean)
}

func TestSnapshotCommand(t *testing.T) {
	path := writeSensorCSV(t)

	out, err := run(t, "snapshot", "--file", path, "--column", "Timestamp", "--value", "41.6")
	require.NoError(t, err)

	var snap server.Snapshot
	require.NoError(t, sonic.UnmarshalString(out, &snap))
	assert.Equal(t, 42, snap.Row)
	assert.Equal(t, "1042", snap.Values["Pressure"])

	_, err = run(t, "snapshot", "--file", path, "--column", "Voltage", "--value", "1")
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestInvalidFormatAndSource(t *testing.T) {
	_, err := run(t, "--format", "yaml", "catalog")
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	_, err = run(t, "detect", "--file", filepath.Join(t.TempDir(), "run.json"))
	assert.True(t, errors.IsType(err, errors.ErrTypeSource))

	_, err = run(t, "--log-level", "loud", "catalog")
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}
