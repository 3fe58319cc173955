package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	f := MustNew(
		NewIntColumn("step", []int64{1, 2, 3, 4, 5}),
		NewTextColumn("phase", []string{"a", "b", "c", "d", "e"}),
		NewFloatColumn("load", []float64{2, math.NaN(), 4, math.NaN(), math.NaN()}),
		NewFloatColumn("blank", []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()}),
	)

	stats := Describe(f)
	require.Len(t, stats, 2)

	step := stats[0]
	assert.Equal(t, "step", step.Name)
	assert.Equal(t, 5, step.Count)
	assert.Equal(t, 3.0, step.Mean)
	assert.InDelta(t, math.Sqrt(2.5), step.Std, 1e-9)
	assert.Equal(t, 1.0, step.Min)
	assert.Equal(t, 5.0, step.Max)
	assert.Equal(t, 4.0, step.Range)

	load := stats[1]
	assert.Equal(t, "load", load.Name)
	assert.Equal(t, 2, load.Count)
	assert.Equal(t, 3.0, load.Mean)
	assert.InDelta(t, math.Sqrt2, load.Std, 1e-9)
}

func TestDescribeSingleValue(t *testing.T) {
	stats := Describe(MustNew(NewFloatColumn("v", []float64{7})))
	require.Len(t, stats, 1)
	assert.Equal(t, 0.0, stats[0].Std)
	assert.Equal(t, 0.0, stats[0].Range)
}

func TestCommonColumns(t *testing.T) {
	a := MustNew(
		NewIntColumn("ts", []int64{1}),
		NewIntColumn("temp", []int64{1}),
		NewIntColumn("mode", []int64{1}),
	)
	b := MustNew(
		NewIntColumn("mode", []int64{1, 2}),
		NewIntColumn("ts", []int64{1, 2}),
		NewIntColumn("flow", []int64{1, 2}),
	)

	assert.Equal(t, []string{"mode", "ts"}, CommonColumns(a, b))
	assert.Equal(t, []string{"mode"}, CommonColumns(a, b, "ts"))
	assert.Empty(t, CommonColumns(a, MustNew()))
}

func TestNearest(t *testing.T) {
	f := MustNew(
		NewFloatColumn("ts", []float64{0, 1.5, math.NaN(), 3, 4.5}),
		NewTextColumn("note", []string{"a", "b", "c", "d", "e"}),
	)

	row, ok := Nearest(f, "ts", 2.9)
	require.True(t, ok)
	assert.Equal(t, 3, row)

	row, ok = Nearest(f, "ts", 2.25)
	require.True(t, ok)
	assert.Equal(t, 1, row, "ties resolve to the earliest row")

	_, ok = Nearest(f, "note", 1)
	assert.False(t, ok, "text without numbers has no nearest row")

	_, ok = Nearest(f, "missing", 1)
	assert.False(t, ok)
}
