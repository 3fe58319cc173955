package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCharts(t *testing.T) {
	df := sensorFrame()

	tests := []struct {
		name string
		x    string
		ys   []string
		want []ChartID
	}{
		{
			name: "categorical X single numeric Y",
			x:    "Mode",
			ys:   []string{"Temp"},
			want: []ChartID{Line, Bar, Pie},
		},
		{
			name: "temporal X two numeric Y",
			x:    "Timestamp",
			ys:   []string{"Temp", "Pressure"},
			want: []ChartID{Line, Bar, Scatter, Area, Heatmap},
		},
		{
			name: "temporal X single numeric Y",
			x:    "Timestamp",
			ys:   []string{"Temp"},
			want: []ChartID{Line, Bar, Scatter, Area},
		},
		{
			name: "categorical X two numeric Y",
			x:    "Mode",
			ys:   []string{"Temp", "Pressure"},
			want: []ChartID{Line, Bar, Radar, Heatmap},
		},
		{
			name: "numeric X",
			x:    "Temp",
			ys:   []string{"Pressure"},
			want: []ChartID{Line, Scatter, Area},
		},
		{
			name: "nine categories rules out pie",
			x:    "Phase",
			ys:   []string{"Temp"},
			want: []ChartID{Line, Bar},
		},
		{
			name: "eight categories still allows pie",
			x:    "Stage",
			ys:   []string{"Pressure"},
			want: []ChartID{Line, Bar, Pie},
		},
		{
			name: "categorical Y matches nothing",
			x:    "Timestamp",
			ys:   []string{"Temp", "Mode"},
			want: []ChartID{},
		},
		{
			name: "unknown X",
			x:    "Voltage",
			ys:   []string{"Temp"},
			want: []ChartID{},
		},
		{
			name: "unknown Y",
			x:    "Timestamp",
			ys:   []string{"Temp", "Voltage"},
			want: []ChartID{},
		},
		{
			name: "empty X",
			x:    "",
			ys:   []string{"Temp"},
			want: []ChartID{},
		},
		{
			name: "empty Y",
			x:    "Timestamp",
			ys:   nil,
			want: []ChartID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCharts(df, tt.x, tt.ys))
		})
	}
}

func TestValidChartsWallClock(t *testing.T) {
	df := wallClockFrame()

	assert.Equal(t, []ChartID{Line, Bar, Scatter, Area}, ValidCharts(df, "At", []string{"Load"}))
	assert.Equal(t, []ChartID{Line, Bar, Pie}, ValidCharts(df, "Idle", []string{"Load"}))
	assert.Empty(t, ValidCharts(df, "At", []string{"Idle"}))
}

func TestValidChartsInvariants(t *testing.T) {
	df := sensorFrame()
	names := df.Names()

	for _, x := range names {
		for _, y1 := range names {
			single := ValidCharts(df, x, []string{y1})
			assert.NotContains(t, single, Radar, "x=%s y=%s", x, y1)
			assert.NotContains(t, single, Heatmap, "x=%s y=%s", x, y1)

			for _, y2 := range names {
				multi := ValidCharts(df, x, []string{y1, y2})
				assert.NotContains(t, multi, Pie, "x=%s y=%s,%s", x, y1, y2)
			}
		}
	}
}

func TestValidChartsFollowsCatalogOrder(t *testing.T) {
	df := sensorFrame()
	position := make(map[ChartID]int)
	for i, def := range Catalog() {
		position[def.ID] = i
	}

	got := ValidCharts(df, "Timestamp", []string{"Temp", "Pressure"})
	for i := 1; i < len(got); i++ {
		assert.Less(t, position[got[i-1]], position[got[i]])
	}
}

func TestValidChartsIsDeterministic(t *testing.T) {
	df := sensorFrame()
	ys := []string{"Temp", "Pressure"}

	first := ValidCharts(df, "Mode", ys)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ValidCharts(df, "Mode", ys))
	}
	assert.Equal(t, []string{"Temp", "Pressure"}, ys, "selection must not be mutated")
}

func TestSelectionExclusions(t *testing.T) {
	pie, _ := Lookup(Pie)
	radar, _ := Lookup(Radar)

	catX := selection{xType: Categorical, xDistinct: 3, allNumeric: true, yCount: 1}
	assert.True(t, catX.eligible(pie))
	assert.False(t, catX.eligible(radar))

	tooMany := catX
	tooMany.xDistinct = 9
	assert.False(t, tooMany.eligible(pie))

	multi := selection{xType: Categorical, allNumeric: true, isMultiY: true, yCount: 2}
	assert.False(t, multi.eligible(pie))
	assert.True(t, multi.eligible(radar))
}

func TestEligibleRequiresNumericY(t *testing.T) {
	def := ChartDefinition{ID: "table", Requires: Requirements{X: []ColumnType{Categorical}}}
	sel := selection{xType: Categorical, allNumeric: true, yCount: 1}
	assert.False(t, sel.eligible(def), "no Y requirement never matches")
}
