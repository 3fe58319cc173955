package frame

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sensorCSV = `ts,temp,mode,label,when,empty
0,20.5,1,idle,2026-01-01 00:00:00,
1,21,2,run,2026-01-01 00:01:00,
2,NaN,1,idle,2026-01-01 00:02:00,
`

func TestReadCSV(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sensorCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"ts", "temp", "mode", "label", "when", "empty"}, f.Names())

	kinds := map[string]Kind{
		"ts":    KindInt,
		"temp":  KindFloat,
		"mode":  KindInt,
		"label": KindText,
		"when":  KindTime,
		"empty": KindFloat,
	}
	for name, want := range kinds {
		col, ok := f.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, want, col.Kind(), name)
	}

	temp, _ := f.Column("temp")
	assert.True(t, temp.IsNull(2))
	assert.Equal(t, 2, temp.Distinct())

	when, _ := f.Column("when")
	at, ok := when.Time(1)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC), at)

	empty, _ := f.Column("empty")
	assert.Equal(t, 3, empty.NullCount())
	assert.Equal(t, 0, empty.Distinct())
}

func TestReadCSVPadsShortRows(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a,b\n1,2\n3\n"))
	require.NoError(t, err)

	b, _ := f.Column("b")
	assert.Equal(t, KindFloat, b.Kind(), "int with gaps widens to float")
	assert.True(t, b.IsNull(1))
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "failed to read CSV headers")

	_, err = ReadCSV(strings.NewReader("a,b\n\"unterminated,1\n"))
	assert.ErrorContains(t, err, "failed to read CSV row")

	_, err = ReadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  Kind
	}{
		{"ints", []string{"1", "2", "-3"}, KindInt},
		{"floats", []string{"1", "2.5"}, KindFloat},
		{"ints with null", []string{"1", "", "3"}, KindFloat},
		{"rfc3339", []string{"2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z"}, KindTime},
		{"dates", []string{"2026/01/01", "N/A"}, KindTime},
		{"mixed", []string{"1", "two"}, KindText},
		{"all null", []string{"null", "NULL", ""}, KindFloat},
		{"booleans stay text", []string{"true", "false"}, KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumn("c", tt.cells).Kind())
		})
	}
}

func TestReadCSVNonFiniteCellsAreNull(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"inf", "inf"},
		{"negative inf", "-inf"},
		{"infinity", "Infinity"},
		{"nan", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ReadCSV(strings.NewReader("Timestamp,Temp\n0,1\n1," + tt.cell + "\n2,3\n"))
			require.NoError(t, err)

			temp, ok := f.Column("Temp")
			require.True(t, ok)
			assert.Equal(t, KindFloat, temp.Kind())
			assert.True(t, temp.IsNull(1))
			assert.Equal(t, 1, temp.NullCount())
			assert.Equal(t, 2, temp.Distinct())

			stats := Describe(f)
			require.Len(t, stats, 2)
			assert.Equal(t, 2, stats[1].Count)
			assert.Equal(t, 2.0, stats[1].Mean)
		})
	}
}

func TestFromRowsNoHeader(t *testing.T) {
	_, err := FromRows(nil, nil)
	assert.Error(t, err)
}
