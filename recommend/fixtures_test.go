package recommend

import (
	"fmt"
	"time"

	"github.com/spektr-org/logviz/frame"
)

// sensorFrame is a parsed log: a numeric Timestamp axis, two continuous
// measurements, an encoded mode, a text phase with 9 labels and one with 8.
func sensorFrame() *frame.Frame {
	const rows = 100
	ts := make([]float64, rows)
	temp := make([]float64, rows)
	pressure := make([]float64, rows)
	mode := make([]int64, rows)
	phase9 := make([]string, rows)
	phase8 := make([]string, rows)
	for i := 0; i < rows; i++ {
		ts[i] = float64(i)
		temp[i] = 20 + float64(i)*0.5
		pressure[i] = 1000 + float64(i)
		mode[i] = int64(i % 3)
		phase9[i] = fmt.Sprintf("phase-%d", i%9)
		phase8[i] = fmt.Sprintf("stage-%d", i%8)
	}

	return frame.MustNew(
		frame.NewFloatColumn("Timestamp", ts),
		frame.NewFloatColumn("Temp", temp),
		frame.NewFloatColumn("Pressure", pressure),
		frame.NewIntColumn("Mode", mode),
		frame.NewTextColumn("Phase", phase9),
		frame.NewTextColumn("Stage", phase8),
	)
}

// wallClockFrame has a real temporal column next to a boolean flag.
func wallClockFrame() *frame.Frame {
	const rows = 50
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	at := make([]time.Time, rows)
	load := make([]float64, rows)
	idle := make([]bool, rows)
	for i := 0; i < rows; i++ {
		at[i] = start.Add(time.Duration(i) * time.Minute)
		load[i] = float64(i*i) / 10
		idle[i] = i%2 == 0
	}
	return frame.MustNew(
		frame.NewTimeColumn("At", at),
		frame.NewFloatColumn("Load", load),
		frame.NewBoolColumn("Idle", idle),
	)
}

// repeating returns n int64 values cycling through k distinct codes.
func repeating(n, k int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i % k)
	}
	return out
}
