package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v3"

	"github.com/spektr-org/logviz/chart"
	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
)

// ============================================================================
// OUTPUT: json, pretty and text rendering of command results
// ============================================================================

// render writes v in the format selected by --format. text renders the
// human-readable form.
func render(cmd *cli.Command, v any, text func(w io.Writer) error) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	var (
		out []byte
		err error
	)
	switch format := cmd.String("format"); format {
	case "text":
		return text(w)
	case "pretty":
		out, err = sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	case "json", "":
		out, err = sonic.Marshal(v)
	default:
		return errors.Newf(errors.ErrTypeValidation, "unsupported output format %q", format).
			WithSuggestion("Use --format json, pretty or text")
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrTypeInternal, "failed to marshal output")
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeStats(w io.Writer, stats []frame.ColumnStats) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "COLUMN\tCOUNT\tMEAN\tSTD\tMIN\tMAX\tRANGE")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", s.Name, s.Count,
			fmtNum(s.Mean), fmtNum(s.Std), fmtNum(s.Min), fmtNum(s.Max), fmtNum(s.Range))
	}
	return tw.Flush()
}

// ============================================================================
// CHART TABLE: Chart data as aligned text columns
// ============================================================================

// writeChartTable writes the populated data layout of cc. Single-series charts
// get two columns; aligned multi-series charts one column per series;
// anything else a long series, label, value table.
func writeChartTable(w io.Writer, cc *chart.ChartConfig) error {
	cw := &rowWriter{tw: newTable(w)}

	switch {
	case cc.Heatmap != nil:
		hm := cc.Heatmap
		cw.Write([]string{cc.XAxis, "Metric", "Value"})
		for _, cell := range hm.Cells {
			cw.Write([]string{hm.XLabels[cell.X], hm.YLabels[cell.Y], fmtNum(cell.Value)})
		}

	case len(cc.Series) > 0 && len(cc.Series[0].Points) > 0:
		cw.Write([]string{"Series", cc.XAxis, "Value"})
		for _, s := range cc.Series {
			for _, p := range s.Points {
				cw.Write([]string{s.Name, fmtNum(p.X), fmtNum(p.Y)})
			}
		}

	case len(cc.Series) == 1:
		yLabel := cc.YAxis
		if yLabel == "" {
			yLabel = cc.Series[0].Name
		}
		cw.Write([]string{cc.XAxis, yLabel})
		for _, d := range cc.Series[0].Data {
			cw.Write([]string{d.Label, fmtNum(d.Value)})
		}

	case aligned(cc.Series):
		headers := []string{cc.XAxis}
		for _, s := range cc.Series {
			headers = append(headers, s.Name)
		}
		cw.Write(headers)
		for i, d := range cc.Series[0].Data {
			row := []string{d.Label}
			for _, s := range cc.Series {
				row = append(row, fmtNum(s.Data[i].Value))
			}
			cw.Write(row)
		}

	default:
		cw.Write([]string{"Series", cc.XAxis, "Value"})
		for _, s := range cc.Series {
			for _, d := range s.Data {
				cw.Write([]string{s.Name, d.Label, fmtNum(d.Value)})
			}
		}
	}

	return cw.tw.Flush()
}

// rowWriter writes tab-separated rows for a tabwriter.
type rowWriter struct {
	tw *tabwriter.Writer
}

func (r *rowWriter) Write(cells []string) {
	fmt.Fprintln(r.tw, strings.Join(cells, "\t"))
}

// aligned reports whether every series has the same labels in the same order.
func aligned(series []chart.ChartSeries) bool {
	if len(series) == 0 {
		return false
	}
	for _, s := range series[1:] {
		if len(s.Data) != len(series[0].Data) {
			return false
		}
		for i, d := range s.Data {
			if d.Label != series[0].Data[i].Label {
				return false
			}
		}
	}
	return true
}

// fmtNum prints whole numbers without decimals and fractions with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
