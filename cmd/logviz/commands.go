package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spektr-org/logviz/chart"
	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/internal/server"
	"github.com/spektr-org/logviz/recommend"
)

func fileFlag() cli.Flag {
	return &cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Dataset file (.csv, .parquet, .xlsx, .duckdb)", Required: true}
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		fileFlag(),
		&cli.StringFlag{Name: "x", Usage: "X axis column", Required: true},
		&cli.StringSliceFlag{Name: "y", Usage: "Y axis column, repeat for several", Required: true},
	}
}

func CatalogCommand() *cli.Command {
	return &cli.Command{
		Name:        "catalog",
		Usage:       "List the supported chart types",
		Description: `Print every chart type the recommender knows with its requirements and limitations.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			defs := recommend.Catalog()
			return render(cmd, defs, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tLIMITATIONS")
				for _, d := range defs {
					fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", d.ID, d.Icon, d.Name, d.Description, d.Limitations)
				}
				return tw.Flush()
			})
		},
	}
}

func DetectCommand() *cli.Command {
	return &cli.Command{
		Name:        "detect",
		Usage:       "Classify every column of a dataset",
		Description: `Show the storage kind and the inferred column type (time, numeric, category) of each column.`,
		Flags:       []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			cols := recommend.NewEngine(recommend.WithLogger(logger.Logger)).Columns(df)
			return render(cmd, cols, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "COLUMN\tKIND\tTYPE\tDISTINCT\tNULLS")
				for _, c := range cols {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", c.Name, c.Kind, c.Type, c.Distinct, c.Nulls)
				}
				return tw.Flush()
			})
		},
	}
}

func RecommendCommand() *cli.Command {
	return &cli.Command{
		Name:        "recommend",
		Usage:       "List the chart types that suit an X/Y selection",
		Description: `Match the selection against the chart catalog and print every eligible chart, in catalog order.`,
		Flags: append(selectionFlags(),
			&cli.BoolFlag{Name: "explain", Value: true, Usage: "Attach a reason to each recommendation"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			opts := []recommend.Option{recommend.WithLogger(logger.Logger)}
			if !cmd.Bool("explain") {
				opts = append(opts, recommend.WithoutReasons())
			}
			report := recommend.NewEngine(opts...).Recommend(df, cmd.String("x"), cmd.StringSlice("y"))

			return render(cmd, report, func(w io.Writer) error {
				fmt.Fprintf(w, "X: %s (%s)\n", report.X, typeLabel(report.XType))
				for i, y := range report.Y {
					fmt.Fprintf(w, "Y: %s (%s)\n", y, typeLabel(report.YTypes[i]))
				}
				if len(report.Recommendations) == 0 {
					fmt.Fprintln(w, "No suitable chart type.")
					return nil
				}
				for _, rec := range report.Recommendations {
					fmt.Fprintf(w, "%s %s", rec.Chart.Icon, rec.Chart.Name)
					if rec.Reason != "" {
						fmt.Fprintf(w, ": %s", rec.Reason)
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}
}

func ChartCommand() *cli.Command {
	return &cli.Command{
		Name:        "chart",
		Usage:       "Build render-ready data for one chart type",
		Description: `Build the series, categories and colors for a chart the selection is eligible for.`,
		Flags: append(selectionFlags(),
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Chart type id (see 'logviz catalog')", Required: true},
			&cli.StringFlag{Name: "title", Usage: "Chart title"},
			&cli.StringFlag{Name: "agg", Usage: "Aggregation for pie, radar and heatmap: sum, avg, count, max, min"},
			&cli.StringFlag{Name: "sort", Usage: "Category order: value_desc, value_asc, label_asc, label_desc"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			cc, err := chart.Build(df, cmd.String("x"), cmd.StringSlice("y"),
				recommend.ChartID(cmd.String("type")), chart.Options{
					Title:       cmd.String("title"),
					Aggregation: cmd.String("agg"),
					SortBy:      cmd.String("sort"),
				})
			if err != nil {
				return err
			}

			return render(cmd, cc, func(w io.Writer) error {
				return writeChartTable(w, cc)
			})
		},
	}
}

func DescribeCommand() *cli.Command {
	return &cli.Command{
		Name:        "describe",
		Usage:       "Summary statistics of the numeric columns",
		Description: `Print count, mean, sample standard deviation, min, max and range per numeric column.`,
		Flags:       []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			stats := frame.Describe(df)
			if stats == nil {
				stats = []frame.ColumnStats{}
			}
			return render(cmd, stats, func(w io.Writer) error {
				return writeStats(w, stats)
			})
		},
	}
}

// comparison is the output of the compare command.
type comparison struct {
	Columns []string            `json:"columns"`
	Left    []frame.ColumnStats `json:"left"`
	Right   []frame.ColumnStats `json:"right"`
}

func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:        "compare",
		Usage:       "Compare the shared columns of two datasets",
		Description: `List the columns both datasets have and their statistics side by side.`,
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "with", Usage: "Second dataset file", Required: true},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Column to leave out, repeat for several"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			left, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}
			right, err := loadDataset(ctx, cmd.String("with"), cfg, logger)
			if err != nil {
				return err
			}

			out := comparison{
				Columns: frame.CommonColumns(left, right, cmd.StringSlice("exclude")...),
				Left:    []frame.ColumnStats{},
				Right:   []frame.ColumnStats{},
			}
			if out.Columns == nil {
				out.Columns = []string{}
			}
			shared := make(map[string]bool, len(out.Columns))
			for _, c := range out.Columns {
				shared[c] = true
			}
			for _, s := range frame.Describe(left) {
				if shared[s.Name] {
					out.Left = append(out.Left, s)
				}
			}
			for _, s := range frame.Describe(right) {
				if shared[s.Name] {
					out.Right = append(out.Right, s)
				}
			}

			return render(cmd, out, func(w io.Writer) error {
				fmt.Fprintf(w, "Shared columns: %s\n\n", strings.Join(out.Columns, ", "))
				fmt.Fprintf(w, "%s\n", cmd.String("file"))
				if err := writeStats(w, out.Left); err != nil {
					return err
				}
				fmt.Fprintf(w, "\n%s\n", cmd.String("with"))
				return writeStats(w, out.Right)
			})
		},
	}
}

func SnapshotCommand() *cli.Command {
	return &cli.Command{
		Name:        "snapshot",
		Usage:       "Show the row nearest to a value of one column",
		Description: `Find the row whose value in --column is closest to --value and print all of its cells.`,
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "column", Usage: "Numeric or time column to search", Required: true},
			&cli.FloatFlag{Name: "value", Usage: "Target value (Unix seconds for time columns)", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			column := cmd.String("column")
			if _, ok := df.Column(column); !ok {
				return errors.NewColumnError(column, df.Names())
			}
			row, ok := frame.Nearest(df, column, cmd.Float("value"))
			if !ok {
				return errors.Newf(errors.ErrTypeValidation, "column %q has no numeric values", column)
			}

			snap := server.Snapshot{Row: row, Values: make(map[string]string, len(df.Names()))}
			for _, name := range df.Names() {
				col, _ := df.Column(name)
				snap.Values[name] = col.Label(row)
			}
			return render(cmd, snap, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintf(tw, "ROW\t%d\n", row)
				for _, name := range df.Names() {
					fmt.Fprintf(tw, "%s\t%s\n", name, snap.Values[name])
				}
				return tw.Flush()
			})
		},
	}
}

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       "Serve the dataset and recommender over HTTP",
		Description: `Start the HTTP API (catalog, columns, recommend, chart, describe, snapshot) and /metrics.`,
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "addr", Usage: "Listen address (default :8080)"},
			&cli.BoolFlag{Name: "no-metrics", Usage: "Disable Prometheus metrics"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()

			df, err := loadDataset(ctx, cmd.String("file"), cfg, logger)
			if err != nil {
				return err
			}

			return server.New(df, cfg, logger.Logger).ListenAndServe(ctx, cfg.Server)
		},
	}
}

func typeLabel(t recommend.ColumnType) string {
	if t == "" {
		return "not found"
	}
	return string(t)
}
