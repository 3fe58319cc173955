package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/config"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/internal/logging"
	"github.com/spektr-org/logviz/source"
)

// ============================================================================
// LOGVIZ CLI: Chart recommendations for parsed log datasets
// ============================================================================

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "logviz",
		Usage:   "Recommend chart types for a dataset and build the chart data",
		Version: version,
		Description: `logviz inspects the columns of a CSV, Parquet, Excel or DuckDB dataset,
classifies each as time, numeric or category, and lists the chart types that
suit an X/Y column selection, with a short reason for each.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json, pretty, text"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn, error"},
			&cli.StringFlag{Name: "log-format", Usage: "Log format: text, json"},
			&cli.StringFlag{Name: "sheet", Usage: "Excel worksheet to read (first sheet by default)"},
			&cli.StringFlag{Name: "query", Usage: "DuckDB query selecting the dataset"},
			&cli.IntFlag{Name: "sample", Usage: "Only load the first N rows"},
		},
		Commands: []*cli.Command{
			CatalogCommand(),
			DetectCommand(),
			RecommendCommand(),
			ChartCommand(),
			DescribeCommand(),
			CompareCommand(),
			SnapshotCommand(),
			ServeCommand(),
		},
	}
}

// ============================================================================
// SETUP: Config, logging and dataset loading shared by every command
// ============================================================================

// setup loads the configuration with flag overrides and installs the logger.
// The caller closes the returned logger.
func setup(cmd *cli.Command) (*config.Config, *logging.Logger, error) {
	overrides := make(map[string]any)
	for _, key := range []string{"log-level", "log-format", "sheet", "query", "addr"} {
		if cmd.IsSet(key) {
			overrides[key] = cmd.String(key)
		}
	}
	if cmd.IsSet("sample") {
		overrides["sample"] = int(cmd.Int("sample"))
	}
	if cmd.IsSet("no-metrics") {
		overrides["metrics"] = !cmd.Bool("no-metrics")
	}

	cfg, err := config.LoadConfigWithOverrides(overrides)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.Install(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadDataset(ctx context.Context, path string, cfg *config.Config, logger *logging.Logger) (*frame.Frame, error) {
	return source.Open(ctx, path, source.Options{
		Sheet:      cfg.Source.Sheet,
		Query:      cfg.Source.Query,
		SampleRows: cfg.Source.SampleRows,
		Logger:     logger.Logger,
	})
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, s := range errors.GetSuggestions(err) {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}
