// Package source loads datasets from files into frames for the recommender.
//
// Supported formats are CSV, Parquet, Excel workbooks and DuckDB databases.
// Every loader returns a *frame.Frame; errors are typed with internal/errors.
package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
)

// DefaultQuery selects the dataset from a DuckDB database.
const DefaultQuery = "SELECT * FROM data"

// Options tune how Open reads a file.
type Options struct {
	Sheet      string // xlsx worksheet; first sheet when empty
	Query      string // duckdb query; DefaultQuery when empty
	SampleRows int    // keep only the first n rows; 0 keeps all
	Logger     *slog.Logger
}

// Format identifies a supported file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
	FormatDuckDB  Format = "duckdb"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".parquet", ".pq":
		return FormatParquet, true
	case ".xlsx", ".xlsm":
		return FormatXLSX, true
	case ".duckdb", ".db":
		return FormatDuckDB, true
	default:
		return "", false
	}
}

// Open loads the dataset at path.
func Open(ctx context.Context, path string, opts Options) (*frame.Frame, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return nil, errors.Newf(errors.ErrTypeSource, "unsupported file type %q", filepath.Ext(path)).
			WithSuggestion("Use a .csv, .parquet, .xlsx or .duckdb file")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeFileSystem, "cannot read %s", path)
	}

	df, err := load(ctx, path, format, opts)
	if err != nil {
		return nil, err
	}

	rows := df.Len()
	df = df.Head(opts.SampleRows)

	if opts.Logger != nil {
		opts.Logger.Debug("dataset loaded",
			slog.String("path", path),
			slog.String("format", string(format)),
			slog.Int("rows", rows),
			slog.Int("kept", df.Len()),
			slog.Int("columns", len(df.Names())))
	}
	return df, nil
}

func load(ctx context.Context, path string, format Format, opts Options) (*frame.Frame, error) {
	if format == FormatDuckDB {
		db, err := OpenDuckDB(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		query := opts.Query
		if query == "" {
			query = DefaultQuery
		}
		return DuckDB(ctx, db, query)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to open %s", path)
	}
	defer f.Close()

	switch format {
	case FormatParquet:
		return ReadParquet(ctx, f)
	case FormatXLSX:
		return ReadXLSX(f, opts.Sheet)
	default:
		df, err := frame.ReadCSV(f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeDataset, "failed to parse %s", path)
		}
		return df, nil
	}
}
