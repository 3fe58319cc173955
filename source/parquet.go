package source

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
)

// ReadParquet reads a whole Parquet file into a Frame through an Arrow table.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker) (*frame.Frame, error) {
	mem := memory.NewGoAllocator()

	pf, err := file.NewParquetReader(r, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to create parquet reader")
	}
	defer pf.Close()

	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to create arrow reader")
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to read parquet data")
	}
	defer table.Release()

	f, err := frame.FromArrowTable(table)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDataset, "failed to convert parquet data")
	}
	return f, nil
}
