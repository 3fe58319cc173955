package source

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
)

// ReadXLSX reads one worksheet into a Frame. The first row is the header; cell
// kinds are inferred the same way as CSV. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*frame.Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeSource, "failed to open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrTypeDataset, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSource, "failed to read sheet %q", sheet).
			WithSuggestion("Check the sheet name; available sheets: " + strings.Join(f.GetSheetList(), ", "))
	}
	if len(rows) == 0 {
		return nil, errors.Newf(errors.ErrTypeDataset, "sheet %q is empty", sheet)
	}

	df, err := frame.FromRows(rows[0], rows[1:])
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDataset, "sheet %q is not a valid dataset", sheet)
	}
	return df, nil
}
