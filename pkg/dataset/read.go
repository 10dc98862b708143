package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath infers the dataset format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported dataset file type: %q", filepath.Ext(path))
	}
}

// ReadOption customizes dataset reading.
type ReadOption func(*readConfig)

type readConfig struct {
	sheet string
}

// WithSheet selects the worksheet read from an Excel workbook.
// The first sheet is used when unset.
func WithSheet(name string) ReadOption {
	return func(c *readConfig) { c.sheet = name }
}

// Read decodes a dataset of the given format from r. Read does not close r.
func Read(r io.Reader, format Format, opts ...ReadOption) (Dataset, error) {
	cfg := readConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return readDelimited(r, ',')
	case FormatTSV:
		return readDelimited(r, '\t')
	case FormatXLSX:
		return ReadXLSX(r, cfg.sheet)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format: %q", format)
	}
}

// ReadFile opens path and decodes it according to its extension.
func ReadFile(path string, opts ...ReadOption) (Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	ds, err := Read(f, format, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidDataset), err, "read %s", path)
	}
	return ds, nil
}

// ReadJSON decodes a JSON array of objects:
//
//	[
//	  {"month": "Jan", "sales": 10},
//	  {"month": "Feb", "sales": 20}
//	]
//
// Numbers keep their literal text (see [json.Number]), so "1.50" is
// labeled "1.50" rather than "1.5". ReadJSON does not close r.
func ReadJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json dataset")
	}
	for i, rec := range ds {
		if rec == nil {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "null record").At(i, "")
		}
	}
	if ds == nil {
		ds = Dataset{}
	}
	return ds, nil
}

// ReadCSV decodes comma-separated rows. The first row names the fields;
// every value is kept as a string. Short rows leave trailing fields unset.
func ReadCSV(r io.Reader) (Dataset, error) {
	return readDelimited(r, ',')
}

func readDelimited(r io.Reader, comma rune) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode delimited dataset")
	}
	return fromRows(rows)
}

// ReadXLSX decodes one worksheet of an Excel workbook. The first non-empty
// row names the fields and cell values are kept as their formatted strings.
// An empty sheet name selects the first sheet. ReadXLSX does not close r.
func ReadXLSX(r io.Reader, sheet string) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "workbook has no sheets")
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, errors.New(errors.ErrCodeNotFound, "sheet %q not found (have %s)", sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read sheet %q", sheet)
	}
	return fromRows(rows)
}

// fromRows turns a header row plus data rows into records, skipping rows
// whose cells are all blank.
func fromRows(rows [][]string) (Dataset, error) {
	rows = slices.DeleteFunc(rows, blankRow)
	if len(rows) == 0 {
		return Dataset{}, nil
	}

	header := rows[0]
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "header column %d is empty", i+1)
		}
		if seen[h] {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate header %q", h)
		}
		seen[h] = true
		header[i] = h
	}

	ds := make(Dataset, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "row %d has %d cells, header has %d", n+2, len(row), len(header))
		}
		rec := make(Record, len(row))
		for i, cell := range row {
			rec[header[i]] = cell
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteJSON encodes ds as an indented JSON array.
func WriteJSON(w io.Writer, ds Dataset) error {
	if ds == nil {
		ds = Dataset{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return nil
}
