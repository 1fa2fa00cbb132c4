package attendance

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// DefaultNullMarkers are the cell values treated as null, besides the empty
// string. The set matches what spreadsheet exports and data tools commonly
// write for a missing value.
var DefaultNullMarkers = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Loader reads attendance tables from delimited text files.
type Loader struct {
	delimiter rune
	nulls     map[string]struct{}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDelimiter sets the field separator. The default is ','.
func WithDelimiter(d rune) LoaderOption {
	return func(l *Loader) {
		l.delimiter = d
	}
}

// WithNullMarkers replaces the set of values treated as null.
// The empty string is always null.
func WithNullMarkers(markers ...string) LoaderOption {
	return func(l *Loader) {
		l.nulls = makeSet(markers)
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		delimiter: ',',
		nulls:     makeSet(DefaultNullMarkers),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the table at path with the default options.
func Load(path string) (*Table, error) {
	return NewLoader().Load(path)
}

// Load reads the table at path.
// A missing or malformed file yields a *DataFormatError.
func (l *Loader) Load(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from run parameters
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: err}
	}
	defer f.Close()

	return l.Read(f, path)
}

// Read parses a table from r. name is used in error messages only.
func (l *Loader) Read(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataFormatError{Path: name, Err: ErrEmptyFile}
		}
		return nil, wrapCSVError(name, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	table := &Table{Header: header, Rows: make([]Row, 0)}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(name, err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &DataFormatError{Path: name, Line: line, Err: ErrTooManyFields}
		}
		table.Rows = append(table.Rows, l.row(record, len(header)))
	}

	return table, nil
}

// row converts a record into a Row of the given width.
func (l *Loader) row(record []string, width int) Row {
	row := make(Row, width)
	for i := range row {
		if i >= len(record) {
			row[i] = Cell{Null: true}
			continue
		}
		v := record[i]
		row[i] = Cell{Value: v, Null: l.isNull(v)}
	}
	return row
}

// isNull reports whether v is a null marker. Values are matched as read;
// surrounding whitespace makes a cell a value.
func (l *Loader) isNull(v string) bool {
	if v == "" {
		return true
	}
	_, ok := l.nulls[v]
	return ok
}

// wrapCSVError converts a csv.ParseError into a DataFormatError.
func wrapCSVError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DataFormatError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return &DataFormatError{Path: name, Err: err}
}

func makeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
