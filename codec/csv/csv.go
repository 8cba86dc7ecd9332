// Package csvcodec writes rows as CSV with encoding/csv.
package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/go-data-exporter/docexport/scanner"
	"github.com/go-data-exporter/docexport/tostring"
)

type csvCodec struct {
	customMapper     map[reflect.Type]func(any, string, scanner.Column) string
	preProcessorFunc func(row []string) ([]string, bool)
	delimiter        rune
	useCRLF          bool
	writeHeader      bool
	writeTypes       bool
	customHeader     []string
	nullValue        string
	limit            int
}

type Option func(*csvCodec)

func New(opts ...Option) *csvCodec {
	cw := &csvCodec{
		customMapper: make(map[reflect.Type]func(any, string, scanner.Column) string),
		delimiter:    ',',
		writeHeader:  true,
		limit:        -1,
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

func WithCustomType[T any](fn func(v T, driver string, column scanner.Column) string) Option {
	return func(cw *csvCodec) {
		var zero T
		typ := reflect.TypeOf(zero)
		if cw.customMapper == nil {
			cw.customMapper = make(map[reflect.Type]func(any, string, scanner.Column) string)
		}
		cw.customMapper[typ] = func(v any, driver string, column scanner.Column) string {
			return fn(v.(T), driver, column)
		}
	}
}

// WithPreProcessorFunc sets a function that may rewrite or drop (false) each record.
func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(cw *csvCodec) {
		cw.preProcessorFunc = fn
	}
}

func WithCustomDelimiter(delimiter rune) Option {
	return func(cw *csvCodec) {
		cw.delimiter = delimiter
	}
}

func WithCRLF(useCRLF bool) Option {
	return func(cw *csvCodec) {
		cw.useCRLF = useCRLF
	}
}

func WithHeader(writeHeader bool) Option {
	return func(cw *csvCodec) {
		cw.writeHeader = writeHeader
	}
}

// WithTypeRow writes the SQL type name of every column in a second header
// record. It has no effect without a header.
func WithTypeRow(writeTypes bool) Option {
	return func(cw *csvCodec) {
		cw.writeTypes = writeTypes
	}
}

// WithCustomHeader replaces the column names. It must name every column.
func WithCustomHeader(customHeader []string) Option {
	return func(cw *csvCodec) {
		cw.customHeader = customHeader
	}
}

func WithCustomNULL(nullValue string) Option {
	return func(cw *csvCodec) {
		cw.nullValue = nullValue
	}
}

// WithLimit caps the number of data records written. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(cw *csvCodec) {
		cw.limit = limit
	}
}

func (cs *csvCodec) header(cols []scanner.Column) ([][]string, error) {
	if !cs.writeHeader || len(cols) == 0 {
		return nil, nil
	}
	names := make([]string, len(cols))
	types := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name()
		types[i] = col.SQLType().String()
	}
	if cs.customHeader != nil {
		if len(cs.customHeader) != len(cols) {
			return nil, errors.New("invalid header length")
		}
		names = cs.customHeader
	}
	if cs.writeTypes {
		return [][]string{names, types}, nil
	}
	return [][]string{names}, nil
}

// Write writes a header (unless disabled) followed by one record per row.
func (cs *csvCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	header, err := cs.header(cols)
	if err != nil {
		return err
	}

	w := csv.NewWriter(writer)
	if cs.delimiter != 0 {
		w.Comma = cs.delimiter
	}
	w.UseCRLF = cs.useCRLF
	if err := w.WriteAll(header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for written := 0; cs.limit < 0 || written < cs.limit; {
		if !rows.Next() {
			break
		}
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		record := make([]string, len(cols))
		for i := range cols {
			record[i] = cs.toString(values[i], rows.Driver(), cols[i])
		}
		if cs.preProcessorFunc != nil {
			var keep bool
			if record, keep = cs.preProcessorFunc(record); !keep {
				continue
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
		written++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return rows.Err()
}

// toString uses a custom mapper registered for the value's type, if any, and
// tostring.ToString otherwise. NULL values become the configured null value.
func (cs *csvCodec) toString(v any, driver string, column scanner.Column) string {
	if v == nil {
		return cs.nullValue
	}
	if fn, ok := cs.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, driver, column)
	}
	if s := tostring.ToString(v); !s.IsNULL {
		return s.String
	}
	return cs.nullValue
}
