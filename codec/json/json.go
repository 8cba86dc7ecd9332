package jsoncodec

import (
	"io"
	"reflect"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/docexport/scanner"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Option func(*jsonCodec)

type jsonCodec struct {
	customMapper     map[reflect.Type]func(any, scanner.Metadata) any
	preProcessorFunc func(rowID int, row map[string]any) (map[string]any, bool)
	newlineDelimited bool
	limit            int
}

func New(opts ...Option) *jsonCodec {
	c := &jsonCodec{
		customMapper: make(map[reflect.Type]func(any, scanner.Metadata) any),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithPreProcessorFunc(fn func(rowID int, row map[string]any) (map[string]any, bool)) Option {
	return func(c *jsonCodec) {
		c.preProcessorFunc = fn
	}
}

func WithNewlineDelimited(isNewlineDelimited bool) Option {
	return func(c *jsonCodec) {
		c.newlineDelimited = isNewlineDelimited
	}
}

func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) any) Option {
	return func(c *jsonCodec) {
		var zero T
		typ := reflect.TypeOf(zero)
		if c.customMapper == nil {
			c.customMapper = make(map[reflect.Type]func(any, scanner.Metadata) any)
		}
		c.customMapper[typ] = func(v any, metadata scanner.Metadata) any {
			return fn(v.(T), metadata)
		}
	}
}

func WithLimit(limit int) Option {
	return func(c *jsonCodec) {
		c.limit = limit
	}
}

// Write writes one JSON object per row, either as a JSON array or newline
// delimited. Object keys follow the column order; keys a pre-processor adds
// come after the columns, sorted.
func (c *jsonCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	columnNames := make([]string, len(cols))
	for i, col := range cols {
		columnNames[i] = col.Name()
	}

	stream := json.BorrowStream(writer)
	defer json.ReturnStream(stream)

	if c.limit == 0 {
		return nil
	}
	rowID, written := 1, 0
	for rows.Next() {
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		row := make(map[string]any, len(values))
		for i, col := range columnNames {
			row[col] = values[i]
			if fn, ok := c.customMapper[reflect.TypeOf(values[i])]; ok {
				meta := scanner.Metadata{
					RowID:  rowID,
					Driver: rows.Driver(),
					Column: cols[i],
				}
				row[col] = fn(row[col], meta)
			}
		}

		writeRow := true
		if c.preProcessorFunc != nil {
			row, writeRow = c.preProcessorFunc(rowID, row)
		}
		if !writeRow {
			rowID++
			continue
		}

		if !c.newlineDelimited {
			if written == 0 {
				stream.WriteRaw("[")
			} else {
				stream.WriteRaw(",")
			}
			stream.WriteRaw("\n")
		}
		writeObject(stream, columnNames, row)
		if c.newlineDelimited {
			stream.WriteRaw("\n")
		}
		if stream.Error != nil {
			return stream.Error
		}
		if err := stream.Flush(); err != nil {
			return err
		}
		written++
		if c.limit >= 0 && written >= c.limit {
			break
		}
		rowID++
	}
	if c.limit < 0 || written < c.limit {
		if err := rows.Err(); err != nil {
			return err
		}
	}
	// The array is closed only once every row has been written.
	if !c.newlineDelimited && written > 0 {
		stream.WriteRaw("\n]\n")
		return stream.Flush()
	}
	return nil
}

func writeObject(stream *jsoniter.Stream, columnNames []string, row map[string]any) {
	seen := make(map[string]bool, len(columnNames))
	keys := make([]string, 0, len(row))
	for _, name := range columnNames {
		if _, ok := row[name]; ok && !seen[name] {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range row {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	stream.WriteObjectStart()
	for i, name := range keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		stream.WriteVal(row[name])
	}
	stream.WriteObjectEnd()
}
