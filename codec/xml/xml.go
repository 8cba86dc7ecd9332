// Package xmlcodec writes rows as XML: one row element per row with one
// child element per non-NULL column.
package xmlcodec

import (
	"encoding/xml"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-data-exporter/docexport/scanner"
	"github.com/go-data-exporter/docexport/tostring"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

type xmlCodec struct {
	customMapper     map[reflect.Type]func(any, scanner.Metadata) tostring.String
	preProcessorFunc func(rowID int, row []string) ([]string, bool)
	limit            int
	typeAttributes   bool
	rootElement      string
	rowElement       string
}

type Option func(*xmlCodec)

func New(opts ...Option) *xmlCodec {
	c := &xmlCodec{
		customMapper: make(map[reflect.Type]func(any, scanner.Metadata) tostring.String),
		limit:        -1,
		rootElement:  "data",
		rowElement:   "row",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType registers a string conversion for values of type T.
func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) tostring.String) Option {
	return func(c *xmlCodec) {
		var zero T
		typ := reflect.TypeOf(zero)
		if c.customMapper == nil {
			c.customMapper = make(map[reflect.Type]func(any, scanner.Metadata) tostring.String)
		}
		c.customMapper[typ] = func(v any, metadata scanner.Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

// WithPreProcessorFunc sets a function that may rewrite or drop (false) each
// row. rowID counts written rows from 1.
func WithPreProcessorFunc(fn func(rowID int, row []string) ([]string, bool)) Option {
	return func(c *xmlCodec) {
		c.preProcessorFunc = fn
	}
}

// WithLimit caps the number of rows written. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *xmlCodec) {
		c.limit = limit
	}
}

// WithTypeAttributes adds a type="<SQL type>" attribute to every column element.
func WithTypeAttributes(typeAttributes bool) Option {
	return func(c *xmlCodec) {
		c.typeAttributes = typeAttributes
	}
}

// WithElementNames renames the document and row elements ("data" and "row").
// Empty names keep the default.
func WithElementNames(root, row string) Option {
	return func(c *xmlCodec) {
		if root != "" {
			c.rootElement = ElementName(root)
		}
		if row != "" {
			c.rowElement = ElementName(row)
		}
	}
}

// ElementName turns a column name into a valid XML element name. Characters
// not allowed in names become '_' and a name that cannot start an element is
// prefixed with '_'.
func ElementName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		case i == 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
			b.WriteByte('_')
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Write writes the scanned rows as XML. NULL columns are omitted from their
// row; nothing is written when no row is.
func (c *xmlCodec) Write(rows scanner.Rows, writer io.Writer) error {
	if c.limit == 0 {
		return nil
	}
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	openTags := make([]string, len(cols))
	closeTags := make([]string, len(cols))
	for i, col := range cols {
		name := ElementName(col.Name())
		if c.typeAttributes {
			openTags[i] = "<" + name + ` type="` + col.SQLType().String() + `">`
		} else {
			openTags[i] = "<" + name + ">"
		}
		closeTags[i] = "</" + name + ">"
	}

	w := &errWriter{w: writer}
	written := 0
	for rows.Next() {
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		row := make([]string, len(values))
		null := make([]bool, len(values))
		for i := range values {
			s := c.toString(values[i], scanner.Metadata{
				RowID:  written + 1,
				Driver: rows.Driver(),
				Column: cols[i],
			})
			row[i], null[i] = s.String, s.IsNULL
		}

		if c.preProcessorFunc != nil {
			var keep bool
			if row, keep = c.preProcessorFunc(written+1, row); !keep {
				continue
			}
		}
		if written == 0 {
			w.WriteString(header + "<" + c.rootElement + ">\n")
		}
		w.WriteString("<" + c.rowElement + ">")
		for i := range row {
			if i >= len(null) || null[i] {
				continue
			}
			w.WriteString(openTags[i])
			if w.err == nil {
				w.err = xml.EscapeText(w, []byte(row[i]))
			}
			w.WriteString(closeTags[i])
		}
		w.WriteString("</" + c.rowElement + ">\n")
		if w.err != nil {
			return w.err
		}
		written++
		if c.limit >= 0 && written >= c.limit {
			break
		}
	}
	if written > 0 {
		w.WriteString("</" + c.rootElement + ">\n")
		if w.err != nil {
			return w.err
		}
	}
	if c.limit >= 0 && written >= c.limit {
		return nil
	}
	return rows.Err()
}

// toString uses the custom mapper registered for the value's type, if any.
func (c *xmlCodec) toString(v any, metadata scanner.Metadata) tostring.String {
	if v == nil {
		return tostring.String{IsNULL: true}
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	return tostring.ToString(v)
}
