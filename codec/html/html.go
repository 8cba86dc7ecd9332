// Package htmlcodec renders rows as a standalone HTML page holding one table.
package htmlcodec

import (
	"fmt"
	"html"
	"io"
	"reflect"
	"strings"

	"github.com/go-data-exporter/docexport/scanner"
	"github.com/go-data-exporter/docexport/tostring"
)

type htmlCodec struct {
	customMapper      map[reflect.Type]func(any, string, scanner.Column) tostring.String
	preProcessorFunc  func(row []string) ([]string, bool)
	toStringFunc      func(v any) tostring.String
	writeHeader       bool
	writeHeaderNoData bool
	nullValue         string
	title             string
}

type Option func(*htmlCodec)

func New(opts ...Option) *htmlCodec {
	cw := &htmlCodec{
		customMapper:      make(map[reflect.Type]func(any, string, scanner.Column) tostring.String),
		writeHeader:       true,
		writeHeaderNoData: true,
		toStringFunc:      tostring.ToString,
		nullValue:         `<span class=null>[NULL]</span>`,
		title:             "Document Export",
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

func WithCustomType[T any](fn func(v T, driver string, column scanner.Column) tostring.String) Option {
	return func(cw *htmlCodec) {
		var zero T
		typ := reflect.TypeOf(zero)
		if cw.customMapper == nil {
			cw.customMapper = make(map[reflect.Type]func(any, string, scanner.Column) tostring.String)
		}
		cw.customMapper[typ] = func(v any, driver string, column scanner.Column) tostring.String {
			return fn(v.(T), driver, column)
		}
	}
}

// WithPreProcessorFunc sets a function that may rewrite or drop (false) each
// row. Cells are already HTML-escaped.
func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(cw *htmlCodec) {
		cw.preProcessorFunc = fn
	}
}

func WithCustomToStringFunc(fn func(v any) tostring.String) Option {
	return func(cw *htmlCodec) {
		cw.toStringFunc = fn
	}
}

func WithHeader(writeHeader bool) Option {
	return func(cw *htmlCodec) {
		cw.writeHeader = writeHeader
	}
}

// WithCustomNULL sets the markup written for NULL cells. It is not escaped.
func WithCustomNULL(nullValue string) Option {
	return func(cw *htmlCodec) {
		cw.nullValue = nullValue
	}
}

func WithWriteHeaderWhenNoData(writeHeaderNoData bool) Option {
	return func(cw *htmlCodec) {
		cw.writeHeaderNoData = writeHeaderNoData
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(cw *htmlCodec) {
		cw.title = title
	}
}

const style = `body,html,*{margin:0;padding:0}` +
	`table{width:100%;border-spacing:0}` +
	`thead{position:sticky;top:0;z-index:99;background:#f9f9f9}` +
	`th{border:1px solid #dedede;border-top:0;border-left:0;padding:15px}` +
	`td{border:1px solid #dedede;border-top:0;border-left:0;padding:10px;max-width:700px;` +
	`overflow-x:auto;white-space:nowrap;scrollbar-width:none}` +
	`td::-webkit-scrollbar{display:none}` +
	`td.num{text-align:right}` +
	`p.typ{margin-top:5px;color:#333}` +
	`span.null{color:#aaa}`

// page writes the document around the table and remembers the first write error.
type page struct {
	w    io.Writer
	err  error
	open bool
	body bool
}

func (p *page) print(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *page) start(title string) {
	p.print(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body><table>`,
		html.EscapeString(title), style)
	p.open = true
}

func (p *page) finish() error {
	if p.body {
		p.print(`</tbody>`)
	}
	if p.open {
		p.print(`</table></body></html>`)
	}
	return p.err
}

func (c *htmlCodec) writeHead(p *page, cols []scanner.Column) {
	p.start(c.title)
	p.print(`<thead>`)
	for _, col := range cols {
		p.print(`<th title="%s"><p>%s</p><p class=typ>%s</p></th>`,
			col.SQLType(), html.EscapeString(col.Name()), html.EscapeString(strings.ToLower(col.DatabaseTypeName())))
	}
	p.print(`</thead>`)
}

// Write renders rows as an HTML table. Headers show the column's database
// type name, with the SQL type as a tooltip; numeric columns are right aligned.
// Without a header the page is only started by the first row.
func (c *htmlCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	numeric := make([]bool, len(cols))
	for i, col := range cols {
		numeric[i] = col.SQLType().IsNumeric()
	}

	p := &page{w: writer}
	if c.writeHeader && c.writeHeaderNoData && len(cols) != 0 {
		c.writeHead(p, cols)
	}
	for rows.Next() {
		values, err := rows.ScanRow()
		if err != nil {
			p.finish()
			return err
		}
		row := make([]string, len(values))
		for j := range values {
			row[j] = c.toString(values[j], rows.Driver(), cols[j])
		}
		if c.preProcessorFunc != nil {
			var keep bool
			if row, keep = c.preProcessorFunc(row); !keep {
				continue
			}
		}
		if !p.open {
			if c.writeHeader {
				c.writeHead(p, cols)
			} else {
				p.start(c.title)
			}
		}
		if !p.body {
			p.print(`<tbody>`)
			p.body = true
		}
		p.print(`<tr>`)
		for j, cell := range row {
			if j < len(numeric) && numeric[j] {
				p.print(`<td class=num>%s</td>`, cell)
			} else {
				p.print(`<td>%s</td>`, cell)
			}
		}
		p.print(`</tr>`)
		if p.err != nil {
			return p.err
		}
	}
	if err := p.finish(); err != nil {
		return err
	}
	return rows.Err()
}

// toString renders a cell. Values are HTML-escaped; the NULL marker is not.
func (c *htmlCodec) toString(v any, driver string, column scanner.Column) string {
	if v == nil {
		return c.nullValue
	}
	var s tostring.String
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		s = fn(v, driver, column)
	} else {
		s = c.toStringFunc(v)
	}
	if s.IsNULL {
		return c.nullValue
	}
	return html.EscapeString(s.String)
}
