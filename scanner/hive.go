package scanner

import (
	"context"
	"reflect"
	"strings"

	"github.com/beltran/gohive"

	"github.com/go-data-exporter/docexport/doctype"
)

type hiveRowsScanner struct {
	cursor  *gohive.Cursor
	ctx     context.Context
	columns []Column
	buf     rowBuffer
}

// FromHiveCursor wraps a gohive cursor on which a query has been executed.
// ctx bounds every fetch.
func FromHiveCursor(ctx context.Context, cursor *gohive.Cursor) Rows {
	return &hiveRowsScanner{cursor: cursor, ctx: ctx}
}

func (h *hiveRowsScanner) Next() bool {
	return h.cursor.HasMore(h.ctx)
}

// ScanRow fetches the current row. The returned slice is reused by the next call.
func (h *hiveRowsScanner) ScanRow() ([]any, error) {
	cols, err := h.Columns()
	if err != nil {
		return nil, err
	}
	h.cursor.FetchOne(h.ctx, h.buf.dest(len(cols))...)
	if h.cursor.Err != nil {
		return nil, h.cursor.Err
	}
	return h.buf.values, nil
}

// Columns reads the cursor description: one [name, type] pair per column.
func (h *hiveRowsScanner) Columns() ([]Column, error) {
	if h.columns != nil {
		return h.columns, nil
	}
	for _, desc := range h.cursor.Description() {
		if len(desc) == 0 {
			continue
		}
		col := parseHiveColumn(desc)
		col.index = len(h.columns)
		h.columns = append(h.columns, col)
	}
	return h.columns, h.cursor.Error()
}

// parseHiveColumn reads one description entry. Names qualified as
// "table.column" lose the table part and type names their "_TYPE" suffix.
func parseHiveColumn(desc []string) *hiveColumn {
	col := &hiveColumn{name: desc[0]}
	if len(desc) > 1 {
		col.hiveType = strings.TrimSuffix(desc[1], "_TYPE")
	}
	if _, name, ok := strings.Cut(col.name, "."); ok {
		col.name = name
	}
	col.sqlType = doctype.FromDatabaseTypeName(col.hiveType)
	return col
}

func (h *hiveRowsScanner) Driver() string {
	return "gohive"
}

func (h *hiveRowsScanner) Err() error {
	return h.cursor.Error()
}

type hiveColumn struct {
	index    int
	name     string
	hiveType string
	sqlType  doctype.SQLType
}

func (c *hiveColumn) Index() int {
	return c.index
}

func (c *hiveColumn) Name() string {
	return c.name
}

func (c *hiveColumn) Length() (length int64, ok bool) {
	return 0, false
}

func (c *hiveColumn) DecimalSize() (precision, scale int64, ok bool) {
	return 0, 0, false
}

// ScanType is unknown until a row has been fetched.
func (c *hiveColumn) ScanType() reflect.Type {
	return nil
}

func (c *hiveColumn) Nullable() (nullable, ok bool) {
	return false, false
}

func (c *hiveColumn) DatabaseTypeName() string {
	return c.hiveType
}

func (c *hiveColumn) SQLType() doctype.SQLType {
	return c.sqlType
}
