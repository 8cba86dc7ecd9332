// Package metadata answers tabular result-set metadata questions about the
// current document of a cursor: column count, names, SQL types and the
// capability flags a relational metadata consumer asks for.
package metadata

import (
	"errors"
	"fmt"

	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
)

// ErrNoCurrentRow is returned by operations that need a current document when
// the cursor is not positioned on one.
var ErrNoCurrentRow = errors.New("docexport: no current row")

// Nullability of a column.
type Nullability int

const (
	NoNulls Nullability = iota
	Nullable
	NullableUnknown
)

// CurrentDocument is the part of a cursor the metadata needs.
type CurrentDocument interface {
	Current() document.Document
}

// DatabaseNamer is implemented by cursors that know which database they read.
type DatabaseNamer interface {
	DatabaseName() string
}

// ResultSetMetaData describes the columns of the cursor's current document.
// Columns are 1-based. Every call reads the current document again; nothing is
// cached.
type ResultSetMetaData struct {
	cursor CurrentDocument
}

// New returns metadata over cursor.
func New(cursor CurrentDocument) *ResultSetMetaData {
	return &ResultSetMetaData{cursor: cursor}
}

func (m *ResultSetMetaData) current() document.Document {
	if m.cursor == nil {
		return nil
	}
	return m.cursor.Current()
}

// fieldName returns the name of a column, or false when there is no such column.
func (m *ResultSetMetaData) fieldName(column int) (document.Document, string, bool) {
	doc := m.current()
	if doc == nil {
		return nil, "", false
	}
	names := doc.FieldNames()
	if column < 1 || column > len(names) {
		return doc, "", false
	}
	return doc, names[column-1], true
}

// ColumnCount returns the number of fields of the current document, 0 without one.
func (m *ResultSetMetaData) ColumnCount() int {
	doc := m.current()
	if doc == nil {
		return 0
	}
	return doc.FieldCount()
}

// ColumnName returns the field name of a column, "" without a current
// document or for a column out of range.
func (m *ResultSetMetaData) ColumnName(column int) string {
	_, name, _ := m.fieldName(column)
	return name
}

// ColumnLabel is the same as ColumnName.
func (m *ResultSetMetaData) ColumnLabel(column int) string {
	return m.ColumnName(column)
}

// ColumnType resolves the SQL type of a column.
func (m *ResultSetMetaData) ColumnType(column int) (doctype.SQLType, error) {
	doc := m.current()
	if doc == nil {
		return doctype.SQLNull, fmt.Errorf("column %d type: %w", column, ErrNoCurrentRow)
	}
	return ResolveColumnType(doc, column), nil
}

// ColumnTypeName returns the declared native type name of a column. For
// schema-less fields it is the name of the resolved SQL type.
func (m *ResultSetMetaData) ColumnTypeName(column int) string {
	doc, name, ok := m.fieldName(column)
	if !ok {
		return ""
	}
	if t, ok := doc.FieldType(name); ok {
		return t.String()
	}
	return ResolveColumnType(doc, column).String()
}

// ColumnClassName returns the Go type of the column's current value, "" for nil.
func (m *ResultSetMetaData) ColumnClassName(column int) string {
	doc, name, ok := m.fieldName(column)
	if !ok {
		return ""
	}
	v := doc.Field(name)
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%T", v)
}

// IsSigned reports whether the column has a numeric declared type.
func (m *ResultSetMetaData) IsSigned(column int) bool {
	doc, name, ok := m.fieldName(column)
	if !ok {
		return false
	}
	t, ok := doc.FieldType(name)
	return ok && doctype.IsNumeric(t)
}

// IsNullable is always NullableUnknown: documents carry no constraints.
func (m *ResultSetMetaData) IsNullable(column int) Nullability {
	return NullableUnknown
}

// SchemaName returns the database name when the cursor knows it.
func (m *ResultSetMetaData) SchemaName(column int) string {
	if m.current() == nil {
		return ""
	}
	if n, ok := m.cursor.(DatabaseNamer); ok {
		return n.DatabaseName()
	}
	return ""
}

// TableName returns the class of the current document when it has one.
func (m *ResultSetMetaData) TableName(column int) string {
	if c, ok := m.current().(document.Classed); ok {
		return c.ClassName()
	}
	return ""
}

// The remaining accessors report fixed values: documents have no catalog,
// declared sizes or auto-increment columns, and the result set is read-only.

// CatalogName is always "".
func (m *ResultSetMetaData) CatalogName(column int) string { return "" }

// ColumnDisplaySize is always 0.
func (m *ResultSetMetaData) ColumnDisplaySize(column int) int { return 0 }

// Precision is always 0.
func (m *ResultSetMetaData) Precision(column int) int { return 0 }

// Scale is always 0.
func (m *ResultSetMetaData) Scale(column int) int { return 0 }

// IsAutoIncrement is always false.
func (m *ResultSetMetaData) IsAutoIncrement(column int) bool { return false }

// IsCaseSensitive is always false.
func (m *ResultSetMetaData) IsCaseSensitive(column int) bool { return false }

// IsCurrency is always false.
func (m *ResultSetMetaData) IsCurrency(column int) bool { return false }

// IsSearchable is always true: every field can appear in a query filter.
func (m *ResultSetMetaData) IsSearchable(column int) bool { return true }

// IsReadOnly is always true; the metadata surface has no write path.
func (m *ResultSetMetaData) IsReadOnly(column int) bool { return true }

// IsWritable is always false.
func (m *ResultSetMetaData) IsWritable(column int) bool { return false }

// IsDefinitelyWritable is always false.
func (m *ResultSetMetaData) IsDefinitelyWritable(column int) bool { return false }
