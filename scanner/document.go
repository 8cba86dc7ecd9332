package scanner

import (
	"reflect"

	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
	"github.com/go-data-exporter/docexport/metadata"
)

// documentRowsScanner presents a document cursor as rows. The columns are the
// fields of the first document; later documents are projected onto them, so
// missing fields scan as nil and extra fields are dropped.
type documentRowsScanner struct {
	cursor    document.Cursor
	columns   []Column
	described bool
	started   bool
	peeked    bool
	done      bool
}

// FromDocuments wraps a document cursor. The cursor is not closed by the scanner.
func FromDocuments(cursor document.Cursor) Rows {
	return &documentRowsScanner{cursor: cursor}
}

func (s *documentRowsScanner) Driver() string {
	return "document"
}

func (s *documentRowsScanner) Err() error {
	return s.cursor.Err()
}

func (s *documentRowsScanner) Next() bool {
	if s.peeked {
		s.peeked = false
		return true
	}
	if s.done {
		return false
	}
	s.started = true
	if !s.cursor.Next() {
		s.done = true
		return false
	}
	return true
}

// Columns describes the first document. If Next has not been called yet the
// cursor is advanced onto it and the following Next does not move it again.
func (s *documentRowsScanner) Columns() ([]Column, error) {
	if s.described {
		return s.columns, nil
	}
	s.described = true
	if !s.started {
		s.started = true
		if !s.cursor.Next() {
			s.done = true
			return nil, s.cursor.Err()
		}
		s.peeked = true
	}
	doc := s.cursor.Current()
	if doc == nil {
		return nil, nil
	}

	md := metadata.New(s.cursor)
	for i := 1; i <= md.ColumnCount(); i++ {
		sqlType, err := md.ColumnType(i)
		if err != nil {
			return nil, err
		}
		name := md.ColumnName(i)
		col := &documentColumn{
			index:    i - 1,
			name:     name,
			typeName: md.ColumnTypeName(i),
			sqlType:  sqlType,
		}
		if v := doc.Field(name); v != nil {
			col.scanType = reflect.TypeOf(v)
		}
		s.columns = append(s.columns, col)
	}
	return s.columns, nil
}

func (s *documentRowsScanner) ScanRow() ([]any, error) {
	if !s.described {
		if _, err := s.Columns(); err != nil {
			return nil, err
		}
	}
	doc := s.cursor.Current()
	if doc == nil {
		return nil, metadata.ErrNoCurrentRow
	}
	row := make([]any, len(s.columns))
	for i, col := range s.columns {
		row[i] = doc.Field(col.Name())
	}
	return row, nil
}

type documentColumn struct {
	index    int
	name     string
	typeName string
	sqlType  doctype.SQLType
	scanType reflect.Type
}

func (c *documentColumn) Index() int {
	return c.index
}

func (c *documentColumn) Name() string {
	return c.name
}

func (c *documentColumn) Length() (length int64, ok bool) {
	return 0, false
}

func (c *documentColumn) DecimalSize() (precision, scale int64, ok bool) {
	return 0, 0, false
}

func (c *documentColumn) ScanType() reflect.Type {
	return c.scanType
}

// Nullable is unknown: documents carry no constraints.
func (c *documentColumn) Nullable() (nullable, ok bool) {
	return false, false
}

// DatabaseTypeName is the declared native type, or the resolved SQL type name
// for schema-less fields.
func (c *documentColumn) DatabaseTypeName() string {
	return c.typeName
}

func (c *documentColumn) SQLType() doctype.SQLType {
	return c.sqlType
}
