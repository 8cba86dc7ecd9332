package scanner

import (
	"database/sql"

	"github.com/go-data-exporter/docexport/doctype"
)

// sqlRowsScanner wraps *sql.Rows.
type sqlRowsScanner struct {
	*sql.Rows

	driver  string
	columns []Column
	buf     rowBuffer
}

// FromSQL wraps rows. driver names the database/sql driver that produced them.
func FromSQL(rows *sql.Rows, driver string) Rows {
	return &sqlRowsScanner{Rows: rows, driver: driver}
}

// sqlColumn is a *sql.ColumnType with the SQL type code derived from the
// driver's type name.
type sqlColumn struct {
	*sql.ColumnType
	index   int
	sqlType doctype.SQLType
}

func (c *sqlColumn) Index() int {
	return c.index
}

func (c *sqlColumn) SQLType() doctype.SQLType {
	return c.sqlType
}

func (s *sqlRowsScanner) Columns() ([]Column, error) {
	if s.columns != nil {
		return s.columns, nil
	}
	types, err := s.Rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]Column, len(types))
	for i, ct := range types {
		columns[i] = &sqlColumn{
			ColumnType: ct,
			index:      i,
			sqlType:    doctype.FromDatabaseTypeName(ct.DatabaseTypeName()),
		}
	}
	s.columns = columns
	return s.columns, nil
}

// ScanRow scans the current row. The returned slice is reused by the next call.
func (s *sqlRowsScanner) ScanRow() ([]any, error) {
	cols, err := s.Columns()
	if err != nil {
		return nil, err
	}
	if err := s.Rows.Scan(s.buf.dest(len(cols))...); err != nil {
		return nil, err
	}
	return s.buf.values, nil
}

func (s *sqlRowsScanner) Driver() string {
	return s.driver
}
