package scanner

import (
	"errors"
	"fmt"
	"io"
)

// sliceRowsScanner implements Rows over an in-memory slice of rows.
type sliceRowsScanner struct {
	rows    [][]any
	columns []Column
	pos     int
}

// FromData creates a Rows scanner from a 2D slice of data. Column names are
// column_0, column_1, ... and column types are inferred from the first row.
func FromData(rows [][]any) Rows {
	s := &sliceRowsScanner{rows: rows, pos: -1}
	if len(rows) != 0 {
		for i, v := range rows[0] {
			s.columns = append(s.columns, newValueColumn(i, fmt.Sprintf("column_%d", i), v))
		}
	}
	return s
}

func (s *sliceRowsScanner) Driver() string {
	return "go-slice"
}

func (s *sliceRowsScanner) Err() error {
	return nil
}

func (s *sliceRowsScanner) Next() bool {
	if s.pos < len(s.rows) {
		s.pos++
	}
	return s.pos < len(s.rows)
}

// ScanRow returns the current row. Every row must have as many values as the first.
func (s *sliceRowsScanner) ScanRow() ([]any, error) {
	switch {
	case s.pos < 0:
		return nil, errors.New("docexport: scan called without calling Next")
	case s.pos >= len(s.rows):
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	if len(row) != len(s.columns) {
		return nil, fmt.Errorf("length of row %d != length of the first row: %d != %d", s.pos+1, len(row), len(s.columns))
	}
	return row, nil
}

func (s *sliceRowsScanner) Columns() ([]Column, error) {
	return s.columns, nil
}
