package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-data-exporter/docexport/document"
)

// SQL is a cursor over rows whose first column holds a JSON document, for
// documents kept in a text, JSON or JSONB column of a relational table.
// Other columns are read and ignored.
type SQL struct {
	rows    *sql.Rows
	opts    options
	dest    []any
	raw     any
	row     int
	current *document.Doc
	err     error
}

var _ document.Cursor = (*SQL)(nil)

// NewSQL wraps rows. The cursor owns rows and closes them on Close.
func NewSQL(rows *sql.Rows, opts ...Option) *SQL {
	return &SQL{rows: rows, opts: newOptions(opts)}
}

// QuerySQL runs query on db and returns a cursor over the result.
func QuerySQL(ctx context.Context, db *sql.DB, query string, args ...any) (*SQL, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("docexport: query documents: %w", err)
	}
	return NewSQL(rows), nil
}

func (s *SQL) Next() bool {
	s.current = nil
	if s.err != nil {
		return false
	}
	if s.dest == nil {
		cols, err := s.rows.Columns()
		if err != nil {
			s.err = err
			return false
		}
		if len(cols) == 0 {
			s.err = errors.New("docexport: query returned no columns")
			return false
		}
		s.dest = make([]any, len(cols))
		s.dest[0] = &s.raw
		for i := 1; i < len(cols); i++ {
			s.dest[i] = new(any)
		}
	}
	if !s.rows.Next() {
		s.err = s.rows.Err()
		return false
	}
	s.row++
	if err := s.rows.Scan(s.dest...); err != nil {
		s.err = fmt.Errorf("row %d: %w", s.row, err)
		return false
	}

	var data []byte
	switch v := s.raw.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		s.err = fmt.Errorf("row %d: document column is NULL", s.row)
		return false
	default:
		s.err = fmt.Errorf("row %d: document column has type %T, want text", s.row, v)
		return false
	}
	doc, err := document.Decode(data)
	if err != nil {
		s.err = fmt.Errorf("row %d: %w", s.row, err)
		return false
	}
	s.current = doc
	return true
}

func (s *SQL) Current() document.Document {
	if s.current == nil {
		return nil
	}
	return s.current
}

func (s *SQL) Err() error {
	return s.err
}

func (s *SQL) DatabaseName() string {
	return s.opts.databaseName
}

func (s *SQL) Close() error {
	return s.rows.Close()
}
