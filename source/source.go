// Package source provides document cursors over the places documents are
// kept: in-memory slices, JSON-lines streams, SQL tables holding JSON
// documents, and Redis lists.
package source

import (
	"go.uber.org/zap"

	"github.com/go-data-exporter/docexport/document"
)

const defaultPageSize = 100

type options struct {
	databaseName string
	logger       *zap.Logger
	pageSize     int64
}

// Option configures a cursor.
type Option func(*options)

// WithDatabaseName sets the name reported by DatabaseName.
func WithDatabaseName(name string) Option {
	return func(o *options) {
		o.databaseName = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPageSize sets how many documents a paging cursor fetches per round trip.
// Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = int64(n)
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Slice is a cursor over documents held in memory.
type Slice struct {
	docs    []document.Document
	pos     int
	current document.Document
}

var _ document.Cursor = (*Slice)(nil)

// NewSlice returns a cursor over docs.
func NewSlice(docs ...document.Document) *Slice {
	return &Slice{docs: docs}
}

func (s *Slice) Next() bool {
	if s.pos >= len(s.docs) {
		s.current = nil
		return false
	}
	s.current = s.docs[s.pos]
	s.pos++
	return true
}

func (s *Slice) Current() document.Document {
	return s.current
}

func (s *Slice) Err() error {
	return nil
}

func (s *Slice) Close() error {
	return nil
}
