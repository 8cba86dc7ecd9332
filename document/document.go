// Package document defines the self-describing document abstraction docexport
// reads metadata from, together with an ordered in-memory implementation and
// its JSON form.
package document

import "github.com/go-data-exporter/docexport/doctype"

// Document is a record whose fields are named and dynamically typed.
// FieldNames is index-aligned with result-set columns.
type Document interface {
	FieldCount() int
	FieldNames() []string
	// FieldType returns the declared type of a field. ok is false for
	// schema-less fields.
	FieldType(name string) (t doctype.NativeType, ok bool)
	// Field returns the runtime value of a field, nil when absent.
	Field(name string) any
}

// Classed is implemented by documents that belong to a named class.
type Classed interface {
	ClassName() string
}

// Cursor iterates over a stream of documents.
type Cursor interface {
	Next() bool
	// Current returns the document Next moved to, or nil.
	Current() Document
	Err() error
	Close() error
}
