package metadata

import (
	"github.com/go-data-exporter/docexport/doctype"
	"github.com/go-data-exporter/docexport/document"
)

type scanResult int

const (
	notSequence scanResult = iota
	allMatch
	someMismatch
)

// scanSequence checks whether every element of v satisfies pred, stopping at
// the first element that does not. An empty sequence is allMatch.
func scanSequence(v any, pred func(any) bool) scanResult {
	seq, ok := document.AsSequence(v)
	if !ok {
		return notSequence
	}
	for it := seq.Iterator(); it.Next(); {
		if !pred(it.Value()) {
			return someMismatch
		}
	}
	return allMatch
}

// ResolveColumnType returns the SQL type of a 1-based column of doc. Columns
// outside the document resolve to SQLNull.
//
// Declared types are trusted, except that embedded and linked fields holding a
// binary record resolve to SQLBinary and list fields whose elements are all
// binary records resolve to SQLBlob. Schema-less fields are typed from their
// runtime value.
func ResolveColumnType(doc document.Document, column int) doctype.SQLType {
	names := doc.FieldNames()
	if column < 1 || column > len(names) {
		return doctype.SQLNull
	}
	name := names[column-1]

	declared, ok := doc.FieldType(name)
	if !ok {
		return resolveValue(doc.Field(name))
	}

	switch declared {
	case doctype.Embedded, doctype.Link:
		value := doc.Field(name)
		if value == nil {
			return doctype.SQLNull
		}
		if document.IsBinary(value) {
			return doctype.SQLBinary
		}
		return doctype.Lookup(declared)

	case doctype.EmbeddedList, doctype.LinkList:
		value := doc.Field(name)
		if value == nil {
			return doctype.SQLNull
		}
		switch scanSequence(value, document.IsBinary) {
		case allMatch:
			return doctype.SQLBlob
		case someMismatch:
			return doctype.Lookup(declared)
		default:
			// Not the list's mapped code. Today both are SQLObject.
			return doctype.SQLObject
		}
	}
	return doctype.Lookup(declared)
}

func resolveValue(value any) doctype.SQLType {
	if value == nil {
		return doctype.SQLNull
	}
	if document.IsBinary(value) {
		return doctype.SQLBinary
	}
	if scanSequence(value, document.IsBinary) == allMatch {
		return doctype.SQLBlob
	}
	return doctype.InferFromValue(value)
}
