// Package scanner turns result sets from different sources into a common
// tabular form: a Rows cursor plus typed Column metadata.
package scanner

// Rows is a forward-only cursor over tabular rows.
type Rows interface {
	Next() bool
	ScanRow() ([]any, error)
	Columns() ([]Column, error)
	Driver() string
	Err() error
}

// Metadata is handed to custom value mappers of the codecs.
type Metadata struct {
	RowID  int
	Driver string
	Column Column
}
