package document

import (
	"slices"

	"github.com/go-data-exporter/docexport/doctype"
)

// Doc is an in-memory document that keeps its fields in insertion order.
// The zero value is not usable; create one with New.
type Doc struct {
	class  string
	rid    *RID
	names  []string
	values map[string]any
	types  map[string]doctype.NativeType
}

// New returns an empty document of the given class. The class may be empty.
func New(class string) *Doc {
	return &Doc{
		class:  class,
		values: make(map[string]any),
		types:  make(map[string]doctype.NativeType),
	}
}

// ClassName returns the document class.
func (d *Doc) ClassName() string {
	return d.class
}

// RID returns the record id, if the document has one.
func (d *Doc) RID() (RID, bool) {
	if d.rid == nil {
		return RID{}, false
	}
	return *d.rid, true
}

// SetRID sets the record id.
func (d *Doc) SetRID(rid RID) *Doc {
	d.rid = &rid
	return d
}

// Set stores a schema-less field. Setting an existing field keeps its position
// and clears its declared type.
func (d *Doc) Set(name string, value any) *Doc {
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = value
	delete(d.types, name)
	return d
}

// SetTyped stores a field with a declared type.
func (d *Doc) SetTyped(name string, t doctype.NativeType, value any) *Doc {
	d.Set(name, value)
	d.types[name] = t
	return d
}

func (d *Doc) FieldCount() int {
	return len(d.names)
}

// FieldNames returns a copy of the field names in order.
func (d *Doc) FieldNames() []string {
	return slices.Clone(d.names)
}

func (d *Doc) FieldType(name string) (doctype.NativeType, bool) {
	t, ok := d.types[name]
	return t, ok
}

func (d *Doc) Field(name string) any {
	return d.values[name]
}

// Map returns the fields as a plain map. Nested documents stay *Doc.
func (d *Doc) Map() map[string]any {
	m := make(map[string]any, len(d.names))
	for _, name := range d.names {
		m[name] = d.values[name]
	}
	return m
}
